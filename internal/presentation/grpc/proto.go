package grpc

// proto.go defines the gRPC server interface derived from
// algolend/scoring/v1/scoring.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/algolend/loan-engine/api/gen/go/algolend/scoring/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/algolend/loan-engine/internal/application/dto"
)

// Message types are aliases of the application DTOs; the json codec carries
// them on the wire until the proto definitions are generated.
type (
	RunCreditCheckRequest       = dto.RunCreditCheckRequest
	RunCreditCheckResponse      = dto.CreditCheckResponse
	CaptureBankSnapshotRequest  = dto.CaptureBankSnapshotRequest
	CaptureBankSnapshotResponse = dto.BankSnapshotResponse
	GetScoreRunRequest          = dto.GetScoreRunRequest
	GetScoreRunResponse         = dto.ScoreRunResponse
	ListScoreRunsRequest        = dto.ListScoreRunsRequest
	SubmitApplicationRequest    = dto.SubmitApplicationRequest
	SubmitApplicationResponse   = dto.LoanApplicationResponse
	GetApplicationRequest       = dto.GetApplicationRequest
	GetApplicationResponse      = dto.LoanApplicationResponse
)

// ListScoreRunsResponse wraps the run list.
type ListScoreRunsResponse struct {
	Runs []dto.ScoreRunResponse `json:"runs"`
}

// ScoringServiceServer is the server API for ScoringService.
// It mirrors the proto interface from algolend.scoring.v1.ScoringService.
type ScoringServiceServer interface {
	RunCreditCheck(context.Context, *RunCreditCheckRequest) (*RunCreditCheckResponse, error)
	CaptureBankSnapshot(context.Context, *CaptureBankSnapshotRequest) (*CaptureBankSnapshotResponse, error)
	GetScoreRun(context.Context, *GetScoreRunRequest) (*GetScoreRunResponse, error)
	ListScoreRuns(context.Context, *ListScoreRunsRequest) (*ListScoreRunsResponse, error)
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error)
	GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error)
	mustEmbedUnimplementedScoringServiceServer()
}

// UnimplementedScoringServiceServer provides forward-compatible default implementations.
type UnimplementedScoringServiceServer struct{}

func (UnimplementedScoringServiceServer) RunCreditCheck(context.Context, *RunCreditCheckRequest) (*RunCreditCheckResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunCreditCheck not implemented")
}
func (UnimplementedScoringServiceServer) CaptureBankSnapshot(context.Context, *CaptureBankSnapshotRequest) (*CaptureBankSnapshotResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CaptureBankSnapshot not implemented")
}
func (UnimplementedScoringServiceServer) GetScoreRun(context.Context, *GetScoreRunRequest) (*GetScoreRunResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetScoreRun not implemented")
}
func (UnimplementedScoringServiceServer) ListScoreRuns(context.Context, *ListScoreRunsRequest) (*ListScoreRunsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListScoreRuns not implemented")
}
func (UnimplementedScoringServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedScoringServiceServer) GetApplication(context.Context, *GetApplicationRequest) (*GetApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedScoringServiceServer) mustEmbedUnimplementedScoringServiceServer() {}

// RegisterScoringServiceServer registers the ScoringServiceServer with the gRPC server.
func RegisterScoringServiceServer(s *grpclib.Server, srv ScoringServiceServer) {
	s.RegisterService(&_ScoringService_serviceDesc, srv)
}

var _ScoringService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "algolend.scoring.v1.ScoringService",
	HandlerType: (*ScoringServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RunCreditCheck", Handler: _ScoringService_RunCreditCheck_Handler},
		{MethodName: "CaptureBankSnapshot", Handler: _ScoringService_CaptureBankSnapshot_Handler},
		{MethodName: "GetScoreRun", Handler: _ScoringService_GetScoreRun_Handler},
		{MethodName: "ListScoreRuns", Handler: _ScoringService_ListScoreRuns_Handler},
		{MethodName: "SubmitApplication", Handler: _ScoringService_SubmitApplication_Handler},
		{MethodName: "GetApplication", Handler: _ScoringService_GetApplication_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _ScoringService_RunCreditCheck_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RunCreditCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).RunCreditCheck(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/algolend.scoring.v1.ScoringService/RunCreditCheck",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).RunCreditCheck(ctx, req.(*RunCreditCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScoringService_CaptureBankSnapshot_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CaptureBankSnapshotRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).CaptureBankSnapshot(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/algolend.scoring.v1.ScoringService/CaptureBankSnapshot",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).CaptureBankSnapshot(ctx, req.(*CaptureBankSnapshotRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScoringService_GetScoreRun_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetScoreRunRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).GetScoreRun(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/algolend.scoring.v1.ScoringService/GetScoreRun",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).GetScoreRun(ctx, req.(*GetScoreRunRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScoringService_ListScoreRuns_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListScoreRunsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).ListScoreRuns(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/algolend.scoring.v1.ScoringService/ListScoreRuns",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).ListScoreRuns(ctx, req.(*ListScoreRunsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScoringService_SubmitApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).SubmitApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/algolend.scoring.v1.ScoringService/SubmitApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).SubmitApplication(ctx, req.(*SubmitApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ScoringService_GetApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ScoringServiceServer).GetApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/algolend.scoring.v1.ScoringService/GetApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ScoringServiceServer).GetApplication(ctx, req.(*GetApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}
