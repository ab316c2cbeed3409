package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/algolend/loan-engine/internal/application/usecase"
	"github.com/algolend/loan-engine/internal/infrastructure/adapter"
	"github.com/algolend/loan-engine/internal/infrastructure/config"
	"github.com/algolend/loan-engine/internal/infrastructure/kafka"
	pgRepo "github.com/algolend/loan-engine/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/algolend/loan-engine/internal/presentation/grpc"
	"github.com/algolend/loan-engine/internal/presentation/rest"
	"github.com/algolend/loan-engine/pkg/auth"
	pkgkafka "github.com/algolend/loan-engine/pkg/kafka"
	"github.com/algolend/loan-engine/pkg/observability"
	pkgpostgres "github.com/algolend/loan-engine/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting loan-engine",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	// Tracing.
	if cfg.Tracing.Endpoint != "" {
		shutdown, err := observability.InitTracer(ctx, cfg.Tracing)
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	runRepo := pgRepo.NewScoreRunRepo(pool)
	snapshotRepo := pgRepo.NewSnapshotRepo(pool)
	appRepo := pgRepo.NewLoanApplicationRepo(pool)
	outboxRepo := pgRepo.NewOutboxRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(cfg.Kafka)
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, kafka.DefaultTopic, logger)

	// Re-delivers outbox entries the inline publish path could not send.
	relay := kafka.NewOutboxRelay(outboxRepo, kafkaProducer, kafka.DefaultTopic, logger)
	go relay.Run(ctx)

	bureauCfg := adapter.DefaultCreditBureauConfig()
	bureauCfg.BaseURL = cfg.BureauBaseURL
	bureauCfg.APIKey = cfg.BureauAPIKey
	bureauCfg.MaxRetries = cfg.BureauMaxRetries
	bureau := adapter.NewCreditBureauAdapter(bureauCfg, nil)

	aggregator := adapter.NewBankAggregatorAdapter(adapter.AggregatorConfig{
		BaseURL: cfg.AggregatorBaseURL,
		APIKey:  cfg.AggregatorAPIKey,
	}, nil)

	// Use cases.
	runCheckUC := usecase.NewRunCreditCheckUseCase(runRepo, snapshotRepo, appRepo, bureau, publisher, outboxRepo, logger)
	captureUC := usecase.NewCaptureBankSnapshotUseCase(snapshotRepo, aggregator, publisher)
	getRunUC := usecase.NewGetScoreRunUseCase(runRepo)
	listRunsUC := usecase.NewListScoreRunsUseCase(runRepo)
	submitAppUC := usecase.NewSubmitLoanApplicationUseCase(appRepo, publisher, outboxRepo, logger)
	getAppUC := usecase.NewGetApplicationUseCase(appRepo)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtSvc, err := auth.NewJWTService(cfg.JWT)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewScoringHandler(runCheckUC, captureUC, getRunUC, listRunsUC, submitAppUC, getAppUC)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc, cfg.TLSCertFile, cfg.TLSKeyFile)

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		metricsHandler.ServeHTTP(w, r)
	}))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loan-engine stopped")
}
