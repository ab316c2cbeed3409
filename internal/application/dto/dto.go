package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/algolend/loan-engine/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RunCreditCheckRequest carries everything one scoring run needs. Employment
// fields arrive raw from the onboarding form and are normalized at this
// boundary before they reach the engine.
type RunCreditCheckRequest struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`

	// LoanApplicationID is optional; when set, the run's advisory band is
	// applied to the application's lifecycle.
	LoanApplicationID string `json:"loan_application_id,omitempty"`

	IdentityNumber string `json:"identity_number"`
	Surname        string `json:"surname"`
	Forename       string `json:"forename"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	Address        string `json:"address,omitempty"`

	ContractType     string `json:"contract_type,omitempty"`
	EmploymentSector string `json:"employment_sector,omitempty"`
	EmployerName     string `json:"employer_name,omitempty"`
	EmployerMatch    string `json:"employer_match,omitempty"`
	YearsAtEmployer  string `json:"years_at_employer,omitempty"`
	NewBorrower      string `json:"new_borrower,omitempty"`

	// Transport metadata for the device fingerprint.
	RemoteAddr     string `json:"remote_addr,omitempty"`
	ForwardedFor   string `json:"forwarded_for,omitempty"`
	UserAgent      string `json:"user_agent,omitempty"`
	AcceptLanguage string `json:"accept_language,omitempty"`
}

// CaptureBankSnapshotRequest asks for a completed aggregator collection to be
// retrieved and stored as an immutable snapshot.
type CaptureBankSnapshotRequest struct {
	TenantID     string `json:"tenant_id"`
	UserID       string `json:"user_id"`
	CollectionID string `json:"collection_id"`
}

// GetScoreRunRequest identifies a scoring run to retrieve.
type GetScoreRunRequest struct {
	TenantID string `json:"tenant_id"`
	RunID    string `json:"run_id"`
}

// ListScoreRunsRequest identifies a user whose runs to list.
type ListScoreRunsRequest struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Limit    int    `json:"limit,omitempty"`
}

// SubmitApplicationRequest carries the data needed to open a loan application.
type SubmitApplicationRequest struct {
	TenantID        string          `json:"tenant_id"`
	UserID          string          `json:"user_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	TermMonths      int             `json:"term_months"`
	Purpose         string          `json:"purpose"`
}

// GetApplicationRequest identifies a loan application to retrieve.
type GetApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScoreRunResponse is the external representation of one scoring run.
type ScoreRunResponse struct {
	ID                string             `json:"id"`
	TenantID          string             `json:"tenant_id"`
	UserID            string             `json:"user_id"`
	LoanApplicationID string             `json:"loan_application_id,omitempty"`
	SnapshotID        string             `json:"snapshot_id,omitempty"`
	CreditScore       float64            `json:"credit_score"`
	MainSalary        float64            `json:"main_salary"`
	EngineScore       float64            `json:"engine_score"`
	EngineScoreMax    float64            `json:"engine_score_max"`
	NormalizedScore   float64            `json:"normalized_score"`
	ScoreBand         string             `json:"score_band"`
	Breakdown         map[string]float64 `json:"breakdown"`
	ScoreReasons      []string           `json:"score_reasons"`
	CreatedAt         time.Time          `json:"created_at"`
}

// CreditCheckResponse is the full result of a fresh scoring run, including
// the per-factor detail the persisted row flattens away.
type CreditCheckResponse struct {
	Run    ScoreRunResponse     `json:"run"`
	Result service.EngineResult `json:"result"`

	// DecisionError reports why the advisory band could not be applied to
	// the linked loan application. The run itself is persisted and returned
	// regardless.
	DecisionError string `json:"decision_error,omitempty"`
}

// BankSnapshotResponse is the external representation of a stored snapshot.
type BankSnapshotResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CollectionID   string    `json:"collection_id"`
	MonthsCaptured int       `json:"months_captured"`
	MainSalary     float64   `json:"main_salary"`
	CapturedAt     time.Time `json:"captured_at"`
}

// LoanApplicationResponse is the external representation of a loan application.
type LoanApplicationResponse struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	UserID          string          `json:"user_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	TermMonths      int             `json:"term_months"`
	Purpose         string          `json:"purpose"`
	Status          string          `json:"status"`
	DecisionReason  string          `json:"decision_reason,omitempty"`
	ScoreRunID      string          `json:"score_run_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
