package event

import (
	"github.com/shopspring/decimal"

	"github.com/algolend/loan-engine/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Scoring events
// ---------------------------------------------------------------------------

// ScoreRunCompleted is raised once an engine run has been computed and persisted.
type ScoreRunCompleted struct {
	events.BaseEvent
	UserID            string   `json:"user_id"`
	LoanApplicationID string   `json:"loan_application_id,omitempty"`
	BureauScore       float64  `json:"bureau_score"`
	EngineScore       float64  `json:"engine_score"`
	NormalizedScore   float64  `json:"normalized_score"`
	Band              string   `json:"band"`
	Reasons           []string `json:"reasons,omitempty"`
}

func NewScoreRunCompleted(
	runID, tenantID, userID, loanApplicationID string,
	bureauScore, engineScore, normalizedScore float64,
	band string, reasons []string,
) ScoreRunCompleted {
	return ScoreRunCompleted{
		BaseEvent:         events.NewBaseEvent("loanengine.score_run.completed", runID, "ScoreRun", tenantID),
		UserID:            userID,
		LoanApplicationID: loanApplicationID,
		BureauScore:       bureauScore,
		EngineScore:       engineScore,
		NormalizedScore:   normalizedScore,
		Band:              band,
		Reasons:           reasons,
	}
}

// BankSnapshotCaptured is raised when a completed aggregator collection has
// been persisted as an immutable snapshot.
type BankSnapshotCaptured struct {
	events.BaseEvent
	UserID         string `json:"user_id"`
	CollectionID   string `json:"collection_id"`
	MonthsCaptured int    `json:"months_captured"`
}

func NewBankSnapshotCaptured(snapshotID, tenantID, userID, collectionID string, monthsCaptured int) BankSnapshotCaptured {
	return BankSnapshotCaptured{
		BaseEvent:      events.NewBaseEvent("loanengine.bank_snapshot.captured", snapshotID, "BankSnapshot", tenantID),
		UserID:         userID,
		CollectionID:   collectionID,
		MonthsCaptured: monthsCaptured,
	}
}

// ---------------------------------------------------------------------------
// Loan application events
// ---------------------------------------------------------------------------

// LoanApplicationSubmitted is raised when a new application enters the system.
type LoanApplicationSubmitted struct {
	events.BaseEvent
	UserID          string          `json:"user_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	TermMonths      int             `json:"term_months"`
	Purpose         string          `json:"purpose"`
}

func NewLoanApplicationSubmitted(
	applicationID, tenantID, userID string,
	amount decimal.Decimal, currency string,
	termMonths int, purpose string,
) LoanApplicationSubmitted {
	return LoanApplicationSubmitted{
		BaseEvent:       events.NewBaseEvent("loanengine.loan_application.submitted", applicationID, "LoanApplication", tenantID),
		UserID:          userID,
		RequestedAmount: amount,
		Currency:        currency,
		TermMonths:      termMonths,
		Purpose:         purpose,
	}
}

// LoanApplicationDecided is raised when an engine run resolves an
// application's advisory decision (approved, declined, or flagged for review).
type LoanApplicationDecided struct {
	events.BaseEvent
	UserID     string   `json:"user_id"`
	ScoreRunID string   `json:"score_run_id"`
	Status     string   `json:"status"`
	Band       string   `json:"band"`
	Reasons    []string `json:"reasons,omitempty"`
}

func NewLoanApplicationDecided(
	applicationID, tenantID, userID, scoreRunID, status, band string,
	reasons []string,
) LoanApplicationDecided {
	return LoanApplicationDecided{
		BaseEvent:  events.NewBaseEvent("loanengine.loan_application.decided", applicationID, "LoanApplication", tenantID),
		UserID:     userID,
		ScoreRunID: scoreRunID,
		Status:     status,
		Band:       band,
		Reasons:    reasons,
	}
}
