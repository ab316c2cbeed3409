package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/algolend/loan-engine/internal/domain/event"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
// Decisions are advisory outcomes of engine runs; a REVIEW_REQUIRED application
// stays open for a human underwriter.
type LoanApplication struct {
	id              string
	tenantID        string
	userID          string
	requestedAmount decimal.Decimal
	currency        string
	termMonths      int
	purpose         string
	status          valueobject.LoanApplicationStatus
	decisionReason  string
	scoreRunID      string
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	domainEvents    []event.DomainEvent
}

// NewLoanApplication creates a brand-new application in SUBMITTED status.
func NewLoanApplication(
	tenantID, userID string,
	requestedAmount decimal.Decimal,
	currency string,
	termMonths int,
	purpose string,
	now time.Time,
) (LoanApplication, error) {
	if tenantID == "" {
		return LoanApplication{}, errors.New("tenant ID is required")
	}
	if userID == "" {
		return LoanApplication{}, errors.New("user ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return LoanApplication{}, errors.New("requested amount must be positive")
	}
	if currency == "" {
		return LoanApplication{}, errors.New("currency is required")
	}
	if termMonths <= 0 {
		return LoanApplication{}, errors.New("term months must be positive")
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:              id,
		tenantID:        tenantID,
		userID:          userID,
		requestedAmount: requestedAmount,
		currency:        currency,
		termMonths:      termMonths,
		purpose:         purpose,
		status:          valueobject.LoanApplicationStatusSubmitted,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	app.domainEvents = append(app.domainEvents, event.NewLoanApplicationSubmitted(
		id, tenantID, userID, requestedAmount, currency, termMonths, purpose,
	))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without side-effects.
func ReconstructLoanApplication(
	id, tenantID, userID string,
	requestedAmount decimal.Decimal,
	currency string,
	termMonths int,
	purpose string,
	status valueobject.LoanApplicationStatus,
	decisionReason, scoreRunID string,
	version int,
	createdAt, updatedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:              id,
		tenantID:        tenantID,
		userID:          userID,
		requestedAmount: requestedAmount,
		currency:        currency,
		termMonths:      termMonths,
		purpose:         purpose,
		status:          status,
		decisionReason:  decisionReason,
		scoreRunID:      scoreRunID,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// SubmitForReview transitions SUBMITTED -> UNDER_REVIEW.
func (a LoanApplication) SubmitForReview(now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.LoanApplicationStatusSubmitted) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.LoanApplicationStatusUnderReview
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// ApplyScoreBand records an engine run's advisory outcome against the
// application. Auto-approve and risk-pricing bands approve, the decline band
// declines, and the manual-review band flags the application for an
// underwriter. Only UNDER_REVIEW (or re-scored REVIEW_REQUIRED) applications
// accept a decision.
func (a LoanApplication) ApplyScoreBand(
	band valueobject.ScoreBand,
	scoreRunID string,
	reasons []string,
	now time.Time,
) (LoanApplication, error) {
	if !a.status.Equal(valueobject.LoanApplicationStatusUnderReview) &&
		!a.status.Equal(valueobject.LoanApplicationStatusReviewRequired) {
		return a, valueobject.ErrInvalidStatusTransition
	}

	var status valueobject.LoanApplicationStatus
	switch band {
	case valueobject.BandAutoApprove, valueobject.BandRiskPricing:
		status = valueobject.LoanApplicationStatusApproved
	case valueobject.BandManualReview:
		status = valueobject.LoanApplicationStatusReviewRequired
	default:
		status = valueobject.LoanApplicationStatusDeclined
	}

	reason := ""
	if len(reasons) > 0 {
		reason = reasons[0]
	}

	next := a
	next.status = status
	next.decisionReason = reason
	next.scoreRunID = scoreRunID
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApplicationDecided(
		a.id, a.tenantID, a.userID, scoreRunID, status.String(), band.String(), reasons,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                                { return a.id }
func (a LoanApplication) TenantID() string                          { return a.tenantID }
func (a LoanApplication) UserID() string                            { return a.userID }
func (a LoanApplication) RequestedAmount() decimal.Decimal          { return a.requestedAmount }
func (a LoanApplication) Currency() string                          { return a.currency }
func (a LoanApplication) TermMonths() int                           { return a.termMonths }
func (a LoanApplication) Purpose() string                           { return a.purpose }
func (a LoanApplication) Status() valueobject.LoanApplicationStatus { return a.status }
func (a LoanApplication) DecisionReason() string                    { return a.decisionReason }
func (a LoanApplication) ScoreRunID() string                        { return a.scoreRunID }
func (a LoanApplication) Version() int                              { return a.version }
func (a LoanApplication) CreatedAt() time.Time                      { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time                      { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent         { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
