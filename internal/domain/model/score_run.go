package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/algolend/loan-engine/internal/domain/event"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

// ScoreRun is an append-only record of a single engine evaluation. Runs are
// never updated in place; a re-score produces a new run.
type ScoreRun struct {
	id                string
	tenantID          string
	userID            string
	loanApplicationID string
	snapshotID        string

	bureauScore     float64
	mainSalary      float64
	engineScore     float64
	normalizedScore float64
	band            valueobject.ScoreBand
	breakdown       map[string]float64
	reasons         []string

	createdAt    time.Time
	domainEvents []event.DomainEvent
}

// NewScoreRun records a completed engine evaluation.
func NewScoreRun(
	tenantID, userID, loanApplicationID, snapshotID string,
	bureauScore, mainSalary, engineScore, normalizedScore float64,
	band valueobject.ScoreBand,
	breakdown map[string]float64,
	reasons []string,
	now time.Time,
) (ScoreRun, error) {
	if tenantID == "" {
		return ScoreRun{}, errors.New("tenant ID is required")
	}
	if userID == "" {
		return ScoreRun{}, errors.New("user ID is required")
	}

	id := uuid.New().String()
	run := ScoreRun{
		id:                id,
		tenantID:          tenantID,
		userID:            userID,
		loanApplicationID: loanApplicationID,
		snapshotID:        snapshotID,
		bureauScore:       bureauScore,
		mainSalary:        mainSalary,
		engineScore:       engineScore,
		normalizedScore:   normalizedScore,
		band:              band,
		breakdown:         copyBreakdown(breakdown),
		reasons:           copyReasons(reasons),
		createdAt:         now,
	}

	run.domainEvents = append(run.domainEvents, event.NewScoreRunCompleted(
		id, tenantID, userID, loanApplicationID,
		bureauScore, engineScore, normalizedScore,
		band.String(), reasons,
	))
	return run, nil
}

// ReconstructScoreRun rebuilds a run from persistence without side-effects.
func ReconstructScoreRun(
	id, tenantID, userID, loanApplicationID, snapshotID string,
	bureauScore, mainSalary, engineScore, normalizedScore float64,
	band valueobject.ScoreBand,
	breakdown map[string]float64,
	reasons []string,
	createdAt time.Time,
) ScoreRun {
	return ScoreRun{
		id:                id,
		tenantID:          tenantID,
		userID:            userID,
		loanApplicationID: loanApplicationID,
		snapshotID:        snapshotID,
		bureauScore:       bureauScore,
		mainSalary:        mainSalary,
		engineScore:       engineScore,
		normalizedScore:   normalizedScore,
		band:              band,
		breakdown:         copyBreakdown(breakdown),
		reasons:           copyReasons(reasons),
		createdAt:         createdAt,
	}
}

func (r ScoreRun) ID() string                        { return r.id }
func (r ScoreRun) TenantID() string                  { return r.tenantID }
func (r ScoreRun) UserID() string                    { return r.userID }
func (r ScoreRun) LoanApplicationID() string         { return r.loanApplicationID }
func (r ScoreRun) SnapshotID() string                { return r.snapshotID }
func (r ScoreRun) BureauScore() float64              { return r.bureauScore }
func (r ScoreRun) MainSalary() float64               { return r.mainSalary }
func (r ScoreRun) EngineScore() float64              { return r.engineScore }
func (r ScoreRun) NormalizedScore() float64          { return r.normalizedScore }
func (r ScoreRun) Band() valueobject.ScoreBand       { return r.band }
func (r ScoreRun) CreatedAt() time.Time              { return r.createdAt }
func (r ScoreRun) DomainEvents() []event.DomainEvent { return r.domainEvents }

// Breakdown returns a copy of the per-factor contributions.
func (r ScoreRun) Breakdown() map[string]float64 { return copyBreakdown(r.breakdown) }

// Reasons returns a copy of the ordered score reasons.
func (r ScoreRun) Reasons() []string { return copyReasons(r.reasons) }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (r ScoreRun) ClearEvents() ScoreRun {
	next := r
	next.domainEvents = nil
	return next
}

func copyBreakdown(src map[string]float64) map[string]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyReasons(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
