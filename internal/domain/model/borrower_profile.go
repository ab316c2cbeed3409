package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

// BorrowerProfile is the fully-typed, already-normalized borrower input to a
// scoring run. Employment fields come from the onboarding form after passing
// through the valueobject normalizers; income is derived from the bank
// snapshot by the salary extractor.
type BorrowerProfile struct {
	IdentityNumber string
	Surname        string
	Forename       string
	DateOfBirth    time.Time
	Address        string

	// GrossMonthlyIncome is the extracted representative salary, >= 0.
	GrossMonthlyIncome float64

	// MonthsInCurrentJob is nil when tenure was not provided or unparseable.
	MonthsInCurrentJob *int

	ContractType     valueobject.ContractType
	EmploymentSector valueobject.SectorType
	EmployerName     string
	EmployerMatch    valueobject.EmployerMatch

	IsNewBorrower bool
}

// Validate checks the mandatory identity fields required for a scoring run to
// proceed. Everything else may be absent and degrades the affected factors.
func (p BorrowerProfile) Validate() error {
	if strings.TrimSpace(p.IdentityNumber) == "" {
		return fmt.Errorf("identity number is required")
	}
	if strings.TrimSpace(p.Surname) == "" {
		return fmt.Errorf("surname is required")
	}
	if strings.TrimSpace(p.Forename) == "" {
		return fmt.Errorf("forename is required")
	}
	return nil
}

// TenureMonths returns the months in the current job, or -1 when unknown.
func (p BorrowerProfile) TenureMonths() int {
	if p.MonthsInCurrentJob == nil {
		return -1
	}
	return *p.MonthsInCurrentJob
}

// ParseNewBorrowerFlag interprets the loosely-typed new-borrower flag the
// onboarding flow submits: "true", "yes" and "1" (any case) are true,
// everything else is false.
func ParseNewBorrowerFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
