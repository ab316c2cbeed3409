package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

func intPtr(v int) *int { return &v }

func strongBorrowerInput() EngineInput {
	snap := snapshotWith([]model.MonthlySummary{
		{Month: "2026-04", MainIncome: 42000},
		{Month: "2026-05", MainIncome: 42000},
		{Month: "2026-06", MainIncome: 42000},
		{Month: "2026-07", MainIncome: 42000},
	}, []model.BankTransaction{
		{Description: "DEPT HEALTH SALARY", Type: "credit", Amount: 42000, Date: "2026-07-25"},
	}, 0)

	return EngineInput{
		Profile: model.BorrowerProfile{
			IdentityNumber:     "9001015009087",
			Surname:            "Dlamini",
			Forename:           "Thandi",
			GrossMonthlyIncome: 42000,
			MonthsInCurrentJob: intPtr(40),
			ContractType:       valueobject.ContractPermanent,
			EmploymentSector:   valueobject.SectorGovernment,
			EmployerName:       "Department of Health",
			IsNewBorrower:      false,
		},
		Report: model.CreditReport{
			Score:                700,
			RevolvingUtilization: 0.20,
			AccountSummary: model.AccountSummary{
				TotalBalance:            120000,
				TotalCreditLimit:        400000,
				TotalMonthlyInstalments: 10500, // DTI 25%
			},
		},
		Snapshot: snap,
		Fingerprint: model.FingerprintFromRequestMeta(
			"203.0.113.9:443", "", "Mozilla/5.0", "en-ZA", time.Now(),
		),
	}
}

func TestEngineEvaluateStrongBorrower(t *testing.T) {
	result := NewEngine().Evaluate(strongBorrowerInput())

	assert.Equal(t, 90.0, result.LoanEngineScoreMax)
	assert.GreaterOrEqual(t, result.LoanEngineScoreNormalized, 90.0)
	assert.Empty(t, result.ScoreReasons)
	assert.Equal(t, valueobject.BandAutoApprove, result.Band)

	b := result.Breakdown
	assert.Equal(t, 100.0, b.CreditUtilization.ValuePercent)
	assert.Equal(t, 100.0, b.AdverseListings.ValuePercent)
	assert.Equal(t, 100.0, b.DeviceFingerprint.ValuePercent)
	assert.Equal(t, 100.0, b.DTI.ValuePercent)
	assert.Equal(t, 100.0, b.EmploymentTenure.ValuePercent)
	assert.Equal(t, 100.0, b.ContractType.ValuePercent)
	assert.Equal(t, 100.0, b.EmploymentCategory.ValuePercent)
	assert.Equal(t, 100.0, b.IncomeStability.ValuePercent)
	assert.Equal(t, 100.0, b.AGLRetrieval.ValuePercent)
	// only the repeat-borrower factor sits below maximum for an existing
	// borrower (50 of 100 on weight 3)
	assert.Equal(t, 50.0, b.AlgolendRepayment.ValuePercent)

	assert.Equal(t, 42000.0, result.MainSalary)
	assert.Equal(t, "2026-07-25", result.SalaryPaymentDate)
	assert.InDelta(t, 0.20, result.CreditExposure.RevolvingUtilization, 1e-9)
}

func TestEngineEvaluateScoreArithmetic(t *testing.T) {
	result := NewEngine().Evaluate(strongBorrowerInput())

	var sum float64
	for _, c := range result.Breakdown.ContributionsByKey() {
		sum += c
	}
	assert.InDelta(t, result.LoanEngineScore, sum, 1e-9)
	assert.InDelta(t, result.LoanEngineScore/90*100, result.LoanEngineScoreNormalized, 1e-9)
	assert.Len(t, result.Breakdown.ContributionsByKey(), 11)
}

func TestEngineEvaluateWeakBorrower(t *testing.T) {
	input := EngineInput{
		Profile: model.BorrowerProfile{
			IdentityNumber:     "8505055009086",
			Surname:            "Naidoo",
			Forename:           "Pravin",
			GrossMonthlyIncome: 8000,
			MonthsInCurrentJob: intPtr(2),
			ContractType:       valueobject.ContractUnemployedOrUnknown,
			EmploymentSector:   valueobject.SectorOther,
			IsNewBorrower:      true,
		},
		Report: model.CreditReport{
			Score:                520,
			RevolvingUtilization: 0.92,
			AccountSummary: model.AccountSummary{
				TotalMonthlyInstalments: 5200, // DTI 65%
				AdverseAccounts:         2,
			},
		},
	}

	result := NewEngine().Evaluate(input)

	assert.Less(t, result.LoanEngineScoreNormalized, 50.0)
	assert.Equal(t, valueobject.BandDecline, result.Band)
	assert.Equal(t, []string{
		"Low credit score",
		"High credit utilization",
		"Adverse listings present",
		"High debt-to-income ratio",
		"Short employment tenure",
	}, result.ScoreReasons)
}

func TestEngineEvaluateWithoutSnapshot(t *testing.T) {
	input := strongBorrowerInput()
	input.Snapshot = nil

	result := NewEngine().Evaluate(input)

	// the snapshot-backed income path is gone, but the government-employer
	// fallback keeps income stability at maximum
	assert.Equal(t, 100.0, result.Breakdown.IncomeStability.ValuePercent)
	assert.Equal(t, 0.0, result.MainSalary)
	assert.Equal(t, "", result.SalaryPaymentDate)
	// DTI still scores off the profile income
	assert.Equal(t, 100.0, result.Breakdown.DTI.ValuePercent)
}

func TestEngineEvaluateZeroValueInput(t *testing.T) {
	result := NewEngine().Evaluate(EngineInput{})

	require.NotNil(t, result.ScoreReasons)
	// zero input still earns clean-utilization (5), no-adverse (10), the
	// existing-borrower half credit (1.5) and the retrieval marker (5)
	assert.InDelta(t, 21.5, result.LoanEngineScore, 1e-9)
	assert.Equal(t, valueobject.BandDecline, result.Band)
}

func TestEngineFallsBackToExtractedIncome(t *testing.T) {
	input := strongBorrowerInput()
	input.Profile.GrossMonthlyIncome = 0

	result := NewEngine().Evaluate(input)

	// instalments 10500 against the extracted 42000 salary keeps DTI at 25%
	assert.InDelta(t, 25.0, result.Breakdown.DTI.DTIRatio, 1e-9)
	assert.Equal(t, 100.0, result.Breakdown.DTI.ValuePercent)
}

func TestEngineDerivesUtilizationFromRevolvingFigures(t *testing.T) {
	input := strongBorrowerInput()
	input.Report.RevolvingUtilization = 0
	input.Report.AccountSummary.RevolvingBalance = 4000
	input.Report.AccountSummary.RevolvingLimit = 10000

	result := NewEngine().Evaluate(input)

	assert.InDelta(t, 0.40, result.Breakdown.CreditUtilization.UtilizationRatio, 1e-9)
	assert.Equal(t, 70.0, result.Breakdown.CreditUtilization.ValuePercent)
}

func TestBandForScoreThresholds(t *testing.T) {
	assert.Equal(t, valueobject.BandAutoApprove, valueobject.BandForScore(80))
	assert.Equal(t, valueobject.BandRiskPricing, valueobject.BandForScore(79.9))
	assert.Equal(t, valueobject.BandRiskPricing, valueobject.BandForScore(70))
	assert.Equal(t, valueobject.BandManualReview, valueobject.BandForScore(69.9))
	assert.Equal(t, valueobject.BandManualReview, valueobject.BandForScore(50))
	assert.Equal(t, valueobject.BandDecline, valueobject.BandForScore(49.9))
}
