package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

func TestWeightsSumToTotal(t *testing.T) {
	sum := WeightCreditScore + WeightCreditUtilization + WeightAdverseListings +
		WeightDeviceFingerprint + WeightDTI + WeightEmploymentTenure +
		WeightContractType + WeightEmploymentCategory + WeightIncomeStability +
		WeightAlgolendRepayment + WeightAGLRetrieval

	assert.Equal(t, 90.0, sum)
	assert.Equal(t, 90.0, float64(TotalLoanEngineWeight))
}

func TestComputeCreditScoreContribution(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		wantValue float64
	}{
		{"floor", 300, 0},
		{"ceiling", 850, 100},
		{"midpoint", 575, 50},
		{"below floor clamps", 100, 0},
		{"above ceiling clamps", 900, 100},
		{"zero score", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCreditScoreContribution(tt.score)
			assert.InDelta(t, tt.wantValue, got.ValuePercent, 1e-9)
			assert.Equal(t, WeightCreditScore, got.WeightPercent)
			assert.InDelta(t, tt.wantValue*WeightCreditScore/100, got.ContributionPercent, 1e-9)
		})
	}

	t.Run("non-finite score is neutral", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeCreditScoreContribution(math.NaN()).ValuePercent)
		assert.Equal(t, 0.0, ComputeCreditScoreContribution(math.Inf(1)).ValuePercent)
	})

	t.Run("non-decreasing in score", func(t *testing.T) {
		prev := -1.0
		for s := 250.0; s <= 900; s += 10 {
			v := ComputeCreditScoreContribution(s).ValuePercent
			assert.GreaterOrEqual(t, v, prev)
			prev = v
		}
	})
}

func TestComputeCreditUtilizationContribution(t *testing.T) {
	tests := []struct {
		name      string
		ratio     float64
		wantValue float64
	}{
		{"low fraction", 0.25, 100},
		{"bucket boundary 30", 0.30, 100},
		{"moderate", 0.45, 70},
		{"elevated", 0.70, 40},
		{"high", 0.85, 20},
		{"maxed out", 0.95, 5},
		{"percent input auto-detected", 45, 70},
		{"percent boundary", 100, 5},
		{"zero", 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCreditUtilizationContribution(tt.ratio)
			assert.Equal(t, tt.wantValue, got.ValuePercent)
		})
	}

	t.Run("non-finite ratio scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeCreditUtilizationContribution(math.NaN()).ValuePercent)
		assert.Equal(t, 0.0, ComputeCreditUtilizationContribution(math.Inf(1)).ValuePercent)
	})

	t.Run("percent input is normalized to a fraction", func(t *testing.T) {
		got := ComputeCreditUtilizationContribution(45)
		assert.InDelta(t, 0.45, got.UtilizationRatio, 1e-9)
	})
}

func TestComputeAdverseListingsContribution(t *testing.T) {
	tests := []struct {
		name      string
		summary   model.AccountSummary
		wantValue float64
		wantContr float64
	}{
		{"clean record", model.AccountSummary{}, 100, 10},
		{"one adverse account", model.AccountSummary{AdverseAccounts: 1}, 40, 4},
		{"two adverse accounts", model.AccountSummary{AdverseAccounts: 2}, 0, 0},
		{"worse counter wins", model.AccountSummary{AdverseAccounts: 0, AccountsInBadStanding: 1}, 40, 4},
		{"many adverse", model.AccountSummary{AdverseAccounts: 7}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAdverseListingsContribution(tt.summary)
			assert.Equal(t, tt.wantValue, got.ValuePercent)
			assert.InDelta(t, tt.wantContr, got.ContributionPercent, 1e-9)
		})
	}
}

func TestComputeDeviceFingerprintContribution(t *testing.T) {
	now := time.Now()

	t.Run("all signals present", func(t *testing.T) {
		fp := model.FingerprintFromRequestMeta("203.0.113.9:443", "", "Mozilla/5.0", "en-ZA", now)
		got := ComputeDeviceFingerprintContribution(fp)
		assert.Equal(t, 100.0, got.ValuePercent)
		assert.Equal(t, 2, got.SignalsPresent)
	})

	t.Run("missing user agent", func(t *testing.T) {
		fp := model.FingerprintFromRequestMeta("203.0.113.9:443", "", "", "", now)
		got := ComputeDeviceFingerprintContribution(fp)
		assert.Equal(t, 50.0, got.ValuePercent)
	})

	t.Run("no signals", func(t *testing.T) {
		got := ComputeDeviceFingerprintContribution(model.DeviceFingerprint{})
		assert.Equal(t, 0.0, got.ValuePercent)
	})
}

func TestComputeDTIContribution(t *testing.T) {
	t.Run("thirty percent ratio maxes the factor", func(t *testing.T) {
		got := ComputeDTIContribution(3000, 10000)
		assert.InDelta(t, 30.0, got.DTIRatio, 1e-9)
		assert.Equal(t, 100.0, got.ValuePercent)
		assert.InDelta(t, 15.0, got.ContributionPercent, 1e-9)
	})

	tests := []struct {
		name         string
		debt, income float64
		wantValue    float64
	}{
		{"ratio 35", 3500, 10000, 90},
		{"ratio 50", 5000, 10000, 75},
		{"ratio 55", 5500, 10000, 60},
		{"ratio 70", 7000, 10000, 50},
		{"ratio 80", 8000, 10000, 0},
		{"zero income", 3000, 0, 0},
		{"negative income", 3000, -5, 0},
		{"zero debt", 0, 10000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDTIContribution(tt.debt, tt.income)
			assert.Equal(t, tt.wantValue, got.ValuePercent)
		})
	}

	t.Run("non-increasing in ratio", func(t *testing.T) {
		prev := 101.0
		for debt := 0.0; debt <= 12000; debt += 500 {
			v := ComputeDTIContribution(debt, 10000).ValuePercent
			assert.LessOrEqual(t, v, prev)
			prev = v
		}
	})

	t.Run("non-finite input is neutral", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeDTIContribution(math.NaN(), 10000).DTIRatio)
		assert.Equal(t, 0.0, ComputeDTIContribution(3000, math.Inf(1)).ValuePercent)
	})
}

func TestComputeEmploymentTenureContribution(t *testing.T) {
	tests := []struct {
		months    int
		wantValue float64
	}{
		{40, 100}, {36, 100}, {30, 80}, {24, 80}, {18, 75}, {12, 75},
		{8, 60}, {6, 60}, {4, 55}, {3, 55}, {2, 25}, {1, 0}, {0, 0}, {-1, 0},
	}
	for _, tt := range tests {
		got := ComputeEmploymentTenureContribution(tt.months)
		assert.Equal(t, tt.wantValue, got.ValuePercent, "months=%d", tt.months)
	}
}

func TestComputeContractTypeContribution(t *testing.T) {
	tests := []struct {
		ct        valueobject.ContractType
		wantValue float64
	}{
		{valueobject.ContractPermanent, 100},
		{valueobject.ContractPermanentOnProbation, 80},
		{valueobject.ContractFixedTerm12Plus, 70},
		{valueobject.ContractSelfEmployed12Plus, 60},
		{valueobject.ContractFixedTermLT12, 50},
		{valueobject.ContractPartTime, 40},
		{valueobject.ContractUnemployedOrUnknown, 0},
		{valueobject.ContractType("GIG_WORKER"), 0},
		{valueobject.ContractType(""), 0},
	}
	for _, tt := range tests {
		got := ComputeContractTypeContribution(tt.ct)
		assert.Equal(t, tt.wantValue, got.ValuePercent, "contract=%s", tt.ct)
	}
}

func TestComputeEmploymentCategoryContribution(t *testing.T) {
	tests := []struct {
		name      string
		sector    valueobject.SectorType
		employer  string
		match     valueobject.EmployerMatch
		wantValue float64
	}{
		{"government with named employer", valueobject.SectorGovernment, "Dept of Health", valueobject.EmployerMatchUnknown, 100},
		{"government without employer name", valueobject.SectorGovernment, "  ", valueobject.EmployerMatchUnknown, 0},
		{"listed sector", valueobject.SectorListed, "BigCorp Ltd", valueobject.EmployerMatchUnknown, 80},
		{"private with listed match", valueobject.SectorPrivate, "BigCorp Ltd", valueobject.EmployerMatchListed, 80},
		{"private with high-risk match", valueobject.SectorPrivate, "Cash4U", valueobject.EmployerMatchHighRisk, 50},
		{"private with generic named employer", valueobject.SectorPrivate, "Corner Shop", valueobject.EmployerMatchUnknown, 50},
		{"blacklisted employer", valueobject.SectorOther, "Shady Co", valueobject.EmployerMatchBlacklisted, 0},
		{"employer not found", valueobject.SectorOther, "Unknown Co", valueobject.EmployerMatchNotFound, 0},
		{"no data at all", valueobject.SectorType(""), "", valueobject.EmployerMatchUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEmploymentCategoryContribution(tt.sector, tt.employer, tt.match)
			assert.Equal(t, tt.wantValue, got.ValuePercent)
		})
	}
}

func TestComputeIncomeStabilityContribution(t *testing.T) {
	tests := []struct {
		name      string
		months    int
		salary    float64
		sector    valueobject.SectorType
		employer  string
		wantValue float64
	}{
		{"deep snapshot with salary", 4, 25000, valueobject.SectorPrivate, "", 100},
		{"deep snapshot without salary", 6, 0, valueobject.SectorPrivate, "", 0},
		{"shallow snapshot", 3, 25000, valueobject.SectorPrivate, "", 0},
		{"government fallback", 0, 0, valueobject.SectorGovernment, "Dept of Health", 100},
		{"government without employer", 0, 0, valueobject.SectorGovernment, "", 0},
		{"nothing qualifies", 0, 0, valueobject.SectorOther, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeIncomeStabilityContribution(tt.months, tt.salary, tt.sector, tt.employer)
			assert.Equal(t, tt.wantValue, got.ValuePercent)
		})
	}
}

func TestComputeAlgolendRepaymentContribution(t *testing.T) {
	assert.Equal(t, 100.0, ComputeAlgolendRepaymentContribution(true).ValuePercent)
	assert.Equal(t, 50.0, ComputeAlgolendRepaymentContribution(false).ValuePercent)
	assert.InDelta(t, 1.5, ComputeAlgolendRepaymentContribution(false).ContributionPercent, 1e-9)
}

func TestComputeAGLRetrievalContribution(t *testing.T) {
	got := ComputeAGLRetrievalContribution()
	assert.Equal(t, 100.0, got.ValuePercent)
	assert.Equal(t, WeightAGLRetrieval, got.WeightPercent)
	assert.Equal(t, WeightAGLRetrieval, got.ContributionPercent)
}

// Every factor must stay within [0,100] for value and [0,weight] for its
// contribution, whatever the input.
func TestFactorBoundedness(t *testing.T) {
	check := func(t *testing.T, c FactorContribution) {
		t.Helper()
		assert.GreaterOrEqual(t, c.ValuePercent, 0.0)
		assert.LessOrEqual(t, c.ValuePercent, 100.0)
		assert.GreaterOrEqual(t, c.ContributionPercent, 0.0)
		assert.LessOrEqual(t, c.ContributionPercent, c.WeightPercent)
	}

	for _, score := range []float64{-1000, 0, 300, 575, 850, 5000, math.NaN(), math.Inf(1), math.Inf(-1)} {
		check(t, ComputeCreditScoreContribution(score).FactorContribution)
	}
	for _, ratio := range []float64{-3, 0, 0.5, 1, 45, 100, 900, math.NaN(), math.Inf(1)} {
		check(t, ComputeCreditUtilizationContribution(ratio).FactorContribution)
	}
	for _, debt := range []float64{-100, 0, 3000, 1e12, math.NaN()} {
		for _, income := range []float64{-1, 0, 10000, math.Inf(1)} {
			check(t, ComputeDTIContribution(debt, income).FactorContribution)
		}
	}
	for _, months := range []int{-5, 0, 1, 7, 36, 500} {
		check(t, ComputeEmploymentTenureContribution(months).FactorContribution)
	}
}

// Pure function law: identical input, identical output.
func TestFactorIdempotence(t *testing.T) {
	assert.Equal(t, ComputeCreditScoreContribution(712), ComputeCreditScoreContribution(712))
	assert.Equal(t, ComputeDTIContribution(4200, 18000), ComputeDTIContribution(4200, 18000))
	assert.Equal(t,
		ComputeAdverseListingsContribution(model.AccountSummary{AdverseAccounts: 1}),
		ComputeAdverseListingsContribution(model.AccountSummary{AdverseAccounts: 1}),
	)
}
