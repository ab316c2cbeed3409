package service

import (
	"math"
	"strings"

	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Factor contribution functions
// ---------------------------------------------------------------------------
//
// Each factor maps one input domain onto a bounded percentage value and a
// weighted contribution. All eleven functions are pure and total: missing or
// non-finite input degrades the factor to its zero/neutral bucket, it never
// produces an error. An incomplete data source should weaken one factor, not
// abort the whole assessment.

// Factor weights. The eleven weights sum to TotalLoanEngineWeight.
const (
	WeightCreditScore        = 25.0
	WeightCreditUtilization  = 5.0
	WeightAdverseListings    = 10.0
	WeightDeviceFingerprint  = 2.0
	WeightDTI                = 15.0
	WeightEmploymentTenure   = 5.0
	WeightContractType       = 5.0
	WeightEmploymentCategory = 5.0
	WeightIncomeStability    = 10.0
	WeightAlgolendRepayment  = 3.0
	WeightAGLRetrieval       = 5.0

	// TotalLoanEngineWeight is the maximum possible weighted total.
	TotalLoanEngineWeight = WeightCreditScore + WeightCreditUtilization +
		WeightAdverseListings + WeightDeviceFingerprint + WeightDTI +
		WeightEmploymentTenure + WeightContractType + WeightEmploymentCategory +
		WeightIncomeStability + WeightAlgolendRepayment + WeightAGLRetrieval
)

// Bureau score interpolation anchors.
const (
	bureauScoreFloor   = 300.0
	bureauScoreCeiling = 850.0
)

// FactorContribution is the uniform output shape shared by every factor.
type FactorContribution struct {
	ValuePercent        float64 `json:"valuePercent"`
	WeightPercent       float64 `json:"weightPercent"`
	ContributionPercent float64 `json:"contributionPercent"`
}

// newContribution clamps value into [0,100] and derives the weighted
// contribution.
func newContribution(value, weight float64) FactorContribution {
	value = clampPercent(value)
	return FactorContribution{
		ValuePercent:        value,
		WeightPercent:       weight,
		ContributionPercent: value * weight / 100,
	}
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ---------------------------------------------------------------------------
// creditScore (weight 25)
// ---------------------------------------------------------------------------

// CreditScoreFactor carries the bureau-score contribution.
type CreditScoreFactor struct {
	FactorContribution
	Score float64 `json:"score"`
}

// ComputeCreditScoreContribution interpolates the bureau score linearly
// between 300 (0%) and 850 (100%), clamped at both ends.
func ComputeCreditScoreContribution(score float64) CreditScoreFactor {
	score = finiteOrZero(score)
	value := (score - bureauScoreFloor) / (bureauScoreCeiling - bureauScoreFloor) * 100
	return CreditScoreFactor{
		FactorContribution: newContribution(value, WeightCreditScore),
		Score:              score,
	}
}

// ---------------------------------------------------------------------------
// creditUtilization (weight 5)
// ---------------------------------------------------------------------------

// UtilizationFactor carries the revolving-utilization contribution.
// UtilizationRatio is the canonical fraction (0-1) after input normalization.
type UtilizationFactor struct {
	FactorContribution
	UtilizationRatio float64 `json:"utilizationRatio"`
}

// ComputeCreditUtilizationContribution buckets the revolving-utilization
// ratio. The ratio may arrive as a fraction (0-1) or a percentage (0-100);
// inputs above 1 are treated as already-percent and divided down.
func ComputeCreditUtilizationContribution(ratio float64) UtilizationFactor {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return UtilizationFactor{FactorContribution: newContribution(0, WeightCreditUtilization)}
	}
	if ratio > 1 {
		ratio = ratio / 100
	}

	var value float64
	switch {
	case ratio <= 0.30:
		value = 100
	case ratio <= 0.50:
		value = 70
	case ratio <= 0.75:
		value = 40
	case ratio <= 0.90:
		value = 20
	default:
		value = 5
	}
	return UtilizationFactor{
		FactorContribution: newContribution(value, WeightCreditUtilization),
		UtilizationRatio:   ratio,
	}
}

// ---------------------------------------------------------------------------
// adverseListings (weight 10)
// ---------------------------------------------------------------------------

// AdverseListingsFactor carries the adverse-account contribution.
type AdverseListingsFactor struct {
	FactorContribution
	AdverseCount int `json:"adverseCount"`
}

// ComputeAdverseListingsContribution scores against the worse of the bureau's
// two adverse-standing counters: 0 -> 100, 1 -> 40, 2+ -> 0.
func ComputeAdverseListingsContribution(summary model.AccountSummary) AdverseListingsFactor {
	count := summary.AdverseAccounts
	if summary.AccountsInBadStanding > count {
		count = summary.AccountsInBadStanding
	}
	if count < 0 {
		count = 0
	}

	var value float64
	switch {
	case count == 0:
		value = 100
	case count == 1:
		value = 40
	default:
		value = 0
	}
	return AdverseListingsFactor{
		FactorContribution: newContribution(value, WeightAdverseListings),
		AdverseCount:       count,
	}
}

// ---------------------------------------------------------------------------
// deviceFingerprint (weight 2)
// ---------------------------------------------------------------------------

// DeviceFingerprintFactor carries the device-signal contribution.
type DeviceFingerprintFactor struct {
	FactorContribution
	SignalsPresent int `json:"signalsPresent"`
	SignalsTotal   int `json:"signalsTotal"`
}

// ComputeDeviceFingerprintContribution scales the fraction of present device
// signals (IP, user agent) to 0-100.
func ComputeDeviceFingerprintContribution(fp model.DeviceFingerprint) DeviceFingerprintFactor {
	present := fp.SignalsPresent()
	value := float64(present) / float64(model.SignalsTotal) * 100
	return DeviceFingerprintFactor{
		FactorContribution: newContribution(value, WeightDeviceFingerprint),
		SignalsPresent:     present,
		SignalsTotal:       model.SignalsTotal,
	}
}

// ---------------------------------------------------------------------------
// dti (weight 15)
// ---------------------------------------------------------------------------

// DTIFactor carries the debt-to-income contribution. DTIRatio is a
// percentage (monthly debt over gross monthly income, times 100).
type DTIFactor struct {
	FactorContribution
	DTIRatio           float64 `json:"dtiRatio"`
	MonthlyDebt        float64 `json:"monthlyDebt"`
	GrossMonthlyIncome float64 `json:"grossMonthlyIncome"`
}

// ComputeDTIContribution buckets the debt-to-income percentage. Zero or
// missing income scores the factor at 0 rather than failing.
func ComputeDTIContribution(monthlyDebt, grossMonthlyIncome float64) DTIFactor {
	monthlyDebt = finiteOrZero(monthlyDebt)
	grossMonthlyIncome = finiteOrZero(grossMonthlyIncome)

	if grossMonthlyIncome <= 0 {
		return DTIFactor{
			FactorContribution: newContribution(0, WeightDTI),
			MonthlyDebt:        monthlyDebt,
		}
	}

	ratio := monthlyDebt / grossMonthlyIncome * 100
	var value float64
	switch {
	case ratio <= 30:
		value = 100
	case ratio <= 40:
		value = 90
	case ratio <= 50:
		value = 75
	case ratio <= 60:
		value = 60
	case ratio <= 75:
		value = 50
	default:
		value = 0
	}
	return DTIFactor{
		FactorContribution: newContribution(value, WeightDTI),
		DTIRatio:           ratio,
		MonthlyDebt:        monthlyDebt,
		GrossMonthlyIncome: grossMonthlyIncome,
	}
}

// ---------------------------------------------------------------------------
// employmentTenure (weight 5)
// ---------------------------------------------------------------------------

// TenureFactor carries the employment-tenure contribution.
type TenureFactor struct {
	FactorContribution
	MonthsInCurrentJob int `json:"monthsInCurrentJob"`
}

// ComputeEmploymentTenureContribution buckets the months in the current job.
// Negative input means tenure is unknown and scores 0.
func ComputeEmploymentTenureContribution(months int) TenureFactor {
	var value float64
	switch {
	case months >= 36:
		value = 100
	case months >= 24:
		value = 80
	case months >= 12:
		value = 75
	case months >= 6:
		value = 60
	case months >= 3:
		value = 55
	case months >= 2:
		value = 25
	default:
		value = 0
	}
	if months < 0 {
		months = 0
	}
	return TenureFactor{
		FactorContribution: newContribution(value, WeightEmploymentTenure),
		MonthsInCurrentJob: months,
	}
}

// ---------------------------------------------------------------------------
// contractType (weight 5)
// ---------------------------------------------------------------------------

// ContractTypeFactor carries the contract-type contribution.
type ContractTypeFactor struct {
	FactorContribution
	ContractType string `json:"contractType"`
}

var contractTypeValues = map[valueobject.ContractType]float64{
	valueobject.ContractPermanent:            100,
	valueobject.ContractPermanentOnProbation: 80,
	valueobject.ContractFixedTerm12Plus:      70,
	valueobject.ContractSelfEmployed12Plus:   60,
	valueobject.ContractFixedTermLT12:        50,
	valueobject.ContractPartTime:             40,
	valueobject.ContractUnemployedOrUnknown:  0,
}

// ComputeContractTypeContribution maps the normalized contract type onto its
// fixed value. Unmapped types score 0.
func ComputeContractTypeContribution(ct valueobject.ContractType) ContractTypeFactor {
	return ContractTypeFactor{
		FactorContribution: newContribution(contractTypeValues[ct], WeightContractType),
		ContractType:       string(ct),
	}
}

// ---------------------------------------------------------------------------
// employmentCategory (weight 5)
// ---------------------------------------------------------------------------

// EmploymentCategoryFactor carries the sector/employer contribution.
type EmploymentCategoryFactor struct {
	FactorContribution
	Sector        string `json:"sector"`
	EmployerName  string `json:"employerName"`
	EmployerMatch string `json:"employerMatch"`
}

// ComputeEmploymentCategoryContribution evaluates the sector/employer-match
// rule cascade top to bottom; the first matching rule wins:
//
//  1. government sector with a named employer          -> 100
//  2. listed sector, or private with a listed match,
//     with a named employer                            -> 80
//  3. private with a high-risk match or just a named
//     employer                                         -> 50
//  4. blacklisted or not-found employer match          -> 0
//  5. anything else                                    -> 0
func ComputeEmploymentCategoryContribution(
	sector valueobject.SectorType,
	employerName string,
	match valueobject.EmployerMatch,
) EmploymentCategoryFactor {
	named := strings.TrimSpace(employerName) != ""

	var value float64
	switch {
	case sector == valueobject.SectorGovernment && named:
		value = 100
	case (sector == valueobject.SectorListed ||
		(sector == valueobject.SectorPrivate && match == valueobject.EmployerMatchListed)) && named:
		value = 80
	case sector == valueobject.SectorPrivate &&
		(match == valueobject.EmployerMatchHighRisk || named):
		value = 50
	case match == valueobject.EmployerMatchBlacklisted || match == valueobject.EmployerMatchNotFound:
		value = 0
	default:
		value = 0
	}
	return EmploymentCategoryFactor{
		FactorContribution: newContribution(value, WeightEmploymentCategory),
		Sector:             string(sector),
		EmployerName:       employerName,
		EmployerMatch:      string(match),
	}
}

// ---------------------------------------------------------------------------
// incomeStability (weight 10)
// ---------------------------------------------------------------------------

// IncomeStabilityFactor carries the income-stability contribution.
type IncomeStabilityFactor struct {
	FactorContribution
	MonthsCaptured int     `json:"monthsCaptured"`
	MainSalary     float64 `json:"mainSalary"`
}

// minStabilityMonths is the snapshot depth required to call income stable.
const minStabilityMonths = 4

// ComputeIncomeStabilityContribution scores 100 for a snapshot covering at
// least four months with a positive extracted salary, or for a named
// government employer when no qualifying snapshot exists; everything else
// scores 0.
func ComputeIncomeStabilityContribution(
	monthsCaptured int,
	mainSalary float64,
	sector valueobject.SectorType,
	employerName string,
) IncomeStabilityFactor {
	mainSalary = finiteOrZero(mainSalary)

	var value float64
	switch {
	case monthsCaptured >= minStabilityMonths && mainSalary > 0:
		value = 100
	case sector == valueobject.SectorGovernment && strings.TrimSpace(employerName) != "":
		value = 100
	default:
		value = 0
	}
	return IncomeStabilityFactor{
		FactorContribution: newContribution(value, WeightIncomeStability),
		MonthsCaptured:     monthsCaptured,
		MainSalary:         mainSalary,
	}
}

// ---------------------------------------------------------------------------
// algolendRepayment (weight 3)
// ---------------------------------------------------------------------------

// RepaymentFactor carries the repeat-borrower contribution.
type RepaymentFactor struct {
	FactorContribution
	IsNewBorrower bool `json:"isNewBorrower"`
}

// ComputeAlgolendRepaymentContribution scores new borrowers at 100 (no
// internal repayment history to hold against them) and existing borrowers
// at 50.
func ComputeAlgolendRepaymentContribution(isNewBorrower bool) RepaymentFactor {
	value := 50.0
	if isNewBorrower {
		value = 100
	}
	return RepaymentFactor{
		FactorContribution: newContribution(value, WeightAlgolendRepayment),
		IsNewBorrower:      isNewBorrower,
	}
}

// ---------------------------------------------------------------------------
// aglRetrieval (weight 5)
// ---------------------------------------------------------------------------

// RetrievalFactor carries the data-retrieval-completeness contribution.
type RetrievalFactor struct {
	FactorContribution
}

// ComputeAGLRetrievalContribution is the data-retrieval-completed marker:
// a constant 100, satisfied whenever the engine runs at all.
func ComputeAGLRetrievalContribution() RetrievalFactor {
	return RetrievalFactor{
		FactorContribution: newContribution(100, WeightAGLRetrieval),
	}
}
