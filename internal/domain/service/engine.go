package service

import (
	"github.com/algolend/loan-engine/internal/domain/model"
	"github.com/algolend/loan-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Engine – composite score aggregator
// ---------------------------------------------------------------------------

// Score-reason thresholds.
const (
	lowCreditScoreThreshold  = 580.0
	highUtilizationThreshold = 0.75
	highDTIThreshold         = 50.0
	shortTenureMonths        = 6
)

// EngineInput is everything one scoring run consumes. Snapshot may be nil;
// the snapshot-dependent factors then score their zero/neutral bucket.
type EngineInput struct {
	Profile     model.BorrowerProfile
	Report      model.CreditReport
	Snapshot    *model.BankSnapshot
	Fingerprint model.DeviceFingerprint
}

// ScoreBreakdown maps every factor onto its contribution. The JSON keys are
// the engine's stable factor vocabulary; persisted runs and API responses
// share them.
type ScoreBreakdown struct {
	CreditScore        CreditScoreFactor        `json:"creditScore"`
	CreditUtilization  UtilizationFactor        `json:"creditUtilization"`
	AdverseListings    AdverseListingsFactor    `json:"adverseListings"`
	DeviceFingerprint  DeviceFingerprintFactor  `json:"deviceFingerprint"`
	DTI                DTIFactor                `json:"dti"`
	EmploymentTenure   TenureFactor             `json:"employmentTenure"`
	ContractType       ContractTypeFactor       `json:"contractType"`
	EmploymentCategory EmploymentCategoryFactor `json:"employmentCategory"`
	IncomeStability    IncomeStabilityFactor    `json:"incomeStability"`
	AlgolendRepayment  RepaymentFactor          `json:"algolendRepayment"`
	AGLRetrieval       RetrievalFactor          `json:"aglRetrieval"`
}

// contributions returns the factors in their fixed vocabulary order.
func (b ScoreBreakdown) contributions() []FactorContribution {
	return []FactorContribution{
		b.CreditScore.FactorContribution,
		b.CreditUtilization.FactorContribution,
		b.AdverseListings.FactorContribution,
		b.DeviceFingerprint.FactorContribution,
		b.DTI.FactorContribution,
		b.EmploymentTenure.FactorContribution,
		b.ContractType.FactorContribution,
		b.EmploymentCategory.FactorContribution,
		b.IncomeStability.FactorContribution,
		b.AlgolendRepayment.FactorContribution,
		b.AGLRetrieval.FactorContribution,
	}
}

// Total sums the weighted contributions of all eleven factors.
func (b ScoreBreakdown) Total() float64 {
	var sum float64
	for _, c := range b.contributions() {
		sum += c.ContributionPercent
	}
	return sum
}

// ContributionsByKey flattens the breakdown into factor-key -> weighted
// contribution, the shape score-run rows persist.
func (b ScoreBreakdown) ContributionsByKey() map[string]float64 {
	return map[string]float64{
		"creditScore":        b.CreditScore.ContributionPercent,
		"creditUtilization":  b.CreditUtilization.ContributionPercent,
		"adverseListings":    b.AdverseListings.ContributionPercent,
		"deviceFingerprint":  b.DeviceFingerprint.ContributionPercent,
		"dti":                b.DTI.ContributionPercent,
		"employmentTenure":   b.EmploymentTenure.ContributionPercent,
		"contractType":       b.ContractType.ContributionPercent,
		"employmentCategory": b.EmploymentCategory.ContributionPercent,
		"incomeStability":    b.IncomeStability.ContributionPercent,
		"algolendRepayment":  b.AlgolendRepayment.ContributionPercent,
		"aglRetrieval":       b.AGLRetrieval.ContributionPercent,
	}
}

// EngineResult is the full outcome of one scoring run.
type EngineResult struct {
	CreditScore float64        `json:"creditScore"`
	Breakdown   ScoreBreakdown `json:"breakdown"`

	LoanEngineScore           float64 `json:"loanEngineScore"`
	LoanEngineScoreMax        float64 `json:"loanEngineScoreMax"`
	LoanEngineScoreNormalized float64 `json:"loanEngineScoreNormalized"`

	ScoreReasons []string              `json:"scoreReasons"`
	Band         valueobject.ScoreBand `json:"scoreBand"`

	CreditExposure model.CreditExposure `json:"creditExposure"`

	MainSalary        float64 `json:"mainSalary"`
	SalaryPaymentDate string  `json:"salaryPaymentDate,omitempty"`
}

// Engine is the composite scoring service. It is stateless and safe for
// concurrent use from any number of request handlers.
type Engine struct {
	extractor *SalaryExtractor
}

// NewEngine returns a new engine instance.
func NewEngine() *Engine {
	return &Engine{extractor: NewSalaryExtractor()}
}

// Evaluate runs all eleven factors against the input and aggregates their
// weighted contributions into a composite score. It is pure computation with
// no I/O and never fails: missing input lowers the affected factors instead.
func (e *Engine) Evaluate(input EngineInput) EngineResult {
	profile := input.Profile
	report := input.Report

	mainSalary := e.extractor.ExtractMainSalary(input.Snapshot)
	income := profile.GrossMonthlyIncome
	if income <= 0 {
		income = mainSalary
	}

	breakdown := ScoreBreakdown{
		CreditScore:       ComputeCreditScoreContribution(report.Score),
		CreditUtilization: ComputeCreditUtilizationContribution(utilizationRatio(report)),
		AdverseListings:   ComputeAdverseListingsContribution(report.AccountSummary),
		DeviceFingerprint: ComputeDeviceFingerprintContribution(input.Fingerprint),
		DTI:               ComputeDTIContribution(report.AccountSummary.TotalMonthlyInstalments, income),
		EmploymentTenure:  ComputeEmploymentTenureContribution(profile.TenureMonths()),
		ContractType:      ComputeContractTypeContribution(profile.ContractType),
		EmploymentCategory: ComputeEmploymentCategoryContribution(
			profile.EmploymentSector, profile.EmployerName, profile.EmployerMatch,
		),
		IncomeStability: ComputeIncomeStabilityContribution(
			input.Snapshot.MonthsCaptured(), mainSalary,
			profile.EmploymentSector, profile.EmployerName,
		),
		AlgolendRepayment: ComputeAlgolendRepaymentContribution(profile.IsNewBorrower),
		AGLRetrieval:      ComputeAGLRetrievalContribution(),
	}

	score := breakdown.Total()
	normalized := score / TotalLoanEngineWeight * 100
	if normalized > 100 {
		normalized = 100
	}

	return EngineResult{
		CreditScore:               report.Score,
		Breakdown:                 breakdown,
		LoanEngineScore:           score,
		LoanEngineScoreMax:        TotalLoanEngineWeight,
		LoanEngineScoreNormalized: normalized,
		ScoreReasons:              scoreReasons(breakdown),
		Band:                      valueobject.BandForScore(normalized),
		CreditExposure: model.CreditExposure{
			TotalBalance:            report.AccountSummary.TotalBalance,
			TotalCreditLimit:        report.AccountSummary.TotalCreditLimit,
			TotalMonthlyInstalments: report.AccountSummary.TotalMonthlyInstalments,
			RevolvingUtilization:    breakdown.CreditUtilization.UtilizationRatio,
			AdverseAccounts:         breakdown.AdverseListings.AdverseCount,
		},
		MainSalary:        mainSalary,
		SalaryPaymentDate: e.extractor.ExtractSalaryPaymentDate(input.Snapshot),
	}
}

// utilizationRatio prefers the bureau's reported utilization and falls back
// to deriving it from the revolving balance and limit.
func utilizationRatio(report model.CreditReport) float64 {
	if report.RevolvingUtilization > 0 {
		return report.RevolvingUtilization
	}
	s := report.AccountSummary
	if s.RevolvingLimit > 0 {
		return s.RevolvingBalance / s.RevolvingLimit
	}
	return report.RevolvingUtilization
}

// scoreReasons builds the ordered decline/risk flags. The checks are
// independent, all evaluated, and their order is fixed.
func scoreReasons(b ScoreBreakdown) []string {
	var reasons []string
	if b.CreditScore.Score < lowCreditScoreThreshold {
		reasons = append(reasons, "Low credit score")
	}
	if b.CreditUtilization.UtilizationRatio > highUtilizationThreshold {
		reasons = append(reasons, "High credit utilization")
	}
	if b.AdverseListings.AdverseCount > 0 {
		reasons = append(reasons, "Adverse listings present")
	}
	if b.DTI.DTIRatio > highDTIThreshold {
		reasons = append(reasons, "High debt-to-income ratio")
	}
	if b.EmploymentTenure.MonthsInCurrentJob < shortTenureMonths {
		reasons = append(reasons, "Short employment tenure")
	}
	return reasons
}
