package service

import (
	"github.com/algolend/loan-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// SalaryExtractor – derives a representative monthly salary from a snapshot
// ---------------------------------------------------------------------------

// SalaryExtractor derives a borrower's representative monthly salary and its
// most recent payment date from a captured bank snapshot. Recurring identical
// amounts are the most reliable salary signal, so the extractor prefers the
// statistical mode over an average, which a one-off bonus would skew.
type SalaryExtractor struct{}

// NewSalaryExtractor returns a new extractor instance.
func NewSalaryExtractor() *SalaryExtractor {
	return &SalaryExtractor{}
}

// ExtractMainSalary resolves the salary in priority order, first non-zero
// result wins:
//
//  1. mode of positive main_income values across the monthly summaries
//  2. mode of positive salary-tagged credit amounts in the transactions
//  3. the statement-level salary total, divided evenly across salary-tagged
//     credits when any exist
//  4. zero
func (e *SalaryExtractor) ExtractMainSalary(snapshot *model.BankSnapshot) float64 {
	if snapshot == nil {
		return 0
	}

	var incomes []float64
	for _, m := range snapshot.SummaryData {
		if m.MainIncome > 0 {
			incomes = append(incomes, m.MainIncome)
		}
	}
	if salary, ok := mode(incomes); ok {
		return salary
	}

	salaryCredits := salaryTaggedCredits(snapshot.Transactions())
	var amounts []float64
	for _, t := range salaryCredits {
		if t.Amount > 0 {
			amounts = append(amounts, t.Amount)
		}
	}
	if salary, ok := mode(amounts); ok {
		return salary
	}

	if snapshot.SalaryTotal > 0 {
		if n := len(salaryCredits); n > 0 {
			return snapshot.SalaryTotal / float64(n)
		}
		return snapshot.SalaryTotal
	}

	return 0
}

// ExtractSalaryPaymentDate returns the latest ISO date among salary-tagged
// credit transactions, or "" when the snapshot holds none. ISO dates sort
// correctly as strings.
func (e *SalaryExtractor) ExtractSalaryPaymentDate(snapshot *model.BankSnapshot) string {
	if snapshot == nil {
		return ""
	}
	latest := ""
	for _, t := range salaryTaggedCredits(snapshot.Transactions()) {
		if t.Date > latest {
			latest = t.Date
		}
	}
	return latest
}

func salaryTaggedCredits(txns []model.BankTransaction) []model.BankTransaction {
	var out []model.BankTransaction
	for _, t := range txns {
		if t.IsCredit() && t.IsSalaryTagged() {
			out = append(out, t)
		}
	}
	return out
}

// mode returns the most frequent value. Ties break toward the value that was
// first to reach the winning count, which keeps the result deterministic for
// equal-frequency inputs.
func mode(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	counts := make(map[float64]int, len(values))
	best := values[0]
	bestCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best, true
}
