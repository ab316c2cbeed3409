package model

import (
	"strings"
	"time"
)

// MonthlySummary is one month's aggregate from the bank-data aggregator's
// statement object.
type MonthlySummary struct {
	Month         string  `json:"month"`
	MainIncome    float64 `json:"main_income"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
}

// BankTransaction is a single statement line as delivered by the aggregator.
// Date is an ISO yyyy-mm-dd string; ISO dates sort correctly lexicographically.
type BankTransaction struct {
	Description   string  `json:"description"`
	CategoryTwo   string  `json:"category_two"`
	CategoryThree string  `json:"category_three"`
	Type          string  `json:"type"` // "credit" or "debit"
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
}

// IsCredit reports whether the transaction is an inflow.
func (t BankTransaction) IsCredit() bool {
	return strings.EqualFold(t.Type, "credit")
}

// IsSalaryTagged reports whether any of the description or category fields
// mention a salary, case-insensitively. Used both by the income extractor and
// the payment-date lookup so the two always agree on what counts as salary.
func (t BankTransaction) IsSalaryTagged() bool {
	return containsFold(t.Description, "salary") ||
		containsFold(t.CategoryTwo, "salary") ||
		containsFold(t.CategoryThree, "salary")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

// BankAccountData groups the transactions of one linked account inside a
// snapshot.
type BankAccountData struct {
	AccountID    string            `json:"account_id"`
	Transactions []BankTransaction `json:"transactions"`
}

// BankSnapshot is an immutable captured copy of one successful bank-data
// collection. A new collection always produces a new snapshot row; snapshots
// are never mutated in place.
type BankSnapshot struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	CollectionID string            `json:"collection_id"`
	SummaryData  []MonthlySummary  `json:"summary_data"`
	Accounts     []BankAccountData `json:"accounts"`

	// SalaryTotal is the aggregator's statement-level salary figure, used as
	// the last income-extraction fallback.
	SalaryTotal float64 `json:"salary_total"`

	CapturedAt time.Time `json:"captured_at"`
}

// Transactions returns the primary account's transactions, or nil when the
// snapshot carries no accounts.
func (s *BankSnapshot) Transactions() []BankTransaction {
	if s == nil || len(s.Accounts) == 0 {
		return nil
	}
	return s.Accounts[0].Transactions
}

// MonthsCaptured returns the number of monthly aggregates in the snapshot.
func (s *BankSnapshot) MonthsCaptured() int {
	if s == nil {
		return 0
	}
	return len(s.SummaryData)
}
