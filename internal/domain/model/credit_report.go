package model

import "time"

// AccountSummary carries the bureau's aggregate account figures. Any of the
// numeric fields may be zero when the bureau omitted them; consumers treat
// missing values as zero rather than failing.
type AccountSummary struct {
	TotalBalance            float64 `json:"total_balance"`
	TotalCreditLimit        float64 `json:"total_credit_limit"`
	TotalMonthlyInstalments float64 `json:"total_monthly_instalments"`
	RevolvingBalance        float64 `json:"revolving_balance"`
	RevolvingLimit          float64 `json:"revolving_limit"`

	// The bureau reports adverse standing under two counters depending on the
	// product; scoring uses the worse of the two.
	AdverseAccounts       int `json:"adverse_accounts"`
	AccountsInBadStanding int `json:"accounts_in_bad_standing"`
}

// EmployerRecord is one entry of the bureau-reported employment history.
type EmployerRecord struct {
	EmployerName string    `json:"employer_name"`
	Occupation   string    `json:"occupation"`
	ReportedAt   time.Time `json:"reported_at"`
}

// CreditReport is the parsed credit-bureau payload consumed by the engine.
// The bureau is an opaque collaborator; the engine only ever sees this
// already-fetched shape (or its zero value when the pull failed upstream).
type CreditReport struct {
	Score float64 `json:"score"` // bureau-native range, e.g. 300-850

	// RevolvingUtilization may arrive as a fraction (0-1) or a percentage
	// (0-100); the utilization factor normalizes it at the boundary.
	RevolvingUtilization float64 `json:"revolving_utilization"`

	AccountSummary    AccountSummary   `json:"account_summary"`
	EmploymentHistory []EmployerRecord `json:"employment_history"`

	RetrievedAt time.Time `json:"retrieved_at"`
}

// CreditExposure is the flattened balance/limit view persisted with each
// scoring run for display and audit.
type CreditExposure struct {
	TotalBalance            float64 `json:"total_balance"`
	TotalCreditLimit        float64 `json:"total_credit_limit"`
	TotalMonthlyInstalments float64 `json:"total_monthly_instalments"`
	RevolvingUtilization    float64 `json:"revolving_utilization"` // fraction 0-1
	AdverseAccounts         int     `json:"adverse_accounts"`
}
