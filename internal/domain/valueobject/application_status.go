package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ErrInvalidStatusTransition is returned for disallowed lifecycle moves.
var ErrInvalidStatusTransition = errors.New("invalid loan application status transition")

// LoanApplicationStatus represents the lifecycle stage of a loan application.
type LoanApplicationStatus struct {
	value string
}

const (
	loanAppStatusSubmitted      = "SUBMITTED"
	loanAppStatusUnderReview    = "UNDER_REVIEW"
	loanAppStatusApproved       = "APPROVED"
	loanAppStatusDeclined       = "DECLINED"
	loanAppStatusReviewRequired = "REVIEW_REQUIRED"
)

var (
	LoanApplicationStatusSubmitted      = LoanApplicationStatus{value: loanAppStatusSubmitted}
	LoanApplicationStatusUnderReview    = LoanApplicationStatus{value: loanAppStatusUnderReview}
	LoanApplicationStatusApproved       = LoanApplicationStatus{value: loanAppStatusApproved}
	LoanApplicationStatusDeclined       = LoanApplicationStatus{value: loanAppStatusDeclined}
	LoanApplicationStatusReviewRequired = LoanApplicationStatus{value: loanAppStatusReviewRequired}
)

var validLoanApplicationStatuses = map[string]LoanApplicationStatus{
	loanAppStatusSubmitted:      LoanApplicationStatusSubmitted,
	loanAppStatusUnderReview:    LoanApplicationStatusUnderReview,
	loanAppStatusApproved:       LoanApplicationStatusApproved,
	loanAppStatusDeclined:       LoanApplicationStatusDeclined,
	loanAppStatusReviewRequired: LoanApplicationStatusReviewRequired,
}

// NewLoanApplicationStatus creates a LoanApplicationStatus from a raw string.
func NewLoanApplicationStatus(s string) (LoanApplicationStatus, error) {
	v, ok := validLoanApplicationStatuses[s]
	if !ok {
		return LoanApplicationStatus{}, fmt.Errorf("invalid loan application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanApplicationStatus) Equal(other LoanApplicationStatus) bool {
	return s.value == other.value
}
