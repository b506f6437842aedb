package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxTopBooksLimit caps the size of a top-borrowed-books request.
const MaxTopBooksLimit = 50

// LoanPolicy holds the lending rules applied by the loan workflows.
type LoanPolicy struct {
	Term              time.Duration
	MaxActiveLoans    int
	PenaltyRatePerDay decimal.Decimal
	TopBooksLimit     int
}

// DefaultLoanPolicy returns a 14 day term, 5 active loans per borrower,
// 0.50 per day late and a top-5 list.
func DefaultLoanPolicy() LoanPolicy {
	return LoanPolicy{
		Term:              14 * 24 * time.Hour,
		MaxActiveLoans:    5,
		PenaltyRatePerDay: decimal.NewFromFloat(0.5),
		TopBooksLimit:     5,
	}
}

// NormalizeTopBooksLimit falls back to the policy default for k <= 0 and caps k.
func (p LoanPolicy) NormalizeTopBooksLimit(k int) int {
	if k <= 0 {
		k = p.TopBooksLimit
	}
	if k <= 0 {
		k = 5
	}
	if k > MaxTopBooksLimit {
		k = MaxTopBooksLimit
	}
	return k
}
