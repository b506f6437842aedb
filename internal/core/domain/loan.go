package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the stored lifecycle state of a loan.
// Overdue is not a status, see Loan.IsOverdue.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusReturned LoanStatus = "RETURNED"
)

const day = 24 * time.Hour

// ErrLoanNotActive is returned when a transition requires an active loan.
var ErrLoanNotActive = errors.New("loan is not active")

// Loan records one book borrowed by one user. Loans are never deleted.
type Loan struct {
	LoanID        string          `json:"loanID"`
	UserID        string          `json:"userID"`
	BookID        string          `json:"bookID"`
	BookTitle     string          `json:"bookTitle"` // captured at creation
	UserEmail     string          `json:"userEmail"` // captured at creation
	LoanDate      time.Time       `json:"loanDate"`
	DueDate       time.Time       `json:"dueDate"`
	ReturnDate    *time.Time      `json:"returnDate,omitempty"`
	Status        LoanStatus      `json:"status"`
	PenaltyAmount decimal.Decimal `json:"penaltyAmount"`
	AuditFields
}

// NewLoan builds an active loan starting at now with the policy's term.
func NewLoan(loanID string, borrower Borrower, book Book, now time.Time, term time.Duration, actorID string) Loan {
	return Loan{
		LoanID:        loanID,
		UserID:        borrower.UserID,
		BookID:        book.BookID,
		BookTitle:     book.Title,
		UserEmail:     borrower.Email,
		LoanDate:      now,
		DueDate:       now.Add(term),
		Status:        LoanStatusActive,
		PenaltyAmount: decimal.Zero,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}

// IsActive reports whether the loan has not been returned.
func (l Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// IsOverdue reports whether the loan is active and past its due date at now.
func (l Loan) IsOverdue(now time.Time) bool {
	return l.IsActive() && l.DueDate.Before(now)
}

// DaysLate counts started days past the due date at the given instant.
func (l Loan) DaysLate(at time.Time) int64 {
	late := at.Sub(l.DueDate)
	if late <= 0 {
		return 0
	}
	days := int64(late / day)
	if late%day > 0 {
		days++
	}
	return days
}

// CurrentPenalty returns the penalty as seen at now. An overdue loan accrues
// rate per day late; otherwise the stored amount is returned unchanged.
func (l Loan) CurrentPenalty(now time.Time, ratePerDay decimal.Decimal) decimal.Decimal {
	if l.IsOverdue(now) {
		return ratePerDay.Mul(decimal.NewFromInt(l.DaysLate(now)))
	}
	return l.PenaltyAmount
}

// MarkReturned moves an active loan to returned and freezes its penalty.
func (l *Loan) MarkReturned(now time.Time, ratePerDay decimal.Decimal, actorID string) error {
	if !l.IsActive() {
		return ErrLoanNotActive
	}
	l.PenaltyAmount = l.CurrentPenalty(now, ratePerDay)
	l.Status = LoanStatusReturned
	returnedAt := now
	if returnedAt.Before(l.LoanDate) {
		returnedAt = l.LoanDate
	}
	l.ReturnDate = &returnedAt
	l.LastUpdatedAt = now
	l.LastUpdatedBy = actorID
	return nil
}
