package dto

import (
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data needed to borrow a book.
type CreateLoanRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
	BookID string `json:"bookId" binding:"required,uuid"`
}

// LoanResponse defines the data returned for a loan.
// IsOverdue and PenaltyAmount are computed at read time.
type LoanResponse struct {
	LoanID        string            `json:"id"`
	UserID        string            `json:"userId"`
	BookID        string            `json:"bookId"`
	BookTitle     string            `json:"bookTitle"`
	UserEmail     string            `json:"userEmail"`
	LoanDate      time.Time         `json:"loanDate"`
	DueDate       time.Time         `json:"dueDate"`
	ReturnDate    *time.Time        `json:"returnDate,omitempty"`
	Status        domain.LoanStatus `json:"status"`
	IsOverdue     bool              `json:"isOverdue"`
	PenaltyAmount decimal.Decimal   `json:"penaltyAmount"`
	CreatedAt     time.Time         `json:"createdAt"`
	CreatedBy     string            `json:"createdBy"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy string            `json:"lastUpdatedBy"`
}

// ToLoanResponse converts a domain.Loan as seen at now.
func ToLoanResponse(loan *domain.Loan, now time.Time, ratePerDay decimal.Decimal) LoanResponse {
	return LoanResponse{
		LoanID:        loan.LoanID,
		UserID:        loan.UserID,
		BookID:        loan.BookID,
		BookTitle:     loan.BookTitle,
		UserEmail:     loan.UserEmail,
		LoanDate:      loan.LoanDate,
		DueDate:       loan.DueDate,
		ReturnDate:    loan.ReturnDate,
		Status:        loan.Status,
		IsOverdue:     loan.IsOverdue(now),
		PenaltyAmount: loan.CurrentPenalty(now, ratePerDay),
		CreatedAt:     loan.CreatedAt,
		CreatedBy:     loan.CreatedBy,
		LastUpdatedAt: loan.LastUpdatedAt,
		LastUpdatedBy: loan.LastUpdatedBy,
	}
}

// ToListLoanResponse converts a slice of loans, all evaluated at the same instant.
func ToListLoanResponse(loans []domain.Loan, now time.Time, ratePerDay decimal.Decimal) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i := range loans {
		res[i] = ToLoanResponse(&loans[i], now, ratePerDay)
	}
	return res
}

// ActiveLoanCountResponse is returned by the active count lookup.
type ActiveLoanCountResponse struct {
	UserID      string `json:"userId"`
	ActiveLoans int    `json:"activeLoans"`
}
