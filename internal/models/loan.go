package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus mirrors the loans.status column.
type LoanStatus string

// Loan is a row of the loans table.
type Loan struct {
	LoanID        string          `db:"loan_id"`
	UserID        string          `db:"user_id"`
	BookID        string          `db:"book_id"`
	BookTitle     string          `db:"book_title"`
	UserEmail     string          `db:"user_email"`
	LoanDate      time.Time       `db:"loan_date"`
	DueDate       time.Time       `db:"due_date"`
	ReturnDate    *time.Time      `db:"return_date"` // NULL until returned
	Status        LoanStatus      `db:"status"`
	PenaltyAmount decimal.Decimal `db:"penalty_amount"`
	AuditFields
}

// BookLoanCount is a row of the loans-per-book aggregation.
type BookLoanCount struct {
	BookID    string `db:"book_id"`
	LoanCount int    `db:"loan_count"`
}
