package services

import (
	"context"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/SscSPs/bookhub_loan_service/internal/dto"
)

// LoanReaderSvc defines read operations for loan data.
type LoanReaderSvc interface {
	// GetLoanByID retrieves a loan, or apperrors.ErrNotFound.
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	ListLoans(ctx context.Context) ([]domain.Loan, error)
	ListLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error)
	ListActiveLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error)
	ListLoansByBook(ctx context.Context, bookID string) ([]domain.Loan, error)
	ListOverdueLoans(ctx context.Context) ([]domain.Loan, error)
	CountActiveLoansByUser(ctx context.Context, userID string) (int, error)
}

// LoanWriterSvc defines the create and return workflows.
type LoanWriterSvc interface {
	// CreateLoan runs the create workflow. actorID is the authenticated caller.
	CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actorID string) (*domain.Loan, error)

	// ReturnLoan runs the return workflow. It returns nil, nil when the loan
	// does not exist or is already returned.
	ReturnLoan(ctx context.Context, loanID string, actorID string) (*domain.Loan, error)
}

// LoanStatsSvc defines the aggregate read operations.
type LoanStatsSvc interface {
	// TopBorrowedBooks returns up to k books by loan count. k <= 0 uses the configured default.
	TopBorrowedBooks(ctx context.Context, k int) ([]domain.Book, error)

	AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error)
}

// LoanSvcFacade combines all loan-related service interfaces.
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
	LoanStatsSvc

	// Policy exposes the lending rules, used to render lazy penalties.
	Policy() domain.LoanPolicy
}
