package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
)

// LoanReader defines read operations for loan data.
// Lookups by id return apperrors.ErrNotFound when no row matches.
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoans retrieves every loan, newest loan date first.
	ListLoans(ctx context.Context) ([]domain.Loan, error)

	// ListLoansByUser retrieves a borrower's loans, newest loan date first.
	ListLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error)

	// ListLoansByBook retrieves a book's loans, newest loan date first.
	ListLoansByBook(ctx context.Context, bookID string) ([]domain.Loan, error)

	// ListActiveLoansByUser retrieves a borrower's active loans, earliest due date first.
	ListActiveLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error)

	// ListOverdueLoans retrieves active loans due before now, earliest due date first.
	ListOverdueLoans(ctx context.Context, now time.Time) ([]domain.Loan, error)

	// FindActiveLoanByUserAndBook returns the active loan for the pair, or nil when there is none.
	FindActiveLoanByUserAndBook(ctx context.Context, userID, bookID string) (*domain.Loan, error)
}

// LoanWriter defines write operations for loan data. Both are full-record writes.
type LoanWriter interface {
	// SaveLoan persists a new loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoan overwrites an existing loan.
	UpdateLoan(ctx context.Context, loan domain.Loan) error
}

// LoanStatsReader defines the aggregate queries used by the dashboard.
type LoanStatsReader interface {
	CountActiveLoansByUser(ctx context.Context, userID string) (int, error)
	CountLoans(ctx context.Context) (int, error)
	CountActiveLoans(ctx context.Context) (int, error)
	CountOverdueLoans(ctx context.Context, now time.Time) (int, error)

	// TopBorrowedBooks groups all loans by book and returns the k largest groups,
	// highest count first with ties ordered by book id.
	TopBorrowedBooks(ctx context.Context, k int) ([]domain.BookLoanCount, error)
}

// LoanRepositoryFacade combines all loan-related repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	LoanStatsReader
}
