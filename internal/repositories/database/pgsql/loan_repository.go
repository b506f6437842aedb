package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/apperrors"
	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	portsrepo "github.com/SscSPs/bookhub_loan_service/internal/core/ports/repositories"
	"github.com/SscSPs/bookhub_loan_service/internal/models"
	"github.com/SscSPs/bookhub_loan_service/internal/utils/mapping"
	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLoanRepository stores loans in PostgreSQL.
type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) *PgxLoanRepository {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

// SaveLoan inserts a new loan. A second active loan for the same user and book
// is rejected by the database and reported as apperrors.ErrConflict.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	query, args, err := build(insertLoanQuery(mapping.ToModelLoan(loan)))
	if err != nil {
		return err
	}

	if _, err := r.Pool.Exec(ctx, query, args...); err != nil {
		return translateWriteError(err, loan.LoanID, "save")
	}
	return nil
}

// UpdateLoan overwrites every mutable column of an existing loan.
func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	query, args, err := build(updateLoanQuery(mapping.ToModelLoan(loan)))
	if err != nil {
		return err
	}

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return translateWriteError(err, loan.LoanID, "update")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan with ID %s", apperrors.ErrNotFound, loan.LoanID)
	}
	return nil
}

// FindLoanByID retrieves a loan by its ID.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := r.queryOne(ctx, findLoanByIDQuery(loanID))
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, fmt.Errorf("%w: loan with ID %s", apperrors.ErrNotFound, loanID)
	}
	return loan, nil
}

// FindActiveLoanByUserAndBook returns nil, nil when the user holds no active loan for the book.
func (r *PgxLoanRepository) FindActiveLoanByUserAndBook(ctx context.Context, userID, bookID string) (*domain.Loan, error) {
	return r.queryOne(ctx, findActiveLoanByUserAndBookQuery(userID, bookID))
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	return r.queryMany(ctx, listLoansQuery())
}

func (r *PgxLoanRepository) ListLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	return r.queryMany(ctx, listLoansByUserQuery(userID))
}

func (r *PgxLoanRepository) ListLoansByBook(ctx context.Context, bookID string) ([]domain.Loan, error) {
	return r.queryMany(ctx, listLoansByBookQuery(bookID))
}

func (r *PgxLoanRepository) ListActiveLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	return r.queryMany(ctx, listActiveLoansByUserQuery(userID))
}

func (r *PgxLoanRepository) ListOverdueLoans(ctx context.Context, now time.Time) ([]domain.Loan, error) {
	return r.queryMany(ctx, listOverdueLoansQuery(now))
}

func (r *PgxLoanRepository) CountActiveLoansByUser(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, countActiveLoansByUserQuery(userID))
}

func (r *PgxLoanRepository) CountLoans(ctx context.Context) (int, error) {
	return r.count(ctx, countLoans())
}

func (r *PgxLoanRepository) CountActiveLoans(ctx context.Context) (int, error) {
	return r.count(ctx, countActiveLoansQuery())
}

func (r *PgxLoanRepository) CountOverdueLoans(ctx context.Context, now time.Time) (int, error) {
	return r.count(ctx, countOverdueLoansQuery(now))
}

// TopBorrowedBooks returns the k books with the most loans, all statuses included.
func (r *PgxLoanRepository) TopBorrowedBooks(ctx context.Context, k int) ([]domain.BookLoanCount, error) {
	if k <= 0 {
		return []domain.BookLoanCount{}, nil
	}
	query, args, err := build(topBorrowedBooksQuery(k))
	if err != nil {
		return nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan counts per book: %w", err)
	}
	defer rows.Close()

	counts := []models.BookLoanCount{}
	for rows.Next() {
		var c models.BookLoanCount
		var n int64
		if err := rows.Scan(&c.BookID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan loan count row: %w", err)
		}
		c.LoanCount = int(n)
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan count rows: %w", err)
	}
	return mapping.ToDomainBookLoanCounts(counts), nil
}

func (r *PgxLoanRepository) queryOne(ctx context.Context, ds *goqu.SelectDataset) (*domain.Loan, error) {
	query, args, err := build(ds)
	if err != nil {
		return nil, err
	}

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query loan: %w", err)
	}
	loan := mapping.ToDomainLoan(m)
	return &loan, nil
}

func (r *PgxLoanRepository) queryMany(ctx context.Context, ds *goqu.SelectDataset) ([]domain.Loan, error) {
	query, args, err := build(ds)
	if err != nil {
		return nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	ms := []models.Loan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return mapping.ToDomainLoans(ms), nil
}

// scanLoan reads one row in loanColumns order.
func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	var status string
	err := row.Scan(
		&m.LoanID,
		&m.UserID,
		&m.BookID,
		&m.BookTitle,
		&m.UserEmail,
		&m.LoanDate,
		&m.DueDate,
		&m.ReturnDate,
		&status,
		&m.PenaltyAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	m.Status = models.LoanStatus(status)
	return m, err
}

func translateWriteError(err error, loanID, op string) error {
	code, constraint := pgErrorCode(err)
	switch {
	case code == pgUniqueViolation && constraint == constraintActiveUserBook:
		return fmt.Errorf("%w: user already has an active loan for this book", apperrors.ErrConflict)
	case code == pgUniqueViolation:
		return fmt.Errorf("%w: loan with ID %s already exists", apperrors.ErrConflict, loanID)
	case code == pgCheckViolation:
		return fmt.Errorf("%w: loan %s violates a date or status constraint", apperrors.ErrValidation, loanID)
	}
	return fmt.Errorf("failed to %s loan %s: %w", op, loanID, err)
}
