package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/apperrors"
	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/SscSPs/bookhub_loan_service/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/bookhub_loan_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookhub_loan_service/internal/core/ports/services"
	"github.com/SscSPs/bookhub_loan_service/internal/dto"
	"github.com/google/uuid"
)

// loanService orchestrates the loan workflows across the loan store and the
// catalog and user services. It keeps no mutable state between calls.
type loanService struct {
	BaseService
	loanRepo portsrepo.LoanRepositoryFacade
	catalog  clients.CatalogClient
	users    clients.UserClient
	policy   domain.LoanPolicy
	newID    func() string
}

// LoanServiceOption is a functional option for configuring the loan service
type LoanServiceOption func(*loanService)

// WithLoanPolicy overrides the default lending rules.
func WithLoanPolicy(policy domain.LoanPolicy) LoanServiceOption {
	return func(s *loanService) {
		s.policy = policy
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) LoanServiceOption {
	return func(s *loanService) {
		s.now = now
	}
}

// WithIDGenerator replaces the loan id generator.
func WithIDGenerator(newID func() string) LoanServiceOption {
	return func(s *loanService) {
		s.newID = newID
	}
}

// NewLoanService creates a new loan service with the provided options
func NewLoanService(repo portsrepo.LoanRepositoryFacade, catalog clients.CatalogClient, users clients.UserClient, options ...LoanServiceOption) portssvc.LoanSvcFacade {
	svc := &loanService{
		loanRepo: repo,
		catalog:  catalog,
		users:    users,
		policy:   domain.DefaultLoanPolicy(),
		newID:    uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) Policy() domain.LoanPolicy {
	return s.policy
}

func (s *loanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actorID string) (*domain.Loan, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("user_id", req.UserID),
		slog.String("book_id", req.BookID),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	borrower, err := s.users.GetUser(ctx, req.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up borrower", slog.String("user_id", req.UserID))
		return nil, fmt.Errorf("failed to look up borrower: %w", err)
	}
	if borrower == nil {
		logger.Warn("Borrower not found")
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, req.UserID)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	active, err := s.loanRepo.CountActiveLoansByUser(ctx, req.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count active loans", slog.String("user_id", req.UserID))
		return nil, fmt.Errorf("failed to count active loans: %w", err)
	}
	if active >= s.policy.MaxActiveLoans {
		logger.Warn("Active loan limit reached", slog.Int("active_loans", active), slog.Int("limit", s.policy.MaxActiveLoans))
		return nil, apperrors.NewLimitExceeded(active, s.policy.MaxActiveLoans)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	book, err := s.catalog.GetBook(ctx, req.BookID)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up book", slog.String("book_id", req.BookID))
		return nil, fmt.Errorf("failed to look up book: %w", err)
	}
	if book == nil {
		logger.Warn("Book not found")
		return nil, fmt.Errorf("%w: book %s", apperrors.ErrNotFound, req.BookID)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	existing, err := s.loanRepo.FindActiveLoanByUserAndBook(ctx, req.UserID, req.BookID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check for an existing loan")
		return nil, fmt.Errorf("failed to check for an existing loan: %w", err)
	}
	if existing != nil {
		logger.Warn("Borrower already holds this book", slog.String("loan_id", existing.LoanID))
		return nil, fmt.Errorf("%w: loan %s", apperrors.ErrConflict, existing.LoanID)
	}

	if !book.IsAvailable() {
		logger.Info("No copies available", slog.Int("available_copies", book.AvailableCopies))
		return nil, fmt.Errorf("%w: no copies of %q left", apperrors.ErrUnavailable, book.Title)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Only remote mutation before the loan is persisted.
	taken, err := s.catalog.DecrementAvailability(ctx, req.BookID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reserve a copy", slog.String("book_id", req.BookID))
		return nil, fmt.Errorf("failed to reserve a copy: %w", err)
	}
	if !taken {
		logger.Info("Catalog refused to decrement availability")
		return nil, fmt.Errorf("%w: catalog refused to reserve %q", apperrors.ErrUnavailable, book.Title)
	}

	loan := domain.NewLoan(s.newID(), *borrower, *book, s.Now(), s.policy.Term, actorID)
	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		// The copy stays taken; there is no compensation step.
		s.LogError(ctx, err, "Failed to save loan after reserving a copy",
			slog.String("loan_id", loan.LoanID),
			slog.String("book_id", req.BookID))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	logger.Info("Loan created", slog.String("loan_id", loan.LoanID), slog.Time("due_date", loan.DueDate))
	return &loan, nil
}

func (s *loanService) ReturnLoan(ctx context.Context, loanID string, actorID string) (*domain.Loan, error) {
	logger := s.GetLogger(ctx).With(slog.String("loan_id", loanID))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Return requested for unknown loan")
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to load loan for return", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to load loan: %w", err)
	}
	if loan == nil || !loan.IsActive() {
		logger.Info("Return requested for a loan that is not active")
		return nil, nil
	}

	if err := loan.MarkReturned(s.Now(), s.policy.PenaltyRatePerDay, actorID); err != nil {
		logger.Info("Loan could not be marked returned", slog.String("error", err.Error()))
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		s.LogError(ctx, err, "Failed to persist loan return", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to persist loan return: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	restored, err := s.catalog.IncrementAvailability(ctx, loan.BookID)
	if err != nil {
		s.LogError(ctx, err, "Loan returned but the copy was not restored",
			slog.String("loan_id", loanID),
			slog.String("book_id", loan.BookID))
		return nil, fmt.Errorf("loan %s returned but availability was not restored: %w", loanID, err)
	}
	if !restored {
		logger.Warn("Catalog refused to restore availability", slog.String("book_id", loan.BookID))
	}

	logger.Info("Loan returned", slog.String("penalty", loan.PenaltyAmount.StringFixed(2)))
	return loan, nil
}

func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

func (s *loanService) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	return s.list(ctx, "all", s.loanRepo.ListLoans)
}

func (s *loanService) ListLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	return s.list(ctx, "user", func(ctx context.Context) ([]domain.Loan, error) {
		return s.loanRepo.ListLoansByUser(ctx, userID)
	})
}

func (s *loanService) ListActiveLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	return s.list(ctx, "user_active", func(ctx context.Context) ([]domain.Loan, error) {
		return s.loanRepo.ListActiveLoansByUser(ctx, userID)
	})
}

func (s *loanService) ListLoansByBook(ctx context.Context, bookID string) ([]domain.Loan, error) {
	return s.list(ctx, "book", func(ctx context.Context) ([]domain.Loan, error) {
		return s.loanRepo.ListLoansByBook(ctx, bookID)
	})
}

func (s *loanService) ListOverdueLoans(ctx context.Context) ([]domain.Loan, error) {
	now := s.Now()
	return s.list(ctx, "overdue", func(ctx context.Context) ([]domain.Loan, error) {
		return s.loanRepo.ListOverdueLoans(ctx, now)
	})
}

func (s *loanService) list(ctx context.Context, scope string, fetch func(context.Context) ([]domain.Loan, error)) ([]domain.Loan, error) {
	loans, err := fetch(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans", slog.String("scope", scope))
		return nil, err
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	return loans, nil
}

func (s *loanService) CountActiveLoansByUser(ctx context.Context, userID string) (int, error) {
	count, err := s.loanRepo.CountActiveLoansByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count active loans", slog.String("user_id", userID))
		return 0, err
	}
	return count, nil
}

func (s *loanService) TopBorrowedBooks(ctx context.Context, k int) ([]domain.Book, error) {
	k = s.policy.NormalizeTopBooksLimit(k)

	counts, err := s.loanRepo.TopBorrowedBooks(ctx, k)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate loans per book", slog.Int("limit", k))
		return nil, err
	}

	books := make([]domain.Book, 0, len(counts))
	for _, c := range counts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		book, err := s.catalog.GetBook(ctx, c.BookID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				book = nil
			} else {
				s.LogError(ctx, err, "Failed to resolve top book", slog.String("book_id", c.BookID))
				return nil, fmt.Errorf("failed to resolve book %s: %w", c.BookID, err)
			}
		}
		if book == nil {
			s.LogDebug(ctx, "Dropping top book missing from catalog", slog.String("book_id", c.BookID))
			continue
		}
		books = append(books, book.WithLoanCount(c.LoanCount))
	}
	return books, nil
}

func (s *loanService) AdminDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	now := s.Now()

	total, err := s.loanRepo.CountLoans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count loans")
		return nil, err
	}
	active, err := s.loanRepo.CountActiveLoans(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count active loans")
		return nil, err
	}
	overdue, err := s.loanRepo.CountOverdueLoans(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to count overdue loans")
		return nil, err
	}
	// Counts stay available while the catalog is down.
	top, err := s.TopBorrowedBooks(ctx, s.policy.TopBooksLimit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.LogWarn(ctx, "Dashboard top books unavailable", slog.String("error", err.Error()))
		top = []domain.Book{}
	}

	return &domain.AdminDashboard{
		TotalLoans:   total,
		ActiveLoans:  active,
		OverdueLoans: overdue,
		TopBooks:     top,
	}, nil
}
