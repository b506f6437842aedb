package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/apperrors"
	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/SscSPs/bookhub_loan_service/internal/core/services"
	"github.com/SscSPs/bookhub_loan_service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atomicCatalog holds one book whose copy counter is the only serialization point.
type atomicCatalog struct {
	book      domain.Book
	available atomic.Int64
}

func (c *atomicCatalog) GetBook(_ context.Context, bookID string) (*domain.Book, error) {
	if bookID != c.book.BookID {
		return nil, nil
	}
	b := c.book
	b.AvailableCopies = int(c.available.Load())
	return &b, nil
}

func (c *atomicCatalog) DecrementAvailability(_ context.Context, _ string) (bool, error) {
	for {
		n := c.available.Load()
		if n <= 0 {
			return false, nil
		}
		if c.available.CompareAndSwap(n, n-1) {
			return true, nil
		}
	}
}

func (c *atomicCatalog) IncrementAvailability(_ context.Context, _ string) (bool, error) {
	c.available.Add(1)
	return true, nil
}

type staticUsers map[string]domain.Borrower

func (u staticUsers) GetUser(_ context.Context, userID string) (*domain.Borrower, error) {
	b, ok := u[userID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// memoryLoanStore is a minimal in-memory loan store.
type memoryLoanStore struct {
	mu    sync.Mutex
	loans map[string]domain.Loan
}

func newMemoryLoanStore() *memoryLoanStore {
	return &memoryLoanStore{loans: map[string]domain.Loan{}}
}

func (s *memoryLoanStore) filter(keep func(domain.Loan) bool) []domain.Loan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Loan{}
	for _, l := range s.loans {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func (s *memoryLoanStore) FindLoanByID(_ context.Context, loanID string) (*domain.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loans[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (s *memoryLoanStore) ListLoans(context.Context) ([]domain.Loan, error) {
	return s.filter(func(domain.Loan) bool { return true }), nil
}

func (s *memoryLoanStore) ListLoansByUser(_ context.Context, userID string) ([]domain.Loan, error) {
	return s.filter(func(l domain.Loan) bool { return l.UserID == userID }), nil
}

func (s *memoryLoanStore) ListLoansByBook(_ context.Context, bookID string) ([]domain.Loan, error) {
	return s.filter(func(l domain.Loan) bool { return l.BookID == bookID }), nil
}

func (s *memoryLoanStore) ListActiveLoansByUser(_ context.Context, userID string) ([]domain.Loan, error) {
	return s.filter(func(l domain.Loan) bool { return l.UserID == userID && l.IsActive() }), nil
}

func (s *memoryLoanStore) ListOverdueLoans(_ context.Context, now time.Time) ([]domain.Loan, error) {
	return s.filter(func(l domain.Loan) bool { return l.IsOverdue(now) }), nil
}

func (s *memoryLoanStore) FindActiveLoanByUserAndBook(_ context.Context, userID, bookID string) (*domain.Loan, error) {
	found := s.filter(func(l domain.Loan) bool { return l.UserID == userID && l.BookID == bookID && l.IsActive() })
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (s *memoryLoanStore) SaveLoan(_ context.Context, loan domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans[loan.LoanID] = loan
	return nil
}

func (s *memoryLoanStore) UpdateLoan(_ context.Context, loan domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[loan.LoanID]; !ok {
		return apperrors.ErrNotFound
	}
	s.loans[loan.LoanID] = loan
	return nil
}

func (s *memoryLoanStore) CountActiveLoansByUser(ctx context.Context, userID string) (int, error) {
	loans, _ := s.ListActiveLoansByUser(ctx, userID)
	return len(loans), nil
}

func (s *memoryLoanStore) CountLoans(ctx context.Context) (int, error) {
	loans, _ := s.ListLoans(ctx)
	return len(loans), nil
}

func (s *memoryLoanStore) CountActiveLoans(context.Context) (int, error) {
	return len(s.filter(func(l domain.Loan) bool { return l.IsActive() })), nil
}

func (s *memoryLoanStore) CountOverdueLoans(ctx context.Context, now time.Time) (int, error) {
	loans, _ := s.ListOverdueLoans(ctx, now)
	return len(loans), nil
}

func (s *memoryLoanStore) TopBorrowedBooks(context.Context, int) ([]domain.BookLoanCount, error) {
	return nil, nil
}

func TestCreateLoan_ConcurrentBorrowersForLastCopy(t *testing.T) {
	catalog := &atomicCatalog{book: domain.Book{BookID: uuid.NewString(), Title: "Dune", TotalCopies: 1}}
	catalog.available.Store(1)
	alice := domain.Borrower{UserID: uuid.NewString(), Email: "alice@example.com"}
	bob := domain.Borrower{UserID: uuid.NewString(), Email: "bob@example.com"}
	store := newMemoryLoanStore()
	svc := services.NewLoanService(store, catalog, staticUsers{alice.UserID: alice, bob.UserID: bob})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, borrower := range []domain.Borrower{alice, bob} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.CreateLoan(context.Background(), dto.CreateLoanRequest{UserID: borrower.UserID, BookID: catalog.book.BookID}, borrower.UserID)
		}()
	}
	wg.Wait()

	var succeeded, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, apperrors.ErrUnavailable):
			unavailable++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, unavailable)
	assert.Equal(t, int64(0), catalog.available.Load())

	loans, err := store.ListLoans(context.Background())
	require.NoError(t, err)
	assert.Len(t, loans, 1)
}

func TestReturnLoan_RestoresCopyOnce(t *testing.T) {
	catalog := &atomicCatalog{book: domain.Book{BookID: uuid.NewString(), Title: "Dune", TotalCopies: 1}}
	catalog.available.Store(1)
	reader := domain.Borrower{UserID: uuid.NewString(), Email: "reader@example.com"}
	store := newMemoryLoanStore()
	svc := services.NewLoanService(store, catalog, staticUsers{reader.UserID: reader})
	ctx := context.Background()

	loan, err := svc.CreateLoan(ctx, dto.CreateLoanRequest{UserID: reader.UserID, BookID: catalog.book.BookID}, reader.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), catalog.available.Load())

	returned, err := svc.ReturnLoan(ctx, loan.LoanID, reader.UserID)
	require.NoError(t, err)
	require.NotNil(t, returned)

	again, err := svc.ReturnLoan(ctx, loan.LoanID, reader.UserID)
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Equal(t, int64(1), catalog.available.Load())
}
