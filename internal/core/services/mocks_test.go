package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock LoanRepository ---

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) loan(args mock.Arguments) (*domain.Loan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) loans(args mock.Arguments) ([]domain.Loan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return m.loan(m.Called(ctx, loanID))
}

func (m *MockLoanRepository) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	return m.loans(m.Called(ctx))
}

func (m *MockLoanRepository) ListLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	return m.loans(m.Called(ctx, userID))
}

func (m *MockLoanRepository) ListLoansByBook(ctx context.Context, bookID string) ([]domain.Loan, error) {
	return m.loans(m.Called(ctx, bookID))
}

func (m *MockLoanRepository) ListActiveLoansByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	return m.loans(m.Called(ctx, userID))
}

func (m *MockLoanRepository) ListOverdueLoans(ctx context.Context, now time.Time) ([]domain.Loan, error) {
	return m.loans(m.Called(ctx, now))
}

func (m *MockLoanRepository) FindActiveLoanByUserAndBook(ctx context.Context, userID, bookID string) (*domain.Loan, error) {
	return m.loan(m.Called(ctx, userID, bookID))
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepository) CountActiveLoansByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLoanRepository) CountLoans(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLoanRepository) CountActiveLoans(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLoanRepository) CountOverdueLoans(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockLoanRepository) TopBorrowedBooks(ctx context.Context, k int) ([]domain.BookLoanCount, error) {
	args := m.Called(ctx, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookLoanCount), args.Error(1)
}

// --- Mock CatalogClient ---

type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockCatalogClient) DecrementAvailability(ctx context.Context, bookID string) (bool, error) {
	args := m.Called(ctx, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogClient) IncrementAvailability(ctx context.Context, bookID string) (bool, error) {
	args := m.Called(ctx, bookID)
	return args.Bool(0), args.Error(1)
}

// --- Mock UserClient ---

type MockUserClient struct {
	mock.Mock
}

func (m *MockUserClient) GetUser(ctx context.Context, userID string) (*domain.Borrower, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrower), args.Error(1)
}

// --- Mock OverdueNotifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyOverdue(ctx context.Context, reminder domain.OverdueReminder) error {
	return m.Called(ctx, reminder).Error(0)
}
