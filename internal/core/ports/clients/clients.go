package clients

import (
	"context"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
)

// CatalogClient is the loan service's view of the catalog service.
// Transport failures are reported as apperrors.ErrRemoteUnreachable.
type CatalogClient interface {
	// GetBook returns nil, nil when the catalog has no such book.
	GetBook(ctx context.Context, bookID string) (*domain.Book, error)

	// DecrementAvailability atomically takes one copy. false means the catalog refused,
	// typically because no copy is left.
	DecrementAvailability(ctx context.Context, bookID string) (bool, error)

	// IncrementAvailability puts one copy back. false means the catalog refused.
	IncrementAvailability(ctx context.Context, bookID string) (bool, error)
}

// UserClient is the loan service's view of the user directory.
type UserClient interface {
	// GetUser returns nil, nil when the directory has no such user.
	GetUser(ctx context.Context, userID string) (*domain.Borrower, error)
}
