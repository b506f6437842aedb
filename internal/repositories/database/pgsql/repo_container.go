package pgsql

import (
	portsrepo "github.com/SscSPs/bookhub_loan_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LoanRepo: newPgxLoanRepository(dbPool),
		Health:   &BaseRepository{Pool: dbPool},
	}
}
