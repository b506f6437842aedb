package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	LoanRepo LoanRepositoryFacade
	Health   HealthChecker
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
