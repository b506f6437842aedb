package services

import (
	"github.com/SscSPs/bookhub_loan_service/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/bookhub_loan_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookhub_loan_service/internal/core/ports/services"
	"github.com/SscSPs/bookhub_loan_service/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, catalog clients.CatalogClient, users clients.UserClient, notifier portssvc.OverdueNotifier) *portssvc.ServiceContainer {
	policy := cfg.LoanPolicy()

	return &portssvc.ServiceContainer{
		Loan:     NewLoanService(repos.LoanRepo, catalog, users, WithLoanPolicy(policy)),
		Reminder: NewReminderService(repos.LoanRepo, notifier, policy),
		Health:   repos.Health,
	}
}
