package services

import portsrepo "github.com/SscSPs/bookhub_loan_service/internal/core/ports/repositories"

// ServiceContainer holds instances of all the application services.
// It is the entry point used by handlers and background jobs.
type ServiceContainer struct {
	Loan     LoanSvcFacade
	Reminder ReminderSvc
	Health   portsrepo.HealthChecker
}
