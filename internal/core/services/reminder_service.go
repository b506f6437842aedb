package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	portsrepo "github.com/SscSPs/bookhub_loan_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookhub_loan_service/internal/core/ports/services"
)

type reminderService struct {
	BaseService
	loanRepo portsrepo.LoanReader
	notifier portssvc.OverdueNotifier
	policy   domain.LoanPolicy
}

// ReminderServiceOption is a functional option for configuring the reminder service
type ReminderServiceOption func(*reminderService)

// WithReminderClock replaces the wall clock.
func WithReminderClock(now func() time.Time) ReminderServiceOption {
	return func(s *reminderService) {
		s.now = now
	}
}

// NewReminderService creates a service that notifies borrowers of overdue loans.
func NewReminderService(repo portsrepo.LoanReader, notifier portssvc.OverdueNotifier, policy domain.LoanPolicy, options ...ReminderServiceOption) portssvc.ReminderSvc {
	svc := &reminderService{loanRepo: repo, notifier: notifier, policy: policy}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReminderSvc = (*reminderService)(nil)

// SendOverdueReminders notifies each overdue borrower once. Send failures are
// counted and do not stop the run; cancellation does.
func (s *reminderService) SendOverdueReminders(ctx context.Context) (*domain.ReminderRunResult, error) {
	now := s.Now()
	loans, err := s.loanRepo.ListOverdueLoans(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue loans")
		return nil, err
	}

	result := &domain.ReminderRunResult{Scanned: len(loans)}
	for _, loan := range loans {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		reminder := domain.OverdueReminder{
			LoanID:    loan.LoanID,
			UserID:    loan.UserID,
			UserEmail: loan.UserEmail,
			BookTitle: loan.BookTitle,
			DueDate:   loan.DueDate,
			DaysLate:  loan.DaysLate(now),
			Penalty:   loan.CurrentPenalty(now, s.policy.PenaltyRatePerDay),
		}
		if err := s.notifier.NotifyOverdue(ctx, reminder); err != nil {
			result.Failed++
			s.LogError(ctx, err, "Overdue reminder not delivered",
				slog.String("loan_id", loan.LoanID),
				slog.String("user_id", loan.UserID))
			continue
		}
		result.Sent++
	}

	s.LogInfo(ctx, "Overdue reminder run finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("sent", result.Sent),
		slog.Int("failed", result.Failed))
	return result, nil
}
