package services

import (
	"context"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
)

// OverdueNotifier delivers one overdue reminder for a loan.
type OverdueNotifier interface {
	NotifyOverdue(ctx context.Context, reminder domain.OverdueReminder) error
}

// ReminderSvc sends reminders for every overdue loan.
type ReminderSvc interface {
	SendOverdueReminders(ctx context.Context) (*domain.ReminderRunResult, error)
}
