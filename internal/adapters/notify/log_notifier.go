package notify

import (
	"context"
	"log/slog"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	portssvc "github.com/SscSPs/bookhub_loan_service/internal/core/ports/services"
	"github.com/SscSPs/bookhub_loan_service/internal/middleware"
)

// LogNotifier records reminders in the log instead of sending them.
// Used when no SMTP relay is configured.
type LogNotifier struct{}

var _ portssvc.OverdueNotifier = LogNotifier{}

func (LogNotifier) NotifyOverdue(ctx context.Context, reminder domain.OverdueReminder) error {
	middleware.GetLoggerFromCtx(ctx).Info("Overdue reminder (delivery disabled)",
		slog.String("loan_id", reminder.LoanID),
		slog.String("user_id", reminder.UserID),
		slog.String("to", reminder.UserEmail),
		slog.Int64("days_late", reminder.DaysLate),
		slog.String("penalty", reminder.Penalty.StringFixed(2)),
	)
	return nil
}
