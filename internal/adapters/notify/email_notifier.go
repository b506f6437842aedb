package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	portssvc "github.com/SscSPs/bookhub_loan_service/internal/core/ports/services"
	"github.com/SscSPs/bookhub_loan_service/internal/middleware"
	"github.com/jordan-wright/email"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// EmailNotifier delivers overdue reminders over SMTP.
type EmailNotifier struct {
	cfg  SMTPConfig
	send sendFunc
}

var _ portssvc.OverdueNotifier = (*EmailNotifier)(nil)

// NewEmailNotifier creates an EmailNotifier for the given relay.
func NewEmailNotifier(cfg SMTPConfig) *EmailNotifier {
	return &EmailNotifier{
		cfg:  cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

func (n *EmailNotifier) NotifyOverdue(ctx context.Context, reminder domain.OverdueReminder) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("loan_id", reminder.LoanID))
	if err := ctx.Err(); err != nil {
		return err
	}
	if reminder.UserEmail == "" {
		return fmt.Errorf("loan %s has no borrower email on record", reminder.LoanID)
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{reminder.UserEmail}
	e.Subject = overdueSubject
	e.Text = []byte(overdueBody(reminder))

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	if err := n.send(e, addr, auth); err != nil {
		logger.Error("Failed to send overdue reminder", slog.String("error", err.Error()))
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}

	logger.Info("Overdue reminder sent", slog.String("to", reminder.UserEmail))
	return nil
}
