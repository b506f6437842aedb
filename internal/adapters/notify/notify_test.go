package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReminder() domain.OverdueReminder {
	return domain.OverdueReminder{
		LoanID:    "loan-1",
		UserID:    "user-1",
		UserEmail: "reader@example.com",
		BookTitle: "Dune",
		DueDate:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		DaysLate:  3,
		Penalty:   decimal.RequireFromString("1.5"),
	}
}

func TestOverdueBody(t *testing.T) {
	body := overdueBody(sampleReminder())

	assert.Contains(t, body, `"Dune"`)
	assert.Contains(t, body, "due on 2024-03-01")
	assert.Contains(t, body, "3 day(s) overdue")
	assert.Contains(t, body, "1.50")
	assert.Contains(t, body, "loan-1")
}

func TestEmailNotifier_Send(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com", Port: 2525, Username: "mailer", Password: "pw", From: "no-reply@bookhub.local"})
	var gotAddr string
	var gotMail *email.Email
	var gotAuth smtp.Auth
	n.send = func(e *email.Email, addr string, auth smtp.Auth) error {
		gotMail, gotAddr, gotAuth = e, addr, auth
		return nil
	}

	err := n.NotifyOverdue(context.Background(), sampleReminder())

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.NotNil(t, gotAuth)
	require.NotNil(t, gotMail)
	assert.Equal(t, []string{"reader@example.com"}, gotMail.To)
	assert.Equal(t, "no-reply@bookhub.local", gotMail.From)
	assert.Equal(t, overdueSubject, gotMail.Subject)
}

func TestEmailNotifier_NoCredentialsSendsWithoutAuth(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{Host: "localhost", Port: 25, From: "a@b.c"})
	var gotAuth smtp.Auth = smtp.PlainAuth("", "x", "y", "z")
	n.send = func(_ *email.Email, _ string, auth smtp.Auth) error {
		gotAuth = auth
		return nil
	}

	require.NoError(t, n.NotifyOverdue(context.Background(), sampleReminder()))
	assert.Nil(t, gotAuth)
}

func TestEmailNotifier_Failures(t *testing.T) {
	n := NewEmailNotifier(SMTPConfig{Host: "localhost", Port: 25})
	relayDown := errors.New("connection refused")
	n.send = func(*email.Email, string, smtp.Auth) error { return relayDown }

	err := n.NotifyOverdue(context.Background(), sampleReminder())
	assert.ErrorIs(t, err, relayDown)

	noEmail := sampleReminder()
	noEmail.UserEmail = ""
	err = n.NotifyOverdue(context.Background(), noEmail)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = n.NotifyOverdue(ctx, sampleReminder())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.NotifyOverdue(context.Background(), sampleReminder()))
}
