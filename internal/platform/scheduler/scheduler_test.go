package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/platform/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegister_EmptySpecDisablesJob(t *testing.T) {
	s := scheduler.New(quietLogger(), 0)

	ok, err := s.Register("reminders", "", func(context.Context) error { return nil })

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegister_InvalidSpec(t *testing.T) {
	s := scheduler.New(quietLogger(), 0)

	ok, err := s.Register("reminders", "every now and then", func(context.Context) error { return nil })

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := scheduler.New(quietLogger(), time.Second)
	var runs atomic.Int32
	var failing atomic.Int32

	ok, err := s.Register("tick", "@every 1s", func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	_, err = s.Register("broken", "@every 1s", func(context.Context) error {
		failing.Add(1)
		return errors.New("boom")
	})
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() > 0 && failing.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(stopCtx)
}
