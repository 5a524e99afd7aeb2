package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/fintrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := fmt.Errorf("expense 7: %w", ErrNotFound)
	err := NewUserError("Expense not found", cause)

	assert.Equal(t, "Expense not found: expense 7: not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(err))

	var userErr *UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "Expense not found", userErr.UserMessage)

	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("503"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("400"), Retryable: false}))
	assert.False(t, IsRetryable(ErrNotFound))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerTo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))
	slog.Info("created category", "id", 1)
	assert.Contains(t, buf.String(), `"msg":"created category"`)

	buf.Reset()
	slog.Debug("hidden")
	assert.Empty(t, buf.String())

	assert.ErrorIs(t, SetupLoggerTo(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestWithRetry(t *testing.T) {
	opts := service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return errors.New("still broken")
		}, opts)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		permanent := &RetryableError{Err: errors.New("bad request"), Retryable: false}
		err := WithRetry(context.Background(), func() error {
			calls++
			return permanent
		}, opts)
		assert.Equal(t, permanent, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error {
			return errors.New("fail")
		}, opts)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
