package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	var delays []time.Duration
	r := &RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   10 * time.Millisecond,
		Logger:      NewNopLogger(),
		Sleep:       func(d time.Duration) { delays = append(delays, d) },
	}

	calls := 0
	err := r.Do("ping", func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, delays)
}

func TestRetryGivesUp(t *testing.T) {
	sentinel := errors.New("boom")
	r := &RetryConfig{MaxAttempts: 3, Sleep: func(time.Duration) {}}

	calls := 0
	err := r.Do("ping", func() error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "ping failed after 3 attempts")
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	r := &RetryConfig{Sleep: func(time.Duration) {}}
	calls := 0
	_ = r.Do("once", func() error { calls++; return errors.New("x") })
	assert.Equal(t, 1, calls)
}
