package retry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/niksmo/ecoscan/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestDoWithResult(t *testing.T) {
	cfg := retry.Config{
		MaxAttempts: 2,
		Backoff:     retry.FixedBackoff(time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, errTransient)
		},
	}

	t.Run("SecondAttemptSucceeds", func(t *testing.T) {
		var calls int
		v, err := retry.DoWithResult(t.Context(), cfg, func() (string, error) {
			calls++
			if calls == 1 {
				return "", errTransient
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, 2, calls)
	})

	t.Run("BudgetExhausted", func(t *testing.T) {
		var calls int
		_, err := retry.DoWithResult(t.Context(), cfg, func() (string, error) {
			calls++
			return "", errTransient
		})
		require.ErrorIs(t, err, errTransient)
		assert.Equal(t, 2, calls)
	})

	t.Run("DefaultBackoffIsExponential", func(t *testing.T) {
		var calls int
		_, err := retry.DoWithResult(t.Context(), retry.Config{
			MaxAttempts: 2,
		}, func() (string, error) {
			calls++
			if calls == 1 {
				return "", errTransient
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("NonRetryableStopsImmediately", func(t *testing.T) {
		permanent := errors.New("permanent")
		var calls int
		_, err := retry.DoWithResult(t.Context(), cfg, func() (string, error) {
			calls++
			return "", permanent
		})
		require.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})
}

func TestExponentialBackoff(t *testing.T) {
	delay := 10 * time.Millisecond
	backoff := retry.ExponentialBackoff(delay)

	// base doubles per attempt; jitter adds at most half the base.
	first := backoff(1)
	assert.Greater(t, first, 2*delay)
	assert.LessOrEqual(t, first, 3*delay)

	second := backoff(2)
	assert.Greater(t, second, 4*delay)
	assert.LessOrEqual(t, second, 6*delay)
}
