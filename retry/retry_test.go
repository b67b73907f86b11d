package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_Success(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := Do(context.Background(), operation, 3, Linear(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first try")
}

func TestDo_EventualSuccess(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := Do(context.Background(), operation, 5, Linear(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "should succeed on third attempt")
}

func TestDo_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")
	operation := func() error {
		attempts++
		return expectedErr
	}

	err := Do(context.Background(), operation, 5, Linear(time.Millisecond))
	require.Error(t, err)
	assert.Equal(t, expectedErr, err, "should return the original error")
	assert.Equal(t, 5, attempts, "should attempt exactly maxAttempts times")
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	operation := func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("error")
	}

	err := Do(ctx, operation, 10, Linear(time.Millisecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, attempts, 2, "should stop when context is canceled")
}

func TestDo_ZeroMaxAttempts(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := Do(context.Background(), operation, 0, Linear(time.Millisecond))
	require.ErrorIs(t, err, ErrInvalidMaxAttempts)
	assert.Zero(t, attempts, "operation must not run")
}

func TestLinear(t *testing.T) {
	b := Linear(time.Second)
	assert.Equal(t, 1*time.Second, b(1))
	assert.Equal(t, 2*time.Second, b(2))
	assert.Equal(t, 5*time.Second, b(5))
}

func TestExponential(t *testing.T) {
	b := Exponential(time.Second)
	assert.Equal(t, 1*time.Second, b(1))
	assert.Equal(t, 2*time.Second, b(2))
	assert.Equal(t, 8*time.Second, b(4))
}

func TestDo_BackoffReceivesFailedAttempt(t *testing.T) {
	attempts := 0
	var seen []int
	backoff := func(attempt int) time.Duration {
		seen = append(seen, attempt)
		return 0
	}

	_ = Do(context.Background(), func() error {
		attempts++
		return errors.New("error")
	}, 4, backoff)

	assert.Equal(t, 4, attempts)
	// No sleep after the final attempt.
	assert.Equal(t, []int{1, 2, 3}, seen)
}
