package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) *Policy {
	return &Policy{
		InitialInterval:    time.Millisecond,
		BackoffCoefficient: 2.0,
		MaximumInterval:    5 * time.Millisecond,
		MaximumAttempts:    attempts,
	}
}

func TestExecuteSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := NewExecutor(fastPolicy(3)).Execute(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := NewExecutor(fastPolicy(5)).Execute(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("still broken")
	calls := 0
	err := NewExecutor(fastPolicy(3)).Execute(context.Background(), func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestExecuteHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := NewExecutor(fastPolicy(10)).Execute(ctx, func() error {
		calls++
		cancel()
		return errors.New("fail")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewExecutorNilPolicy(t *testing.T) {
	e := NewExecutor(nil)
	require.NotNil(t, e.policy)
	assert.Equal(t, DefaultPolicy().MaximumAttempts, e.policy.MaximumAttempts)
}
