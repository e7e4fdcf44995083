// Package retry executes fallible operations under an exponential
// backoff policy. It is used where supplysense touches external systems,
// currently the Redis context memory.
package retry

import (
	"context"
	"time"

	"github.com/tagus/supplysense/pkg/logging"
)

// Policy describes how an Executor schedules attempts.
type Policy struct {
	// InitialInterval is the delay before the second attempt.
	InitialInterval time.Duration

	// BackoffCoefficient multiplies the interval after each failure.
	BackoffCoefficient float64

	// MaximumInterval caps the delay between attempts.
	MaximumInterval time.Duration

	// MaximumAttempts bounds the total number of attempts.
	MaximumAttempts int
}

// DefaultPolicy returns a policy suitable for short-lived connection
// checks: three attempts starting at 100ms, doubling, capped at 1s.
func DefaultPolicy() *Policy {
	return &Policy{
		InitialInterval:    100 * time.Millisecond,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Second,
		MaximumAttempts:    3,
	}
}

// Executor runs operations with retries under a Policy.
type Executor struct {
	policy *Policy
	logger logging.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the logger used for attempt tracing.
func WithLogger(logger logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an executor for the given policy. A nil policy
// gets DefaultPolicy.
func NewExecutor(policy *Policy, opts ...ExecutorOption) *Executor {
	if policy == nil {
		policy = DefaultPolicy()
	}
	e := &Executor{
		policy: policy,
		logger: logging.Noop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs operation until it succeeds, the policy's attempts are
// exhausted, or ctx is cancelled. The last operation error is returned
// on exhaustion; ctx.Err is returned on cancellation.
func (e *Executor) Execute(ctx context.Context, operation func() error) error {
	var lastErr error
	interval := e.policy.InitialInterval

	for attempt := 1; attempt <= e.policy.MaximumAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == e.policy.MaximumAttempts {
			break
		}

		e.logger.Debug(ctx, "operation failed, scheduling retry", map[string]interface{}{
			"attempt":       attempt,
			"max_attempts":  e.policy.MaximumAttempts,
			"error":         lastErr.Error(),
			"next_interval": interval.String(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		interval = time.Duration(float64(interval) * e.policy.BackoffCoefficient)
		if interval > e.policy.MaximumInterval {
			interval = e.policy.MaximumInterval
		}
	}

	return lastErr
}
