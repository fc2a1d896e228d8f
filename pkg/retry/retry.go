// Package retry runs an operation under a bounded, fixed-backoff retry policy.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

type Action int

const (
	Stop  Action = iota // permanent error, abort immediately
	Retry               // transient error, short fixed delay
	Wait                // remote side not ready yet, longer fixed delay
)

func (a Action) String() string {
	switch a {
	case Stop:
		return "stop"
	case Retry:
		return "retry"
	case Wait:
		return "wait"
	default:
		return "unknown"
	}
}

// Policy bounds Wait and Retry outcomes separately. WaitAttempts counts total
// calls that may come back as Wait; RetryAttempts counts extra calls after
// transient failures.
type Policy struct {
	WaitAttempts  int
	WaitBackoff   time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
	Clock         clockwork.Clock
	OnRetry       func(attempt int, action Action, err error, backoff time.Duration)
}

type Classify func(err error) Action
type Operation[T any] func(ctx context.Context) (T, error)

func Do[T any](ctx context.Context, p Policy, classify Classify, op Operation[T]) (T, error) {
	var zero T
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	waits, retries := 0, 0
	for attempt := 1; ; attempt++ {
		val, err := op(ctx)
		if err == nil {
			return val, nil
		}

		action := classify(err)
		var backoff time.Duration
		switch action {
		case Wait:
			waits++
			if waits >= p.WaitAttempts {
				return zero, &ExhaustedError{Attempts: attempt, Err: err}
			}
			backoff = p.WaitBackoff
		case Retry:
			retries++
			if retries > p.RetryAttempts {
				return zero, &ExhaustedError{Attempts: attempt, Err: err}
			}
			backoff = p.RetryBackoff
		default:
			return zero, &PermanentError{Err: err}
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, action, err, backoff)
		}

		select {
		case <-clock.After(backoff):
		case <-ctx.Done():
			return zero, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}
	}
}

type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}
func (e *ExhaustedError) Unwrap() error { return e.Err }
