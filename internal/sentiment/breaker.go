package sentiment

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	breakerMaxRequests      = 1
	breakerInterval         = time.Minute
	breakerTimeout          = 30 * time.Second
	breakerFailureThreshold = 5
)

type breakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[*RawResult]
}

// WithBreaker opens a circuit after consecutive outages of p. Only
// unavailable and timed-out calls count; credential or payload problems are
// not the provider being down.
func WithBreaker(p Provider, log *zap.Logger) Provider {
	backend := string(p.Backend())
	breakerState.WithLabelValues(backend).Set(float64(gobreaker.StateClosed))

	settings := gobreaker.Settings{
		Name:        backend,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			breakerState.WithLabelValues(name).Set(float64(to))
			log.Warn("Sentiment circuit breaker state changed",
				zap.String("backend", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			kind, ok := KindOf(err)
			return !ok || (kind != KindUnavailable && kind != KindTimedOut)
		},
	}

	return &breakerProvider{
		next: p,
		cb:   gobreaker.NewCircuitBreaker[*RawResult](settings),
	}
}

func (b *breakerProvider) Backend() Backend { return b.next.Backend() }

func (b *breakerProvider) Classify(ctx context.Context, text string) (*RawResult, error) {
	res, err := b.cb.Execute(func() (*RawResult, error) {
		return b.next.Classify(ctx, text)
	})
	if breakerOpen(err) {
		return nil, newProviderError(b.Backend(), KindUnavailable, "circuit open", err)
	}
	return res, err
}

// breakerOpen reports whether err was produced by an open circuit.
func breakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
