package sentiment

import (
	"context"

	"golang.org/x/time/rate"
)

type limitedProvider struct {
	next    Provider
	limiter *rate.Limiter
}

// WithRateLimit throttles calls to p to perSecond with the given burst.
// A non-positive rate returns p unchanged.
func WithRateLimit(p Provider, perSecond float64, burst int) Provider {
	if perSecond <= 0 {
		return p
	}
	if burst < 1 {
		burst = 1
	}
	return &limitedProvider{next: p, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (l *limitedProvider) Backend() Backend { return l.next.Backend() }

func (l *limitedProvider) Classify(ctx context.Context, text string) (*RawResult, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, newProviderError(l.Backend(), KindTimedOut, "throttled until deadline", err)
	}
	return l.next.Classify(ctx, text)
}
