package sentiment

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"movie-review/pkg/retry"
	"movie-review/pkg/utils"
)

// Annotator attaches a sentiment to review text. It never fails: when the
// provider cannot answer the result is a sentinel Annotation with score 0.
type Annotator interface {
	Annotate(ctx context.Context, text string) Annotation
}

// Pipeline is the Annotator backed by a Provider, the retry policy and the
// backend's Normalizer.
type Pipeline struct {
	provider   Provider
	normalizer Normalizer
	policy     retry.Policy
	timeout    time.Duration
	log        *zap.Logger
}

func NewPipeline(provider Provider, cfg utils.SentimentConfig, clock clockwork.Clock, log *zap.Logger) *Pipeline {
	backend := provider.Backend()
	log = log.With(zap.String("service", "sentiment"), zap.String("backend", string(backend)))

	return &Pipeline{
		provider:   provider,
		normalizer: NormalizerFor(backend),
		timeout:    cfg.Timeout,
		log:        log,
		policy: retry.Policy{
			WaitAttempts:  cfg.PendingAttempts,
			WaitBackoff:   cfg.PendingBackoff,
			RetryAttempts: cfg.RetryAttempts,
			RetryBackoff:  cfg.RetryBackoff,
			Clock:         clock,
			OnRetry: func(attempt int, action retry.Action, err error, backoff time.Duration) {
				retriesTotal.WithLabelValues(string(backend), action.String()).Inc()
				log.Info("Sentiment provider not ready, retrying",
					zap.Int("attempt", attempt),
					zap.String("action", action.String()),
					zap.Duration("backoff", backoff),
					zap.Error(err),
				)
			},
		},
	}
}

func (p *Pipeline) Annotate(ctx context.Context, text string) Annotation {
	backend := string(p.provider.Backend())

	ann, err := retry.Do(ctx, p.policy, classifyError, p.attempt(text))
	if err == nil {
		classificationsTotal.WithLabelValues(backend, outcomeLabel(ann.Label)).Inc()
		return ann
	}

	kind, ok := KindOf(err)
	if !ok {
		kind = KindMalformed
	}
	classificationsTotal.WithLabelValues(backend, string(kind)).Inc()

	sentinel := Sentinel(kind)
	p.log.Warn("Sentiment analysis failed, storing sentinel",
		zap.String("kind", string(kind)),
		zap.String("label", sentinel.Label),
		zap.Error(err),
	)
	return sentinel
}

func (p *Pipeline) attempt(text string) retry.Operation[Annotation] {
	return func(ctx context.Context) (Annotation, error) {
		if p.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}

		start := time.Now()
		raw, err := p.provider.Classify(ctx, text)
		providerDuration.WithLabelValues(string(p.provider.Backend())).Observe(time.Since(start).Seconds())
		if err != nil {
			return Annotation{}, err
		}
		return p.normalizer.Normalize(raw)
	}
}

// outcomeLabel keeps the metric bounded: generative labels are free text.
func outcomeLabel(label string) string {
	switch {
	case strings.EqualFold(label, LabelPositive):
		return "positive"
	case strings.EqualFold(label, LabelNegative):
		return "negative"
	default:
		return "other"
	}
}

// classifyError maps a provider failure to the retry action. Only a loading
// model waits and only an outage retries; an open breaker stops at once.
func classifyError(err error) retry.Action {
	if breakerOpen(err) {
		return retry.Stop
	}
	kind, _ := KindOf(err)
	switch kind {
	case KindLoading:
		return retry.Wait
	case KindUnavailable:
		return retry.Retry
	default:
		return retry.Stop
	}
}
