// Package sentiment annotates review text with a sentiment label and a 0-100
// confidence score using an external classifier.
//
// A Provider talks to one backend and returns its raw answer or a
// *ProviderError. A Normalizer maps that answer to the canonical Annotation.
// Pipeline ties both together under the retry policy and turns every terminal
// failure into a sentinel Annotation, so callers never see an error.
package sentiment

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"movie-review/pkg/utils"
)

const tracerName = "movie-review.sentiment"

// tracer resolves against the global provider on every call so a provider
// installed after package init still receives the spans.
func tracer() trace.Tracer { return otel.Tracer(tracerName) }

type Backend string

const (
	BackendLocal     Backend = "local"
	BackendHosted    Backend = "hosted"
	BackendOpenAI    Backend = "openai"
	BackendAnthropic Backend = "anthropic"
)

// Generative reports whether the backend answers in free text rather than
// label codes.
func (b Backend) Generative() bool {
	return b == BackendOpenAI || b == BackendAnthropic
}

// RawResult is a successful provider answer before normalization. Classifier
// backends fill Label and Score; generative backends fill Answer.
type RawResult struct {
	Backend Backend
	Label   string
	Score   float64
	Answer  string
}

// Provider classifies a single text. Implementations must be safe for
// concurrent use.
type Provider interface {
	Backend() Backend
	Classify(ctx context.Context, text string) (*RawResult, error)
}

// NewProvider builds the configured backend wrapped in the circuit breaker and
// the client-side throttle. A missing credential is logged, not returned: the
// service keeps accepting reviews and stores them with a sentinel.
func NewProvider(cfg utils.SentimentConfig, log *zap.Logger) (Provider, error) {
	log = log.With(zap.String("component", "sentiment"))
	httpClient := &http.Client{}

	var (
		p          Provider
		credential string
	)
	switch Backend(cfg.Backend) {
	case BackendLocal:
		p = NewLocalClient(cfg.LocalURL, httpClient)
		credential = "-"
	case BackendHosted:
		p = NewHostedClient(cfg.HostedURL, cfg.HostedToken, httpClient)
		credential = cfg.HostedToken
	case BackendOpenAI:
		p = NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, httpClient)
		credential = cfg.OpenAIKey
	case BackendAnthropic:
		p = NewAnthropicClient(cfg.AnthropicKey, cfg.AnthropicModel, cfg.AnthropicBaseURL, httpClient)
		credential = cfg.AnthropicKey
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q", cfg.Backend)
	}

	if credential == "" {
		log.Warn("Sentiment provider credential not configured, reviews will be stored unanalyzed",
			zap.String("backend", cfg.Backend))
	}

	p = WithBreaker(p, log)
	p = WithRateLimit(p, cfg.RateLimit, cfg.RateBurst)

	log.Info("Sentiment provider ready",
		zap.String("backend", cfg.Backend),
		zap.Duration("timeout", cfg.Timeout),
		zap.Float64("rate_limit", cfg.RateLimit),
	)

	return p, nil
}

// finishSpan records err on span before ending it.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
