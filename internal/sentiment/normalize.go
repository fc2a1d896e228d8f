package sentiment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	LabelPositive = "Positive"
	LabelNegative = "Negative"
)

// Sentinel labels stored when no real classification could be obtained.
const (
	SentinelDelayed            = "Analysis delayed"
	SentinelUnavailable        = "Provider unavailable"
	SentinelTimedOut           = "Analysis timed out"
	SentinelCredentialMissing  = "Credential missing"
	SentinelCredentialRejected = "Credential rejected"
	SentinelFailed             = "Analysis failed"
)

var sentinels = map[Kind]string{
	KindLoading:            SentinelDelayed,
	KindUnavailable:        SentinelUnavailable,
	KindTimedOut:           SentinelTimedOut,
	KindCredentialMissing:  SentinelCredentialMissing,
	KindCredentialRejected: SentinelCredentialRejected,
	KindMalformed:          SentinelFailed,
}

// Annotation is the canonical sentiment attached to a review.
type Annotation struct {
	Label string
	Score float64

	// Failed marks a sentinel. A generative answer that happens to read like
	// a sentinel label is still a real classification.
	Failed bool
}

// Sentinel returns the terminal annotation for a failure kind. Unknown kinds
// fall back to the generic failure label.
func Sentinel(kind Kind) Annotation {
	label, ok := sentinels[kind]
	if !ok {
		label = SentinelFailed
	}
	return Annotation{Label: label, Score: 0, Failed: true}
}

// Normalizer maps a provider answer to an Annotation. An error is always a
// *ProviderError of KindMalformed.
type Normalizer interface {
	Normalize(raw *RawResult) (Annotation, error)
}

// NormalizerFor picks the normalizer matching the backend's answer shape.
func NormalizerFor(backend Backend) Normalizer {
	if backend.Generative() {
		return AnswerNormalizer{}
	}
	return LabelCodeNormalizer{}
}

// LabelCodeNormalizer handles classifier labels such as LABEL_1, POSITIVE or
// "1 star". A label containing "1" or "pos" is positive, anything else negative.
type LabelCodeNormalizer struct{}

func (LabelCodeNormalizer) Normalize(raw *RawResult) (Annotation, error) {
	if raw == nil || raw.Label == "" {
		return Annotation{}, newProviderError(backendOf(raw), KindMalformed, "empty label", nil)
	}
	if math.IsNaN(raw.Score) || math.IsInf(raw.Score, 0) {
		return Annotation{}, newProviderError(raw.Backend, KindMalformed, fmt.Sprintf("non-finite score for %q", raw.Label), nil)
	}

	label := LabelNegative
	if strings.Contains(raw.Label, "1") || strings.Contains(strings.ToUpper(raw.Label), "POS") {
		label = LabelPositive
	}
	return Annotation{Label: label, Score: toPercent(raw.Score)}, nil
}

// AnswerNormalizer parses the "label, confidence" free-text answer of a
// generative backend. The label is kept as written.
type AnswerNormalizer struct{}

func (AnswerNormalizer) Normalize(raw *RawResult) (Annotation, error) {
	if raw == nil {
		return Annotation{}, newProviderError("", KindMalformed, "empty answer", nil)
	}

	parts := strings.Split(raw.Answer, ",")
	if len(parts) < 2 {
		return Annotation{}, newProviderError(raw.Backend, KindMalformed, fmt.Sprintf("answer has no confidence: %q", truncate(raw.Answer, 80)), nil)
	}

	label := strings.TrimSpace(parts[0])
	if label == "" {
		return Annotation{}, newProviderError(raw.Backend, KindMalformed, "answer has no label", nil)
	}

	confidence, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Annotation{}, newProviderError(raw.Backend, KindMalformed, "confidence is not a number", err)
	}
	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		return Annotation{}, newProviderError(raw.Backend, KindMalformed, "confidence is not finite", nil)
	}

	return Annotation{Label: label, Score: toPercent(confidence)}, nil
}

// toPercent scales a 0-1 confidence to 0-100, rounded to two decimals.
func toPercent(v float64) float64 {
	pct := math.Round(v*100*100) / 100
	return math.Max(0, math.Min(100, pct))
}

func backendOf(raw *RawResult) Backend {
	if raw == nil {
		return ""
	}
	return raw.Backend
}
