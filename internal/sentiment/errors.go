package sentiment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure category of a provider call.
type Kind string

const (
	// KindLoading means the model is cold; the caller should retry after a delay.
	KindLoading Kind = "loading"
	// KindUnavailable covers network failures, 429 and 5xx responses.
	KindUnavailable Kind = "unavailable"
	// KindTimedOut means the per-call deadline expired.
	KindTimedOut Kind = "timed_out"
	// KindCredentialMissing means no token is configured for the backend.
	KindCredentialMissing Kind = "credential_missing"
	// KindCredentialRejected means the provider refused the configured token.
	KindCredentialRejected Kind = "credential_rejected"
	// KindMalformed means the payload or answer could not be interpreted.
	KindMalformed Kind = "malformed"
)

var (
	ErrCredentialMissing = errors.New("credential not configured")
	ErrModelLoading      = errors.New("model is loading")
)

// ProviderError is the failure side of a provider call.
type ProviderError struct {
	Kind    Kind
	Backend Backend
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Backend, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Backend, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(backend Backend, kind Kind, message string, err error) *ProviderError {
	return &ProviderError{Kind: kind, Backend: backend, Message: message, Err: err}
}

// KindOf reports the failure kind carried by err. Context errors that escaped
// a provider unwrapped are mapped as well.
func KindOf(err error) (Kind, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimedOut, true
	case errors.Is(err, context.Canceled):
		return KindUnavailable, true
	}
	return "", false
}

// transportError classifies an error returned before any HTTP status was seen.
func transportError(backend Backend, err error) *ProviderError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newProviderError(backend, KindTimedOut, "request timed out", err)
	}
	return newProviderError(backend, KindUnavailable, "request failed", err)
}

// statusError classifies a non-success HTTP status. 503 is handled by callers
// that know whether it means "loading".
func statusError(backend Backend, code int, body string) *ProviderError {
	msg := fmt.Sprintf("unexpected status %d", code)
	if body != "" {
		msg = fmt.Sprintf("%s: %s", msg, truncate(body, 200))
	}
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return newProviderError(backend, KindCredentialRejected, msg, nil)
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return newProviderError(backend, KindTimedOut, msg, nil)
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return newProviderError(backend, KindUnavailable, msg, nil)
	default:
		return newProviderError(backend, KindMalformed, msg, nil)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
