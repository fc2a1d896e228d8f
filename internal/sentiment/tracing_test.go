package sentiment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestHostedClient_SpanOnSuccess(t *testing.T) {
	sr := recordSpans(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[[{"label":"LABEL_1","score":0.9}]]`)
	}))
	defer srv.Close()

	_, err := NewHostedClient(srv.URL, "hf_token", srv.Client()).Classify(context.Background(), "good")
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "HostedClient.Classify", spans[0].Name())

	status, ok := spanAttr(spans[0], "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusOK), status.AsInt64())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestHostedClient_SpanOnFailure(t *testing.T) {
	sr := recordSpans(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":"Model is currently loading"}`)
	}))
	defer srv.Close()

	_, err := NewHostedClient(srv.URL, "hf_token", srv.Client()).Classify(context.Background(), "good")
	requireKind(t, err, KindLoading)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "HostedClient.Classify", span.Name())

	status, ok := spanAttr(span, "http.status_code")
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusServiceUnavailable), status.AsInt64())

	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, err.Error(), span.Status().Description)
	require.NotEmpty(t, span.Events())
	assert.Equal(t, "exception", span.Events()[0].Name)
}

func TestHostedClient_SpanWithoutToken(t *testing.T) {
	sr := recordSpans(t)

	_, err := NewHostedClient("http://unused.invalid", "", http.DefaultClient).Classify(context.Background(), "x")
	requireKind(t, err, KindCredentialMissing)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	_, ok := spanAttr(spans[0], "http.status_code")
	assert.False(t, ok)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
