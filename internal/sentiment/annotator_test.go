package sentiment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-review/pkg/utils"
)

// scriptedProvider replays results in order, repeating the last one.
type scriptedProvider struct {
	backend Backend
	mu      sync.Mutex
	script  []func() (*RawResult, error)
	calls   int
}

func (s *scriptedProvider) Backend() Backend { return s.backend }

func (s *scriptedProvider) Classify(ctx context.Context, text string) (*RawResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.calls++
	return s.script[i]()
}

func (s *scriptedProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func ok(label string, score float64) func() (*RawResult, error) {
	return func() (*RawResult, error) {
		return &RawResult{Backend: BackendHosted, Label: label, Score: score}, nil
	}
}

func fail(kind Kind) func() (*RawResult, error) {
	return func() (*RawResult, error) {
		return nil, newProviderError(BackendHosted, kind, "scripted", nil)
	}
}

func testConfig() utils.SentimentConfig {
	return utils.SentimentConfig{
		Timeout:         time.Second,
		PendingAttempts: 3,
		PendingBackoff:  time.Millisecond,
		RetryAttempts:   2,
		RetryBackoff:    time.Millisecond,
	}
}

func newTestPipeline(p Provider) *Pipeline {
	return NewPipeline(p, testConfig(), clockwork.NewRealClock(), zap.NewNop())
}

func TestPipeline_Success(t *testing.T) {
	p := &scriptedProvider{backend: BackendHosted, script: []func() (*RawResult, error){ok("LABEL_1", 0.87)}}

	ann := newTestPipeline(p).Annotate(context.Background(), "great")
	assert.Equal(t, Annotation{Label: LabelPositive, Score: 87}, ann)
	assert.Equal(t, 1, p.Calls())
}

func TestPipeline_LoadingThenReady(t *testing.T) {
	p := &scriptedProvider{backend: BackendHosted, script: []func() (*RawResult, error){
		fail(KindLoading), fail(KindLoading), ok("LABEL_0", 0.66),
	}}

	ann := newTestPipeline(p).Annotate(context.Background(), "meh")
	assert.Equal(t, LabelNegative, ann.Label)
	assert.InDelta(t, 66, ann.Score, 1e-9)
	assert.Equal(t, 3, p.Calls())
}

func TestPipeline_LoadingExhausted(t *testing.T) {
	p := &scriptedProvider{backend: BackendHosted, script: []func() (*RawResult, error){fail(KindLoading)}}

	ann := newTestPipeline(p).Annotate(context.Background(), "x")
	assert.Equal(t, Annotation{Label: "Analysis delayed", Score: 0, Failed: true}, ann)
	assert.Equal(t, 3, p.Calls())
}

func TestPipeline_TransientRetried(t *testing.T) {
	p := &scriptedProvider{backend: BackendHosted, script: []func() (*RawResult, error){fail(KindUnavailable)}}

	ann := newTestPipeline(p).Annotate(context.Background(), "x")
	assert.Equal(t, Annotation{Label: "Provider unavailable", Score: 0, Failed: true}, ann)
	assert.Equal(t, 3, p.Calls())
}

func TestPipeline_PermanentNotRetried(t *testing.T) {
	for kind, label := range map[Kind]string{
		KindCredentialMissing:  "Credential missing",
		KindCredentialRejected: "Credential rejected",
		KindMalformed:          "Analysis failed",
		KindTimedOut:           "Analysis timed out",
	} {
		t.Run(string(kind), func(t *testing.T) {
			p := &scriptedProvider{backend: BackendHosted, script: []func() (*RawResult, error){fail(kind)}}
			ann := newTestPipeline(p).Annotate(context.Background(), "x")
			assert.Equal(t, Annotation{Label: label, Score: 0, Failed: true}, ann)
			assert.Equal(t, 1, p.Calls())
		})
	}
}

func TestPipeline_MalformedAnswer(t *testing.T) {
	p := &scriptedProvider{backend: BackendOpenAI, script: []func() (*RawResult, error){
		func() (*RawResult, error) { return &RawResult{Backend: BackendOpenAI, Answer: "I think it is positive"}, nil },
	}}

	ann := newTestPipeline(p).Annotate(context.Background(), "x")
	assert.Equal(t, Annotation{Label: "Analysis failed", Score: 0, Failed: true}, ann)
	assert.Equal(t, 1, p.Calls())
}

func TestPipeline_AttemptTimeout(t *testing.T) {
	slow := &blockingProvider{backend: BackendLocal}

	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	ann := NewPipeline(slow, cfg, clockwork.NewRealClock(), zap.NewNop()).Annotate(context.Background(), "x")
	assert.Equal(t, "Analysis timed out", ann.Label)
	assert.Zero(t, ann.Score)
}

type blockingProvider struct{ backend Backend }

func (b *blockingProvider) Backend() Backend { return b.backend }

func (b *blockingProvider) Classify(ctx context.Context, text string) (*RawResult, error) {
	<-ctx.Done()
	return nil, transportError(b.backend, ctx.Err())
}

func TestPipeline_FakeClockWait(t *testing.T) {
	fc := clockwork.NewFakeClock()
	p := &scriptedProvider{backend: BackendHosted, script: []func() (*RawResult, error){
		fail(KindLoading), ok("LABEL_1", 0.5),
	}}
	cfg := testConfig()
	cfg.PendingBackoff = 5 * time.Second

	done := make(chan Annotation, 1)
	go func() {
		done <- NewPipeline(p, cfg, fc, zap.NewNop()).Annotate(context.Background(), "x")
	}()

	require.NoError(t, fc.BlockUntilContext(context.Background(), 1))
	fc.Advance(5 * time.Second)

	select {
	case ann := <-done:
		assert.Equal(t, Annotation{Label: LabelPositive, Score: 50}, ann)
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not resume after backoff")
	}
}

func TestPipeline_HostedModelNeverLoads(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":"Model is currently loading","estimated_time":20}`)
	}))
	defer srv.Close()

	provider := WithBreaker(NewHostedClient(srv.URL, "tok", srv.Client()), zap.NewNop())
	ann := newTestPipeline(provider).Annotate(context.Background(), "x")

	assert.Equal(t, Annotation{Label: "Analysis delayed", Score: 0, Failed: true}, ann)
	assert.EqualValues(t, 3, calls.Load())
}

func TestBreaker_OpensAfterOutages(t *testing.T) {
	p := &scriptedProvider{backend: BackendHosted, script: []func() (*RawResult, error){fail(KindUnavailable)}}
	b := WithBreaker(p, zap.NewNop())

	for i := 0; i < breakerFailureThreshold; i++ {
		_, err := b.Classify(context.Background(), "x")
		requireKind(t, err, KindUnavailable)
	}
	_, err := b.Classify(context.Background(), "x")
	requireKind(t, err, KindUnavailable)
	assert.True(t, breakerOpen(err))
	assert.Equal(t, breakerFailureThreshold, p.Calls())
	assert.Equal(t, "stop", classifyError(err).String())
}

func TestBreaker_IgnoresCredentialFailures(t *testing.T) {
	p := &scriptedProvider{backend: BackendHosted, script: []func() (*RawResult, error){fail(KindCredentialRejected)}}
	b := WithBreaker(p, zap.NewNop())

	for i := 0; i < breakerFailureThreshold*2; i++ {
		_, err := b.Classify(context.Background(), "x")
		assert.False(t, breakerOpen(err))
	}
	assert.Equal(t, breakerFailureThreshold*2, p.Calls())
}

func TestRateLimit(t *testing.T) {
	p := &scriptedProvider{backend: BackendLocal, script: []func() (*RawResult, error){ok("LABEL_1", 1)}}
	assert.Same(t, Provider(p), WithRateLimit(p, 0, 0))

	limited := WithRateLimit(p, 0.001, 1)
	_, err := limited.Classify(context.Background(), "x")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = limited.Classify(ctx, "x")
	requireKind(t, err, KindTimedOut)
	assert.Equal(t, 1, p.Calls())
}
