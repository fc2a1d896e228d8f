package sentiment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
)

// LocalClient calls a text-classification pipeline running next to the
// service (for example a transformers sidecar on localhost). It speaks the
// pipeline's own JSON: {"inputs": text} in, [{label, score}] out.
type LocalClient struct {
	httpClient *http.Client
	url        string
}

func NewLocalClient(url string, httpClient *http.Client) *LocalClient {
	return &LocalClient{httpClient: httpClient, url: url}
}

func (c *LocalClient) Backend() Backend { return BackendLocal }

func (c *LocalClient) Classify(ctx context.Context, text string) (res *RawResult, err error) {
	ctx, span := tracer().Start(ctx, "LocalClient.Classify")
	defer func() { finishSpan(span, err) }()

	if c.url == "" {
		return nil, newProviderError(BackendLocal, KindUnavailable, "local model url not configured", nil)
	}

	body, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return nil, newProviderError(BackendLocal, KindMalformed, "marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, newProviderError(BackendLocal, KindUnavailable, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(BackendLocal, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(BackendLocal, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(BackendLocal, resp.StatusCode, string(payload))
	}

	top, err := topLabel(payload)
	if err != nil {
		return nil, newProviderError(BackendLocal, KindMalformed, "unexpected payload", err)
	}

	return &RawResult{Backend: BackendLocal, Label: top.Label, Score: top.Score}, nil
}
