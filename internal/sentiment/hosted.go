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

// HostedClient calls a hosted inference endpoint (Hugging Face Inference API
// style). A 503 means the model is still loading and is reported as
// KindLoading so the policy can wait and try again.
type HostedClient struct {
	httpClient *http.Client
	url        string
	token      string
}

func NewHostedClient(url, token string, httpClient *http.Client) *HostedClient {
	return &HostedClient{httpClient: httpClient, url: url, token: token}
}

func (c *HostedClient) Backend() Backend { return BackendHosted }

func (c *HostedClient) Classify(ctx context.Context, text string) (res *RawResult, err error) {
	ctx, span := tracer().Start(ctx, "HostedClient.Classify")
	defer func() { finishSpan(span, err) }()

	if c.token == "" {
		return nil, newProviderError(BackendHosted, KindCredentialMissing, "HF_API_TOKEN not set", ErrCredentialMissing)
	}

	body, err := json.Marshal(classifyRequest{
		Inputs:  text,
		Options: &requestOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, newProviderError(BackendHosted, KindMalformed, "marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, newProviderError(BackendHosted, KindUnavailable, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(BackendHosted, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(BackendHosted, fmt.Errorf("read body: %w", err))
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusServiceUnavailable:
		return nil, newProviderError(BackendHosted, KindLoading, truncate(string(payload), 200), ErrModelLoading)
	default:
		return nil, statusError(BackendHosted, resp.StatusCode, string(payload))
	}

	top, err := topLabel(payload)
	if err != nil {
		return nil, newProviderError(BackendHosted, KindMalformed, "unexpected payload", err)
	}

	return &RawResult{Backend: BackendHosted, Label: top.Label, Score: top.Score}, nil
}
