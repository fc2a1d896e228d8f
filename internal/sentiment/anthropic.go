package sentiment

import (
	"context"
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel/attribute"
)

const anthropicMaxTokens = 16

// AnthropicClient asks a Claude model for "label, confidence". SDK retries are
// disabled; the pipeline owns the retry policy.
type AnthropicClient struct {
	client anthropic.Client
	model  string
	hasKey bool
}

func NewAnthropicClient(apiKey, model, baseURL string, httpClient *http.Client) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &AnthropicClient{
		client: anthropic.NewClient(opts...),
		model:  model,
		hasKey: apiKey != "",
	}
}

func (c *AnthropicClient) Backend() Backend { return BackendAnthropic }

func (c *AnthropicClient) Classify(ctx context.Context, text string) (res *RawResult, err error) {
	ctx, span := tracer().Start(ctx, "AnthropicClient.Classify")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("llm.model", c.model))

	if !c.hasKey {
		return nil, newProviderError(BackendAnthropic, KindCredentialMissing, "ANTHROPIC_API_KEY not set", ErrCredentialMissing)
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(classificationPrompt(text))),
		},
	})
	if err != nil {
		return nil, anthropicError(err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return &RawResult{Backend: BackendAnthropic, Answer: block.Text}, nil
		}
	}
	return nil, newProviderError(BackendAnthropic, KindMalformed, "no text block in response", nil)
}

func anthropicError(err error) *ProviderError {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		pe := statusError(BackendAnthropic, apiErr.StatusCode, "")
		pe.Err = err
		return pe
	}
	return transportError(BackendAnthropic, err)
}
