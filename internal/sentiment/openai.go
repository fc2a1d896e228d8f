package sentiment

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
)

const openAIMaxTokens = 16

// OpenAIClient asks a chat-completion model for "label, confidence". Any
// OpenAI-compatible gateway works through baseURL.
type OpenAIClient struct {
	client *openai.Client
	model  string
	hasKey bool
}

func NewOpenAIClient(apiKey, model, baseURL string, httpClient *http.Client) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
		hasKey: apiKey != "",
	}
}

func (c *OpenAIClient) Backend() Backend { return BackendOpenAI }

func (c *OpenAIClient) Classify(ctx context.Context, text string) (res *RawResult, err error) {
	ctx, span := tracer().Start(ctx, "OpenAIClient.Classify")
	defer func() { finishSpan(span, err) }()
	span.SetAttributes(attribute.String("llm.model", c.model))

	if !c.hasKey {
		return nil, newProviderError(BackendOpenAI, KindCredentialMissing, "OPENAI_API_KEY not set", ErrCredentialMissing)
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: classificationPrompt(text)},
		},
		MaxTokens: openAIMaxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, newProviderError(BackendOpenAI, KindMalformed, "no choices returned", nil)
	}

	return &RawResult{Backend: BackendOpenAI, Answer: resp.Choices[0].Message.Content}, nil
}

func openAIError(err error) *ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		pe := statusError(BackendOpenAI, apiErr.HTTPStatusCode, apiErr.Message)
		pe.Err = err
		return pe
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		pe := statusError(BackendOpenAI, reqErr.HTTPStatusCode, "")
		pe.Err = err
		return pe
	}
	return transportError(BackendOpenAI, err)
}
