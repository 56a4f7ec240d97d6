package generation

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"endurafit/workout-service/internal/config"
	"endurafit/workout-service/internal/domain"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Client issues the single chat-completion request a generation attempt
// needs and hands back the raw response text. It never retries and never
// substitutes default data: every partial-failure path maps to a distinct
// error kind from the domain taxonomy.
type Client struct {
	api         openai.Client
	model       string
	temperature float64
}

// NewClient builds a generation client from configuration. The request
// timeout bounds a single HTTP exchange; the total timeout bounds the whole
// call including connection establishment.
func NewClient(cfg config.OpenAIConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.RequestTimeout),
		option.WithHTTPClient(&http.Client{Timeout: cfg.TotalTimeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		api:         openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Complete sends the system persona and user prompt to the chat-completion
// endpoint and returns the generated text verbatim.
//
// Failure kinds, each its own AppError: no connectivity (100), timeout (101),
// malformed or empty top-level response (102), non-2xx status with the code
// (103), and empty generated content (201).
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	chat, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", mapTransportError(err)
	}

	if len(chat.Choices) == 0 {
		return "", domain.ErrInvalidResponse.WithDetail("response contained no choices")
	}
	content := chat.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", domain.NewGenerationFailed("no content in response")
	}
	return content, nil
}

// mapTransportError sorts a failed completion call into the network branch
// of the error taxonomy.
func mapTransportError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return domain.NewServerError(apiErr.StatusCode).WithCause(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrRequestTimeout.WithCause(err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return domain.ErrRequestTimeout.WithCause(err)
		}
		return domain.ErrNoInternet.WithCause(err)
	}
	// The request went through but the response envelope did not decode.
	return domain.ErrInvalidResponse.WithCause(err)
}
