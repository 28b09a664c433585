package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/go-resty/resty/v2"
)

const (
	defaultAnthropicURL = "https://api.anthropic.com"
	anthropicVersion    = "2023-06-01"
	defaultMaxTokens    = 1024
)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// AnthropicClient calls the Messages API.
type AnthropicClient struct {
	httpClient *resty.Client
	model      string
	maxTokens  int
}

func NewAnthropicClient(cfg internal.AnthropicConfig, maxTokens int, timeout time.Duration) *AnthropicClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicURL
	}
	model := cfg.Model
	if model == "" {
		model = ProviderClaude.DefaultModel()
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	client := newRestClient(baseURL, timeout).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", anthropicVersion)

	return &AnthropicClient{
		httpClient: client,
		model:      model,
		maxTokens:  maxTokens,
	}
}

func (c *AnthropicClient) Call(ctx context.Context, prompt Prompt) (string, error) {
	request := anthropicRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    prompt.System,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt.User}},
	}

	var (
		response anthropicResponse
		apiErr   anthropicError
	)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		SetError(&apiErr).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("call anthropic messages api: %w", err)
	}
	if resp.IsError() {
		return "", statusError(ProviderClaude, resp, apiErr.Error.Message)
	}

	var b strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return b.String(), nil
}
