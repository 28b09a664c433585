package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/go-resty/resty/v2"
)

const defaultAzureAPIVersion = "2024-02-01"

type azureMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type azureRequest struct {
	Messages  []azureMessage `json:"messages"`
	MaxTokens int            `json:"max_tokens,omitempty"`
}

type azureResponse struct {
	Choices []struct {
		Message azureMessage `json:"message"`
	} `json:"choices"`
}

type azureError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AzureClient calls an Azure OpenAI chat-completions deployment.
type AzureClient struct {
	httpClient *resty.Client
	deployment string
	apiVersion string
	maxTokens  int
}

func NewAzureClient(cfg internal.AzureConfig, maxTokens int, timeout time.Duration) *AzureClient {
	deployment := cfg.Deployment
	if deployment == "" {
		deployment = ProviderAzureOpenAI.DefaultModel()
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAzureAPIVersion
	}

	return &AzureClient{
		httpClient: newRestClient(cfg.Endpoint, timeout).SetHeader("api-key", cfg.APIKey),
		deployment: deployment,
		apiVersion: apiVersion,
		maxTokens:  maxTokens,
	}
}

func (c *AzureClient) Call(ctx context.Context, prompt Prompt) (string, error) {
	request := azureRequest{
		Messages: []azureMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		MaxTokens: c.maxTokens,
	}

	var (
		response azureResponse
		apiErr   azureError
	)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("deployment", c.deployment).
		SetQueryParam("api-version", c.apiVersion).
		SetBody(request).
		SetResult(&response).
		SetError(&apiErr).
		Post("/openai/deployments/{deployment}/chat/completions")
	if err != nil {
		return "", fmt.Errorf("call azure openai chat completions: %w", err)
	}
	if resp.IsError() {
		return "", statusError(ProviderAzureOpenAI, resp, apiErr.Error.Message)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return response.Choices[0].Message.Content, nil
}
