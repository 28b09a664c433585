package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrProviderAuthentication marks a provider rejecting the configured credentials.
	ErrProviderAuthentication = errors.New("provider authentication failed")
	ErrEmptyCompletion        = errors.New("provider returned no content")
)

const defaultRequestTimeout = 60 * time.Second

// Prompt is the two-message conversation sent to a provider.
type Prompt struct {
	System string
	User   string
}

type ChatModel interface {
	Call(ctx context.Context, prompt Prompt) (string, error)
}

func newRestClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}

// statusError converts a non-2xx provider response into an error, tagging
// credential rejections with ErrProviderAuthentication.
func statusError(provider Provider, resp *resty.Response, detail string) error {
	if detail == "" {
		detail = strings.TrimSpace(resp.String())
	}
	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrProviderAuthentication, detail)
	default:
		return fmt.Errorf("%s returned %d: %s", provider.DisplayName(), resp.StatusCode(), detail)
	}
}

// isAuthFailure also recognises SDK-style messages that mention the key.
func isAuthFailure(err error) bool {
	if errors.Is(err, ErrProviderAuthentication) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "api-key") || strings.Contains(msg, "authentication")
}
