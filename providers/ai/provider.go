package ai

import (
	"context"
	"net/http"
)

// Provider is the interface every chat-completion backend must satisfy.
// It covers the full lifecycle of a single request: authentication, endpoint
// configuration, message dispatch, and response interpretation.
type Provider interface {
	// SendMessage sends a chat request to the backend and returns the
	// completed response. Returns an error if the call fails, the context
	// is cancelled, or the response cannot be decoded.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// IsStopMessage reports whether the response represents a terminal
	// completion, i.e. the model has nothing more to say and no further
	// tool calls are expected. Providers apply their own finish-reason
	// semantics.
	IsStopMessage(response *ChatResponse) bool

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}
