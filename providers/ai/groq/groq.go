package groq

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"schedbot/internal/utils"
	"schedbot/providers/ai"
	"schedbot/providers/observability"
)

const (
	defaultBaseURL          = "https://api.groq.com/openai/v1"
	chatCompletionsEndpoint = "/chat/completions"
)

// GroqProvider implements [ai.Provider] against Groq's OpenAI-compatible
// chat-completions API.
type GroqProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGroqProvider creates a provider configured from the environment:
// GROQ_API_KEY for authentication and GROQ_API_BASE_URL to override the
// default endpoint.
func NewGroqProvider() *GroqProvider {
	apiKey := os.Getenv("GROQ_API_KEY")
	baseURL := os.Getenv("GROQ_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &GroqProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Ensure GroqProvider implements ai.Provider at compile time.
var _ ai.Provider = (*GroqProvider)(nil)

// WithAPIKey sets the API key for the provider.
func (p *GroqProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API.
func (p *GroqProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *GroqProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// SendMessage implements the [ai.Provider] interface.
func (p *GroqProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set")
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, "groq"),
			observability.String(observability.AttrLLMModel, request.Model),
		)
	}

	httpResponse, resp, err := utils.DoPostSync[chatCompletionsResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, requestFromGeneric(request))
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return nil, fmt.Errorf("empty response from Groq API: %s", httpResponse.Status)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in Groq response")
	}

	return responseToGeneric(*resp), nil
}

// IsStopMessage reports whether the response should be treated as terminal.
func (p *GroqProvider) IsStopMessage(response *ai.ChatResponse) bool {
	if response == nil {
		return true
	}
	switch response.FinishReason {
	case "stop", "length", "content_filter":
		return true
	}
	// No content and no tool calls also means there is nothing left to do.
	return response.Content == "" && len(response.ToolCalls) == 0
}
