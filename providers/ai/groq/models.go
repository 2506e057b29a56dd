package groq

import (
	"schedbot/internal/jsonschema"
	"schedbot/providers/ai"
)

/*
	GROQ CHAT COMPLETIONS API - REQUEST TYPES
	Groq exposes an OpenAI-compatible surface, so the wire format below
	follows the chat-completions schema.
*/

type chatCompletionsRequest struct {
	Model          string           `json:"model"`
	Messages       []chatMessage    `json:"messages"`
	Tools          []chatTool       `json:"tools,omitempty"`
	Temperature    *float32         `json:"temperature,omitempty"`
	MaxTokens      int              `json:"max_tokens,omitempty"`
	TopP           float32          `json:"top_p,omitempty"`
	ResponseFormat *responseFormat  `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	Name       string         `json:"name,omitempty"`
}

type chatTool struct {
	Type     string       `json:"type"` // always "function"
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"` // "text" | "json_object"
}

/*
	GROQ CHAT COMPLETIONS API - RESPONSE TYPES
*/

type chatCompletionsResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatToolCall struct {
	ID       string           `json:"id,omitempty"`
	Type     string           `json:"type"`
	Function chatToolFunction `json:"function"`
}

type chatToolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// requestFromGeneric maps the provider-agnostic request onto Groq's wire
// format. The system prompt becomes the leading system message; a response
// format with an output schema or json type forces json_object mode.
func requestFromGeneric(request ai.ChatRequest) chatCompletionsRequest {
	out := chatCompletionsRequest{
		Model: request.Model,
	}

	if request.SystemPrompt != "" {
		out.Messages = append(out.Messages, chatMessage{
			Role:    string(ai.RoleSystem),
			Content: request.SystemPrompt,
		})
	}

	for _, m := range request.Messages {
		msg := chatMessage{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
			Name:       m.Name,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, chatToolCall{
				ID:   tc.ID,
				Type: tc.Type,
				Function: chatToolFunction{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		out.Messages = append(out.Messages, msg)
	}

	for _, t := range request.Tools {
		out.Tools = append(out.Tools, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	if cfg := request.GenerationConfig; cfg != nil {
		temperature := cfg.Temperature
		out.Temperature = &temperature
		out.MaxTokens = cfg.MaxTokens
		out.TopP = cfg.TopP
	}

	if rf := request.ResponseFormat; rf != nil {
		switch {
		case rf.OutputSchema != nil, rf.Type == "json_object", rf.Type == "json_schema":
			out.ResponseFormat = &responseFormat{Type: "json_object"}
		case rf.Type != "":
			out.ResponseFormat = &responseFormat{Type: rf.Type}
		}
	}

	return out
}

// responseToGeneric maps Groq's first choice onto the provider-agnostic
// response.
func responseToGeneric(resp chatCompletionsResponse) *ai.ChatResponse {
	choice := resp.Choices[0]

	out := &ai.ChatResponse{
		Id:           resp.ID,
		Model:        resp.Model,
		Created:      resp.Created,
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
	}

	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ai.ToolCall{
			ID:   tc.ID,
			Type: tc.Type,
			Function: ai.ToolCallFunction{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}

	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}

	return out
}
