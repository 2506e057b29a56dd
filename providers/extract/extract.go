package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"schedbot/conversation"
	"schedbot/event"
	"schedbot/internal/parse"
	"schedbot/providers/ai"
	"schedbot/providers/observability"
)

const defaultModel = "openai/gpt-oss-120b"

const extractionPrompt = "Extract calendar event details as strict JSON with keys: " +
	"title (string), start (ISO 8601), end (ISO 8601), attendees (array of emails), " +
	"description (string, optional), timezone (string, optional). Return ONLY JSON."

// Drafter turns free-form user text into event drafts using a chat model.
// It implements both [conversation.Extractor] and [conversation.Editor].
type Drafter struct {
	provider ai.Provider
	model    string
	timezone string
	obs      observability.Provider
}

var (
	_ conversation.Extractor = (*Drafter)(nil)
	_ conversation.Editor    = (*Drafter)(nil)
)

// Option configures a Drafter.
type Option func(*Drafter)

// WithModel overrides the model used for extraction and edits.
func WithModel(model string) Option {
	return func(d *Drafter) {
		d.model = model
	}
}

// WithDefaultTimezone makes extraction assume the given IANA timezone when
// the user does not name one.
func WithDefaultTimezone(timezone string) Option {
	return func(d *Drafter) {
		d.timezone = timezone
	}
}

// WithObservability attaches an observability provider.
func WithObservability(obs observability.Provider) Option {
	return func(d *Drafter) {
		d.obs = obs
	}
}

// NewDrafter creates a Drafter on top of the given chat provider. The model
// defaults to the GROQ_MODEL environment variable when set.
func NewDrafter(provider ai.Provider, opts ...Option) *Drafter {
	d := &Drafter{
		provider: provider,
		model:    defaultModel,
	}
	if envModel := os.Getenv("GROQ_MODEL"); envModel != "" {
		d.model = envModel
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Extract asks the model for a fresh draft from a single utterance. A
// response that cannot be parsed as a draft, even after JSON repair, is
// reported as [conversation.ErrMalformedExtraction]; transport failures
// propagate unchanged.
func (d *Drafter) Extract(ctx context.Context, utterance string) (event.Draft, error) {
	prompt := extractionPrompt
	if d.timezone != "" {
		prompt += fmt.Sprintf(" If no timezone is mentioned, assume %s.", d.timezone)
	}

	content, err := d.complete(ctx, prompt, utterance)
	if err != nil {
		return event.Draft{}, err
	}

	draft, err := parse.JSONAs[event.Draft](content)
	if err != nil {
		return event.Draft{}, fmt.Errorf("%w: %v", conversation.ErrMalformedExtraction, err)
	}
	return draft, nil
}

// ApplyEdit asks the model to rewrite the current draft according to the
// user's instruction. The current draft is embedded in the system prompt so
// unchanged fields survive the round trip. Unparseable responses are
// reported as [conversation.ErrMalformedEdit].
func (d *Drafter) ApplyEdit(ctx context.Context, draft event.Draft, utterance string) (event.Draft, error) {
	current, err := json.Marshal(draft)
	if err != nil {
		return event.Draft{}, fmt.Errorf("marshaling current draft: %w", err)
	}

	prompt := fmt.Sprintf("You are updating an existing event JSON. Current JSON:\n%s\n\n"+
		"Apply the user's requested changes and return the UPDATED JSON ONLY with the same keys.", current)

	content, err := d.complete(ctx, prompt, utterance)
	if err != nil {
		return event.Draft{}, err
	}

	updated, err := parse.JSONAs[event.Draft](content)
	if err != nil {
		return event.Draft{}, fmt.Errorf("%w: %v", conversation.ErrMalformedEdit, err)
	}
	return updated, nil
}

// complete runs a single system+user exchange at temperature zero and
// returns the trimmed reply. An empty reply becomes "{}" so it parses as an
// empty draft.
func (d *Drafter) complete(ctx context.Context, systemPrompt, utterance string) (string, error) {
	if d.obs != nil {
		d.obs.Debug(ctx, "requesting draft JSON from model",
			observability.String(observability.AttrLLMModel, d.model))
	}

	resp, err := d.provider.SendMessage(ctx, ai.ChatRequest{
		Model:        d.model,
		SystemPrompt: systemPrompt,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: utterance},
		},
		ResponseFormat: &ai.ResponseFormat{Type: "json_object"},
		GenerationConfig: &ai.GenerationConfig{
			Temperature: 0,
		},
	})
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		content = "{}"
	}
	return content, nil
}
