package extract

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"schedbot/conversation"
	"schedbot/event"
	"schedbot/providers/ai"
)

// scriptedProvider replays canned responses and records the requests it saw.
type scriptedProvider struct {
	responses []*ai.ChatResponse
	err       error
	requests  []ai.ChatRequest
}

func (p *scriptedProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	p.requests = append(p.requests, request)
	if p.err != nil {
		return nil, p.err
	}
	resp := p.responses[0]
	if len(p.responses) > 1 {
		p.responses = p.responses[1:]
	}
	return resp, nil
}

func (p *scriptedProvider) IsStopMessage(response *ai.ChatResponse) bool { return true }

func (p *scriptedProvider) WithAPIKey(string) ai.Provider           { return p }
func (p *scriptedProvider) WithBaseURL(string) ai.Provider          { return p }
func (p *scriptedProvider) WithHttpClient(*http.Client) ai.Provider { return p }

func TestExtract_ParsesDraft(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.ChatResponse{{
		Content: `{"title":"Sync with Bob","start":"2026-09-01T10:00:00Z","end":"2026-09-01T10:30:00Z","attendees":["bob@example.com"]}`,
	}}}
	drafter := NewDrafter(provider, WithModel("test-model"))

	draft, err := drafter.Extract(context.Background(), "book a sync with bob tomorrow at 10")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if draft.Title != "Sync with Bob" {
		t.Errorf("Title = %q", draft.Title)
	}
	if len(draft.Attendees) != 1 || draft.Attendees[0] != "bob@example.com" {
		t.Errorf("Attendees = %v", draft.Attendees)
	}
	if !draft.Complete() {
		t.Errorf("draft should be complete, missing %v", draft.MissingFields())
	}

	req := provider.requests[0]
	if req.Model != "test-model" {
		t.Errorf("Model = %q", req.Model)
	}
	if !strings.Contains(req.SystemPrompt, "Return ONLY JSON") {
		t.Errorf("system prompt = %q, want extraction instructions", req.SystemPrompt)
	}
	if req.GenerationConfig == nil || req.GenerationConfig.Temperature != 0 {
		t.Errorf("GenerationConfig = %+v, want temperature 0", req.GenerationConfig)
	}
}

func TestExtract_RepairsSloppyJSON(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.ChatResponse{{
		Content: "```json\n{title: 'Standup', start: '2026-09-01T09:00:00Z', end: '2026-09-01T09:15:00Z',}\n```",
	}}}
	drafter := NewDrafter(provider, WithModel("test-model"))

	draft, err := drafter.Extract(context.Background(), "daily standup")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if draft.Title != "Standup" {
		t.Errorf("Title = %q, want Standup", draft.Title)
	}
}

func TestExtract_MalformedOutput(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.ChatResponse{{
		Content: "I could not find any event details in that message.",
	}}}
	drafter := NewDrafter(provider, WithModel("test-model"))

	_, err := drafter.Extract(context.Background(), "hello there")
	if !errors.Is(err, conversation.ErrMalformedExtraction) {
		t.Errorf("error = %v, want ErrMalformedExtraction", err)
	}
}

func TestExtract_EmptyReplyIsEmptyDraft(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.ChatResponse{{Content: "  "}}}
	drafter := NewDrafter(provider, WithModel("test-model"))

	draft, err := drafter.Extract(context.Background(), "hmm")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if draft.Title != "" || draft.Start != "" || draft.End != "" {
		t.Errorf("draft = %+v, want zero value", draft)
	}
}

func TestExtract_TransportErrorNotMalformed(t *testing.T) {
	transportErr := errors.New("non-2xx status 500: upstream down")
	provider := &scriptedProvider{err: transportErr}
	drafter := NewDrafter(provider, WithModel("test-model"))

	_, err := drafter.Extract(context.Background(), "book a meeting")
	if !errors.Is(err, transportErr) {
		t.Errorf("error = %v, want transport error to propagate", err)
	}
	if errors.Is(err, conversation.ErrMalformedExtraction) {
		t.Errorf("transport error must not be classified as malformed extraction")
	}
}

func TestApplyEdit_EmbedsCurrentDraft(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.ChatResponse{{
		Content: `{"title":"Sync","start":"2026-09-01T11:00:00Z","end":"2026-09-01T11:30:00Z","attendees":[]}`,
	}}}
	drafter := NewDrafter(provider, WithModel("test-model"))

	current := event.Draft{
		Title: "Sync",
		Start: "2026-09-01T10:00:00Z",
		End:   "2026-09-01T10:30:00Z",
	}

	updated, err := drafter.ApplyEdit(context.Background(), current, "move it an hour later")
	if err != nil {
		t.Fatalf("ApplyEdit() error = %v", err)
	}
	if updated.Start != "2026-09-01T11:00:00Z" {
		t.Errorf("Start = %q", updated.Start)
	}

	req := provider.requests[0]
	if !strings.Contains(req.SystemPrompt, `"title":"Sync"`) {
		t.Errorf("system prompt should embed the current draft JSON, got %q", req.SystemPrompt)
	}
	if !strings.Contains(req.SystemPrompt, "UPDATED JSON ONLY") {
		t.Errorf("system prompt = %q, want update instructions", req.SystemPrompt)
	}
}

func TestExtract_DefaultTimezoneInPrompt(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.ChatResponse{{Content: "{}"}}}
	drafter := NewDrafter(provider, WithModel("test-model"), WithDefaultTimezone("Asia/Kolkata"))

	if _, err := drafter.Extract(context.Background(), "lunch friday"); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if !strings.Contains(provider.requests[0].SystemPrompt, "assume Asia/Kolkata") {
		t.Errorf("system prompt = %q, want timezone hint", provider.requests[0].SystemPrompt)
	}
}

func TestApplyEdit_MalformedOutput(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.ChatResponse{{
		Content: "Sure, I moved the meeting for you!",
	}}}
	drafter := NewDrafter(provider, WithModel("test-model"))

	_, err := drafter.ApplyEdit(context.Background(), event.Draft{Title: "Sync"}, "move it")
	if !errors.Is(err, conversation.ErrMalformedEdit) {
		t.Errorf("error = %v, want ErrMalformedEdit", err)
	}
}
