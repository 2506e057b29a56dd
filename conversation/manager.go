package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"schedbot/event"
	"schedbot/providers/ai"
	"schedbot/providers/observability"
	"schedbot/providers/session"
)

// Extractor produces a best-effort draft from one line of free-form text.
// Implementations wrap [ErrMalformedExtraction] when their output cannot be
// parsed into a draft.
type Extractor interface {
	Extract(ctx context.Context, utterance string) (event.Draft, error)
}

// Editor applies a free-form edit instruction to an existing draft and
// returns the full updated draft, not a diff. Implementations wrap
// [ErrMalformedEdit] when their output cannot be parsed.
type Editor interface {
	ApplyEdit(ctx context.Context, draft event.Draft, utterance string) (event.Draft, error)
}

// ToolInvoker dispatches a named tool with JSON arguments. It must never
// return a Go error or panic; all failures are the err variant of the
// [ai.ToolResult] envelope. Satisfied by tool.Gateway.
type ToolInvoker interface {
	Invoke(ctx context.Context, toolName string, argumentsJSON string) ai.ToolResult
}

// DefaultSchedulingTool is the tool name invoked on confirmation unless
// overridden with [WithSchedulingTool].
const DefaultSchedulingTool = "create_calendar_event"

// Manager owns per-session conversation state. It interprets each utterance
// according to the session's current stage, calls the extraction and edit
// collaborators and the tool gateway as needed, and produces the next
// user-facing message plus the next stage.
//
// One turn at a time per session is the caller's contract; turns for
// different session ids are fully independent.
type Manager struct {
	store     session.Store
	extractor Extractor
	editor    Editor
	invoker   ToolInvoker
	toolName  string
	obs       observability.Provider
}

// Option configures a [Manager].
type Option func(*Manager)

// WithSchedulingTool overrides the name of the tool invoked on confirmation.
func WithSchedulingTool(name string) Option {
	return func(m *Manager) {
		m.toolName = name
	}
}

// WithObservability installs an observability provider. Without one the
// manager runs silently.
func WithObservability(obs observability.Provider) Option {
	return func(m *Manager) {
		m.obs = obs
	}
}

// NewManager wires a manager from its collaborators: the session store, the
// extraction and edit capabilities, and the tool invoker.
func NewManager(store session.Store, extractor Extractor, editor Editor, invoker ToolInvoker, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		extractor: extractor,
		editor:    editor,
		invoker:   invoker,
		toolName:  DefaultSchedulingTool,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HandleTurn processes one user utterance for the given session and returns
// the assistant's reply. The session is created implicitly on first
// reference. Collaborator parse failures are recovered locally into apology
// messages with the session state preserved; only infrastructure failures
// (store access, non-parse collaborator errors) surface as a Go error.
func (m *Manager) HandleTurn(ctx context.Context, sessionID string, utterance string) (string, error) {
	if m.obs != nil {
		var span observability.Span
		ctx, span = m.obs.StartSpan(ctx, "conversation.turn",
			observability.String(observability.AttrSessionID, sessionID),
		)
		defer span.End()
	}

	s, err := m.store.GetOrCreate(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("loading session %s: %w", sessionID, err)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.String(observability.AttrStage, string(s.Stage)))
	}

	var reply string
	switch s.Stage {
	case session.StageIdle:
		reply, err = m.handleIdle(ctx, s, utterance)
	case session.StageConfirming:
		reply, err = m.handleConfirming(ctx, s, utterance)
	case session.StageDrafting:
		reply, err = m.handleDrafting(ctx, s, utterance)
	case session.StageDone:
		reply = `Event already created. Say "start new" to begin another.`
	default:
		// Defensive only; unreachable when stages are written by this manager.
		reply = `I'm not sure what to do. Say "start new" to begin a new event.`
	}
	if err != nil {
		return "", err
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.String(observability.AttrNextStage, string(s.Stage)))
	}
	return reply, nil
}

// Reset unconditionally removes the session record; subsequent turns for the
// same id begin at idle with a fresh draft. Resetting an unknown id is a
// no-op.
func (m *Manager) Reset(ctx context.Context, sessionID string) error {
	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventSessionReset,
			observability.String(observability.AttrSessionID, sessionID),
		)
	}
	return m.store.Delete(ctx, sessionID)
}

// handleIdle runs the first turn: extract a candidate draft and move to
// drafting or straight to confirming depending on completeness.
func (m *Manager) handleIdle(ctx context.Context, s *session.Session, utterance string) (string, error) {
	draft, err := m.extractor.Extract(ctx, utterance)
	if err != nil {
		if errors.Is(err, ErrMalformedExtraction) {
			// No draft is persisted; the next utterance retries from scratch.
			m.logRecovered(ctx, s.ID, err)
			return "Sorry, I couldn't understand the event details. Could you rephrase that?", nil
		}
		return "", err
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventDraftExtracted,
			observability.String(observability.AttrMissingFields, strings.Join(draft.MissingFields(), ",")),
		)
	}

	s.Draft = &draft
	missing := draft.MissingFields()

	if len(missing) > 0 {
		s.Stage = session.StageDrafting
		if err := m.store.Put(ctx, s); err != nil {
			return "", err
		}
		return fmt.Sprintf("I started a draft but need more info: %s.\n\nCurrent draft:\n%s\n\nPlease provide the missing details.",
			strings.Join(missing, ", "), draft.Summary()), nil
	}

	s.Stage = session.StageConfirming
	if err := m.store.Put(ctx, s); err != nil {
		return "", err
	}
	return fmt.Sprintf("Here's the draft event:\n%s\n\nShall I create this? (yes/no or specify changes)", draft.Summary()), nil
}

// handleConfirming resolves the pending confirmation: create on yes, back to
// drafting on no, otherwise treat the utterance as an edit instruction.
func (m *Manager) handleConfirming(ctx context.Context, s *session.Session, utterance string) (string, error) {
	decision := Detect(utterance)
	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.String(observability.AttrDecision, decision.String()))
	}

	switch decision {
	case DecisionAffirmative:
		return m.createEvent(ctx, s)

	case DecisionNegative:
		s.Stage = session.StageDrafting
		if err := m.store.Put(ctx, s); err != nil {
			return "", err
		}
		return fmt.Sprintf("Okay, not creating it yet.\nCurrent draft:\n%s\n\nTell me what to change, or say \"create\" to proceed.", s.Draft.Summary()), nil

	default:
		updated, err := m.applyEdit(ctx, s, utterance)
		if err != nil {
			if errors.Is(err, ErrMalformedEdit) {
				m.logRecovered(ctx, s.ID, err)
				return "Sorry, I couldn't apply that change. Could you rephrase it?", nil
			}
			return "", err
		}

		if missing := updated.MissingFields(); len(missing) > 0 {
			s.Stage = session.StageDrafting
			if err := m.store.Put(ctx, s); err != nil {
				return "", err
			}
			return fmt.Sprintf("Updated the draft, but still missing: %s.\n\nCurrent draft:\n%s\n\nProvide the missing details or say \"cancel\".",
				strings.Join(missing, ", "), updated.Summary()), nil
		}

		// Complete again: stay in confirming and re-ask. There is no cap on
		// edit iterations.
		if err := m.store.Put(ctx, s); err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated draft:\n%s\n\nCreate this? (yes/no or more changes)", updated.Summary()), nil
	}
}

// handleDrafting collects missing details. A refusal yields a cancellation
// message but intentionally leaves the stage and draft untouched, matching
// the original behavior (see DESIGN.md).
func (m *Manager) handleDrafting(ctx context.Context, s *session.Session, utterance string) (string, error) {
	decision := Detect(utterance)
	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(observability.String(observability.AttrDecision, decision.String()))
	}

	if decision == DecisionNegative {
		return "Cancelled. Nothing was created.", nil
	}

	updated, err := m.applyEdit(ctx, s, utterance)
	if err != nil {
		if errors.Is(err, ErrMalformedEdit) {
			m.logRecovered(ctx, s.ID, err)
			return "Sorry, I couldn't apply that change. Could you rephrase it?", nil
		}
		return "", err
	}

	if missing := updated.MissingFields(); len(missing) > 0 {
		if err := m.store.Put(ctx, s); err != nil {
			return "", err
		}
		return fmt.Sprintf("Got it. Still missing: %s.\n\nCurrent draft:\n%s\n\nPlease provide details.",
			strings.Join(missing, ", "), updated.Summary()), nil
	}

	s.Stage = session.StageConfirming
	if err := m.store.Put(ctx, s); err != nil {
		return "", err
	}
	return fmt.Sprintf("Great, the draft is complete:\n%s\n\nCreate this? (yes/no or more changes)", updated.Summary()), nil
}

// applyEdit runs the edit collaborator against the session's current draft
// (or an empty one) and stores the updated draft on the session. The caller
// decides stage transitions and persistence.
func (m *Manager) applyEdit(ctx context.Context, s *session.Session, utterance string) (event.Draft, error) {
	base := event.Draft{}
	if s.Draft != nil {
		base = *s.Draft
	}

	updated, err := m.editor.ApplyEdit(ctx, base, utterance)
	if err != nil {
		return event.Draft{}, err
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventDraftEdited,
			observability.String(observability.AttrMissingFields, strings.Join(updated.MissingFields(), ",")),
		)
	}

	s.Draft = &updated
	return updated, nil
}

// createEvent invokes the scheduling tool with the current draft. Success is
// terminal; failure reverts to drafting with the draft preserved so the user
// can adjust and retry.
func (m *Manager) createEvent(ctx context.Context, s *session.Session) (string, error) {
	argumentsJSON, err := json.Marshal(s.Draft)
	if err != nil {
		return "", fmt.Errorf("encoding draft for tool invocation: %w", err)
	}

	result := m.invoker.Invoke(ctx, m.toolName, string(argumentsJSON))
	s.LastToolResult = &result

	if !result.Success {
		reason := result.Message
		if reason == "" {
			reason = "Unknown error"
		}
		s.Stage = session.StageDrafting
		if err := m.store.Put(ctx, s); err != nil {
			return "", err
		}
		return fmt.Sprintf("Failed to create event: %s\n\nYou can adjust the draft or try again.", reason), nil
	}

	s.Stage = session.StageDone
	if err := m.store.Put(ctx, s); err != nil {
		return "", err
	}

	reply := fmt.Sprintf("Event created!\n\n%s", s.Draft.Summary())
	if ref := displayReference(result); ref != "" {
		reply += "\n\nLink: " + ref
	}
	return reply, nil
}

// displayReference extracts a link or identifier from a successful tool
// result for user display. Returns "" when the payload carries neither.
func displayReference(result ai.ToolResult) string {
	data, ok := result.Data.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, key := range []string{"html_link", "link", "id"} {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// logRecovered notes a locally-recovered collaborator failure.
func (m *Manager) logRecovered(ctx context.Context, sessionID string, err error) {
	if span := observability.SpanFromContext(ctx); span != nil {
		span.RecordError(err)
	}
	if m.obs != nil {
		m.obs.Warn(ctx, "collaborator output unparsable, state preserved",
			observability.String(observability.AttrSessionID, sessionID),
			observability.Error(err),
		)
	}
}
