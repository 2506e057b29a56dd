package session

import (
	"context"

	"schedbot/event"
	"schedbot/providers/ai"
)

// Stage is the conversation manager's discrete state for a session.
type Stage string

const (
	// StageIdle means no draft exists yet for this session.
	StageIdle Stage = "idle"
	// StageDrafting means a draft exists but is incomplete, or the user
	// declined a complete draft.
	StageDrafting Stage = "drafting"
	// StageConfirming means the draft is complete and an explicit
	// confirm/deny/edit is awaited.
	StageConfirming Stage = "confirming"
	// StageDone means the scheduling tool executed successfully. Terminal
	// until the session is reset.
	StageDone Stage = "done"
)

// Session is the per-participant conversation state. It is mutated
// exclusively by the conversation manager, one utterance at a time.
type Session struct {
	// ID is the opaque stable identifier supplied by the caller.
	ID string
	// Stage is the current state-machine stage.
	Stage Stage
	// Draft is the event under construction; nil until extraction has occurred.
	Draft *event.Draft
	// LastToolResult records the most recent tool invocation outcome, kept
	// for diagnostics.
	LastToolResult *ai.ToolResult
}

// Store holds session records keyed by their opaque identifier. Sessions are
// created implicitly on first reference and removed only by explicit reset.
// Implementations must be safe for concurrent use by different sessions;
// serializing turns within one session is the caller's responsibility.
type Store interface {
	// GetOrCreate returns the session for id, materializing a fresh record
	// at [StageIdle] if none exists.
	GetOrCreate(ctx context.Context, id string) (*Session, error)

	// Get returns the session for id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*Session, error)

	// Put stores the session under its ID, replacing any previous record.
	Put(ctx context.Context, s *Session) error

	// Delete removes the session for id. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}
