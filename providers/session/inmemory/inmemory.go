package inmemory

import (
	"context"
	"sync"

	"schedbot/providers/observability"
	"schedbot/providers/session"
)

// MapStore is a concurrency-safe in-memory session store. It uses an RWMutex
// to guard access and returns copies so callers never share memory with the
// store's internal records. Suitable for a single process; swap in another
// [session.Store] implementation for distributed deployments.
type MapStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

// New returns a new, empty [MapStore] ready for immediate use.
func New() *MapStore {
	return &MapStore{
		sessions: make(map[string]session.Session),
	}
}

// Ensure MapStore implements session.Store at compile time.
var _ session.Store = (*MapStore)(nil)

// GetOrCreate returns a copy of the session for id, materializing a fresh
// record at [session.StageIdle] when the id has not been seen before.
// When an observability span is present in ctx, a create event is recorded
// for new sessions. The returned error is always nil.
func (m *MapStore) GetOrCreate(ctx context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	s, exists := m.sessions[id]
	if !exists {
		s = session.Session{ID: id, Stage: session.StageIdle}
		m.sessions[id] = s
	}
	m.mu.Unlock()

	if !exists {
		if span := observability.SpanFromContext(ctx); span != nil {
			span.AddEvent(observability.EventSessionCreate,
				observability.String(observability.AttrSessionID, id),
			)
		}
	}

	out := s
	return &out, nil
}

// Get returns a copy of the session for id, or (nil, nil) when absent.
// The returned error is always nil.
func (m *MapStore) Get(_ context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	s, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, nil
	}
	out := s
	return &out, nil
}

// Put stores a copy of s under its ID, replacing any previous record.
// It is a no-op when s is nil. The returned error is always nil.
func (m *MapStore) Put(_ context.Context, s *session.Session) error {
	if s == nil {
		return nil
	}
	m.mu.Lock()
	m.sessions[s.ID] = *s
	m.mu.Unlock()
	return nil
}

// Delete removes the session for id. Deleting an unknown id is a no-op.
// When an observability span is present in ctx, a delete event is recorded.
// The returned error is always nil.
func (m *MapStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventSessionDelete,
			observability.String(observability.AttrSessionID, id),
		)
	}
	return nil
}

// Count returns the number of stored sessions.
func (m *MapStore) Count() int {
	m.mu.RLock()
	n := len(m.sessions)
	m.mu.RUnlock()
	return n
}
