// internal/store/memory.go
//
// In-memory session store for solver engines.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - The map is guarded by an RWMutex; each Session carries its own mutex
//     because an engine must not be used by two requests at once.
//   - State is lost when the process restarts (clients can re-create a
//     session from an exported snapshot).

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Session is one solver engine and the lock that serializes access to it.
type Session struct {
	ID        string
	CreatedAt time.Time
	Engine    *solver.Engine

	mu sync.Mutex
}

// NewSession wraps e in a session with a fresh random ID.
func NewSession(e *solver.Engine) *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: time.Now().UTC(), Engine: e}
}

// Do runs fn with exclusive access to the session's engine.
func (s *Session) Do(fn func(e *solver.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Engine)
}

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting an unknown ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Len reports the number of live sessions.
	Len() int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
