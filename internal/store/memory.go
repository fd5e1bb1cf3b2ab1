// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are ephemeral by nature: nothing survives a restart.
//
// Characteristics:
//   - Stores *solver.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex. A Session itself is not safe for
//     concurrent use, so every mutation goes through Update, which holds the
//     write lock while the callback runs.
//   - Get returns a snapshot copy so readers never observe a half-applied guess.

package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wormle/internal/solver"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *solver.Session) error

	// Get returns a snapshot of the session with the given ID.
	Get(ctx context.Context, id string) (*solver.Session, error)

	// Update runs fn against the stored session under an exclusive lock.
	// The returned snapshot reflects the session after fn ran, even when fn
	// returned an error.
	Update(ctx context.Context, id string, fn func(*solver.Session) error) (*solver.Session, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep drops sessions not updated within maxAge and reports how many went.
	Sweep(ctx context.Context, maxAge time.Duration) int

	// Len reports how many sessions are held.
	Len() int
}

// NewID returns a fresh random session ID.
func NewID() string { return uuid.NewString() }

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex               // guards sessions map and the sessions themselves
	sessions map[string]*solver.Session // keyed by Session.ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*solver.Session), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *solver.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*solver.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(s), nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*solver.Session) error) (*solver.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	err := fn(s)
	return snapshot(s), err
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, maxAge time.Duration) int {
	if maxAge <= 0 {
		return 0
	}
	cutoff := m.now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// snapshot copies the exported state of s. The unexported word source and
// random source are shared, which is fine because snapshots are read-only.
func snapshot(s *solver.Session) *solver.Session {
	cp := *s
	cp.Candidates = slices.Clone(s.Candidates)
	cp.History = slices.Clone(s.History)
	return &cp
}
