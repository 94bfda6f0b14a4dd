// internal/store/memory.go
//
// In-memory implementation of Store.
//
// Characteristics:
//   - Sessions keyed by ID in a map, each with its last-touched time.
//   - Concurrency-safe via one RWMutex; Update holds the write lock while
//     fn runs, which is fine because every session operation is O(1).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/robalobadob/boardparity/internal/quiz"
)

type memEntry struct {
	session *quiz.Session
	touched time.Time
}

// memory is a map-based Store implementation.
type memory struct {
	opts     options
	mu       sync.RWMutex         // guards sessions
	sessions map[string]*memEntry // keyed by session ID
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	return &memory{opts: buildOptions(opts), sessions: make(map[string]*memEntry)}
}

func (m *memory) Create(ctx context.Context, id string, seed uint64) (quiz.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		return quiz.Snapshot{}, ErrExists
	}
	s := quiz.New(rand.New(quiz.NewPCG(seed)))
	m.sessions[id] = &memEntry{session: s, touched: m.opts.now()}
	return s.Snapshot(), nil
}

func (m *memory) Get(ctx context.Context, id string) (quiz.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return quiz.Snapshot{}, ErrNotFound
	}
	return e.session.Snapshot(), nil
}

// Update mutates the stored session in place. fn must not keep the pointer.
// A failing fn is expected to leave the session untouched; the engine never
// half-applies an operation.
func (m *memory) Update(ctx context.Context, id string, fn func(*quiz.Session) error) (quiz.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return quiz.Snapshot{}, ErrNotFound
	}
	if err := fn(e.session); err != nil {
		return quiz.Snapshot{}, err
	}
	e.touched = m.opts.now()
	return e.session.Snapshot(), nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	cutoff := m.opts.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.touched.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
