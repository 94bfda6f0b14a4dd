// internal/store/store.go
//
// Persistence interface for live trainer sessions.
// Implementations: in-memory map (memory.go) and SQLite (sqlite.go).
//
// Sessions only live as long as the page that created them. Nothing here
// keeps scores across page loads; idle sessions are removed by Sweep.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/boardparity/internal/quiz"
)

// ErrNotFound is returned for unknown or swept session IDs.
var ErrNotFound = errors.New("session not found")

// ErrExists is returned by Create when the ID is taken.
var ErrExists = errors.New("session exists")

// Store holds sessions keyed by ID.
type Store interface {
	// Create starts a new session whose questions come from seed.
	Create(ctx context.Context, id string, seed uint64) (quiz.Snapshot, error)

	// Get returns a copy of the session state.
	Get(ctx context.Context, id string) (quiz.Snapshot, error)

	// Update runs fn on the live session and saves the result. Calls for
	// the same ID never overlap. If fn fails nothing is saved.
	Update(ctx context.Context, id string, fn func(*quiz.Session) error) (quiz.Snapshot, error)

	// Delete removes a session. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions untouched for longer than idle and reports
	// how many went.
	Sweep(ctx context.Context, idle time.Duration) (int, error)
}

type options struct {
	now func() time.Time
}

// Option configures a store.
type Option func(*options)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
