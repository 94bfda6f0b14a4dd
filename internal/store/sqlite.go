// internal/store/sqlite.go
//
// SQLite implementation of Store.
// Each row holds one live session: its snapshot as JSON plus the binary
// state of its PCG generator, so a session resumes the same question
// sequence after being loaded back.
//
// Schema lives in assets/sql and is applied with Migrate.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/boardparity/internal/quiz"
)

type sqliteStore struct {
	db   *sql.DB
	opts options
}

// NewSQLiteStore wraps an open, migrated database.
func NewSQLiteStore(db *sql.DB, opts ...Option) Store {
	return &sqliteStore{db: db, opts: buildOptions(opts)}
}

func (s *sqliteStore) Create(ctx context.Context, id string, seed uint64) (quiz.Snapshot, error) {
	pcg := quiz.NewPCG(seed)
	sess := quiz.New(rand.New(pcg))
	snap := sess.Snapshot()
	state, rng, err := encodeSession(snap, pcg)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	now := s.opts.now().UnixNano()
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO sessions (id, state, rng, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`, id, state, rng, now, now)
	if err != nil {
		return quiz.Snapshot{}, fmt.Errorf("insert session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return quiz.Snapshot{}, ErrExists
	}
	return snap, nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (quiz.Snapshot, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM sessions WHERE id=?`, id).Scan(&state)
	if err == sql.ErrNoRows {
		return quiz.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return quiz.Snapshot{}, fmt.Errorf("select session: %w", err)
	}
	var snap quiz.Snapshot
	if err := json.Unmarshal([]byte(state), &snap); err != nil {
		return quiz.Snapshot{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return snap, nil
}

// Update loads, mutates and saves the session inside one transaction.
// SQLite serializes writers, so concurrent updates of one ID queue up.
func (s *sqliteStore) Update(ctx context.Context, id string, fn func(*quiz.Session) error) (quiz.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var state string
	var rng []byte
	err = tx.QueryRowContext(ctx, `SELECT state, rng FROM sessions WHERE id=?`, id).Scan(&state, &rng)
	if err == sql.ErrNoRows {
		return quiz.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return quiz.Snapshot{}, fmt.Errorf("select session: %w", err)
	}

	var snap quiz.Snapshot
	if err := json.Unmarshal([]byte(state), &snap); err != nil {
		return quiz.Snapshot{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	pcg := new(rand.PCG)
	if err := pcg.UnmarshalBinary(rng); err != nil {
		return quiz.Snapshot{}, fmt.Errorf("decode rng %s: %w", id, err)
	}
	sess, err := quiz.Restore(snap, rand.New(pcg))
	if err != nil {
		return quiz.Snapshot{}, fmt.Errorf("restore session %s: %w", id, err)
	}

	if err := fn(sess); err != nil {
		return quiz.Snapshot{}, err
	}

	snap = sess.Snapshot()
	newState, newRng, err := encodeSession(snap, pcg)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE sessions SET state=?, rng=?, updated_at=? WHERE id=?`,
		newState, newRng, s.opts.now().UnixNano(), id); err != nil {
		return quiz.Snapshot{}, fmt.Errorf("update session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return quiz.Snapshot{}, fmt.Errorf("commit session: %w", err)
	}
	return snap, nil
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id)
	return err
}

func (s *sqliteStore) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	cutoff := s.opts.now().Add(-idle).UnixNano()
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func encodeSession(snap quiz.Snapshot, pcg *rand.PCG) (string, []byte, error) {
	state, err := json.Marshal(snap)
	if err != nil {
		return "", nil, fmt.Errorf("encode session: %w", err)
	}
	rng, err := pcg.MarshalBinary()
	if err != nil {
		return "", nil, fmt.Errorf("encode rng: %w", err)
	}
	return string(state), rng, nil
}
