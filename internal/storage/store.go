package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
)

// StateKey is the kv key holding the serialized player state.
const StateKey = "questme_state_v1"

// Store persists the player state as a single JSON blob. Writes are
// last-write-wins; there is no cross-process coordination.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, log: logger}
}

// Load reads the state blob. A missing or malformed blob yields a fresh
// default state; it never returns a decode error to the caller.
func (s *Store) Load(ctx context.Context) (*PlayerState, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, StateKey)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return DefaultState(), nil
		}
		return nil, fmt.Errorf("state load: %w", err)
	}

	var st PlayerState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		s.log.Warn("state blob is malformed, starting fresh", "error", err)
		return DefaultState(), nil
	}
	repair(&st)
	return &st, nil
}

// Save serializes and writes the state. Fire-and-forget per the design:
// callers that cannot act on a failed write may ignore the error.
func (s *Store) Save(ctx context.Context, st *PlayerState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("state encode: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, StateKey, string(data))
	if err != nil {
		return fmt.Errorf("state save: %w", err)
	}
	return nil
}

// Clear removes the persisted state.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, StateKey); err != nil {
		return fmt.Errorf("state clear: %w", err)
	}
	return nil
}

// repair fixes fields an older blob may lack.
func repair(st *PlayerState) {
	var maxID int64
	for i := range st.Missions {
		if st.Missions[i].ID > maxID {
			maxID = st.Missions[i].ID
		}
	}
	if st.NextMissionID <= maxID {
		st.NextMissionID = maxID + 1
	}
}
