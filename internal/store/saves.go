package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"backlot/internal/sim"
)

// Save is one user's game document plus its concurrency version.
type Save struct {
	UserID      string
	State       sim.GameState
	Version     int64
	AutoAdvance bool
}

// LoadSave fetches a user's save, ErrNotFound when they have none.
func (s *Store) LoadSave(ctx context.Context, userID string) (Save, error) {
	var (
		save Save
		doc  []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT user_id, state, version, auto_advance
		FROM saves
		WHERE user_id = $1
	`, userID).Scan(&save.UserID, &doc, &save.Version, &save.AutoAdvance)
	if err == pgx.ErrNoRows {
		return Save{}, ErrNotFound
	}
	if err != nil {
		return Save{}, fmt.Errorf("load save: %w", err)
	}
	if err := json.Unmarshal(doc, &save.State); err != nil {
		return Save{}, fmt.Errorf("decode save: %w", err)
	}
	return save, nil
}

// CreateSave inserts a fresh save at version 1. An existing row is left
// untouched so double-signup is harmless.
func (s *Store) CreateSave(ctx context.Context, userID string, state sim.GameState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO saves (user_id, state, version, auto_advance)
		VALUES ($1, $2, 1, false)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, doc)
	if err != nil {
		return fmt.Errorf("create save: %w", err)
	}
	return nil
}

// StoreSave writes a new state, guarded by optimistic concurrency: the
// row must still be at expectedVersion or the write fails with
// ErrVersionConflict.
func (s *Store) StoreSave(ctx context.Context, userID string, state sim.GameState, expectedVersion int64) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE saves
		SET state = $1, version = version + 1
		WHERE user_id = $2 AND version = $3
	`, doc, userID, expectedVersion)
	if err != nil {
		return fmt.Errorf("store save: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	return nil
}

// SetAutoAdvance opts a save in or out of worker-driven advancement.
func (s *Store) SetAutoAdvance(ctx context.Context, userID string, enabled bool) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE saves SET auto_advance = $1 WHERE user_id = $2
	`, enabled, userID)
	if err != nil {
		return fmt.Errorf("set auto advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AutoAdvanceUsers lists the saves the worker should tick.
func (s *Store) AutoAdvanceUsers(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id FROM saves WHERE auto_advance ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list auto advance: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}
