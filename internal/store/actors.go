package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"backlot/internal/sim"
)

// actorColumns lists the roster columns in scan order.
const actorColumns = `id, name, age, gender, tier, salary, reputation, skill, genres, status, bio, personality, relationships, gossip`

// ListActors loads the full shared roster, oldest ids first so every
// caller sees the same iteration order.
func (s *Store) ListActors(ctx context.Context) ([]sim.Actor, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+actorColumns+`
		FROM actors
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	var actors []sim.Actor
	for rows.Next() {
		var (
			a             sim.Actor
			genres        []string
			relationships []byte
			gossip        []byte
			personality   []string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Age, &a.Gender, &a.Tier, &a.Salary,
			&a.Reputation, &a.Skill, &genres, &a.Status, &a.Bio, &personality,
			&relationships, &gossip); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		for _, g := range genres {
			a.Genres = append(a.Genres, sim.Genre(g))
		}
		a.Personality = personality
		a.Relationships = map[string]int{}
		if len(relationships) > 0 {
			if err := json.Unmarshal(relationships, &a.Relationships); err != nil {
				return nil, fmt.Errorf("decode relationships for %s: %w", a.ID, err)
			}
		}
		if len(gossip) > 0 {
			if err := json.Unmarshal(gossip, &a.Gossip); err != nil {
				return nil, fmt.Errorf("decode gossip for %s: %w", a.ID, err)
			}
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

// UpdateActor applies a partial column update. The fields map uses column
// names; json columns take Go values and are encoded here.
func (s *Store) UpdateActor(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	set := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		v := fields[col]
		switch col {
		case "relationships", "gossip":
			encoded, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode %s: %w", col, err)
			}
			v = encoded
		}
		set = append(set, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, v)
	}
	args = append(args, id)

	tag, err := s.db.Exec(ctx, fmt.Sprintf(`
		UPDATE actors SET %s WHERE id = $%d
	`, strings.Join(set, ", "), len(args)), args...)
	if err != nil {
		return fmt.Errorf("update actor %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update actor %s: %w", id, ErrNotFound)
	}
	return nil
}

// InsertActor seeds one actor, leaving an existing row alone.
func (s *Store) InsertActor(ctx context.Context, a sim.Actor) error {
	genres := make([]string, 0, len(a.Genres))
	for _, g := range a.Genres {
		genres = append(genres, string(g))
	}
	relationships, err := json.Marshal(a.Relationships)
	if err != nil {
		return fmt.Errorf("encode relationships: %w", err)
	}
	gossip, err := json.Marshal(a.Gossip)
	if err != nil {
		return fmt.Errorf("encode gossip: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO actors (`+actorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING
	`, a.ID, a.Name, a.Age, a.Gender, a.Tier, a.Salary, a.Reputation, a.Skill,
		genres, a.Status, a.Bio, a.Personality, relationships, gossip)
	if err != nil {
		return fmt.Errorf("insert actor %s: %w", a.ID, err)
	}
	return nil
}
