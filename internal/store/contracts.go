package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"backlot/internal/sim"
)

// SignContract puts an actor under a studio contract. One active contract
// per actor; signing while one exists fails with ErrContractExists.
func (s *Store) SignContract(ctx context.Context, studioID, actorID string, salary int64, startMonth, startYear, durationMonths int) (sim.Contract, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return sim.Contract{}, err
	}
	defer tx.Rollback(ctx)

	var existing int
	err = tx.QueryRow(ctx, `
		SELECT count(*)
		FROM actor_contracts
		WHERE actor_id = $1 AND status = 'active'
		FOR UPDATE
	`, actorID).Scan(&existing)
	if err != nil {
		return sim.Contract{}, fmt.Errorf("check contracts: %w", err)
	}
	if existing > 0 {
		return sim.Contract{}, ErrContractExists
	}

	endsMonth, endsYear := addMonths(startMonth, startYear, durationMonths)
	c := sim.Contract{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		StudioID:  studioID,
		Salary:    salary,
		EndsMonth: endsMonth,
		EndsYear:  endsYear,
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO actor_contracts (id, actor_id, studio_id, salary, start_month, start_year, ends_month, ends_year, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'active')
	`, c.ID, c.ActorID, c.StudioID, c.Salary, startMonth, startYear, endsMonth, endsYear)
	if err != nil {
		return sim.Contract{}, fmt.Errorf("insert contract: %w", err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE actors SET status = $1 WHERE id = $2 AND status = $3
	`, sim.StatusOnHiatus, actorID, sim.StatusAvailable)
	if err != nil {
		return sim.Contract{}, fmt.Errorf("mark actor contracted: %w", err)
	}
	return c, tx.Commit(ctx)
}

// TerminateContract ends a contract early and frees the actor, returning
// the freed actor's id.
func (s *Store) TerminateContract(ctx context.Context, contractID, studioID string) (string, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var actorID string
	err = tx.QueryRow(ctx, `
		UPDATE actor_contracts
		SET status = 'terminated'
		WHERE id = $1 AND studio_id = $2 AND status = 'active'
		RETURNING actor_id
	`, contractID, studioID).Scan(&actorID)
	if err == pgx.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("terminate contract: %w", err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE actors SET status = $1 WHERE id = $2 AND status = $3
	`, sim.StatusAvailable, actorID, sim.StatusOnHiatus)
	if err != nil {
		return "", fmt.Errorf("free actor: %w", err)
	}
	return actorID, tx.Commit(ctx)
}

// ActiveContract returns an actor's current contract, or nil without
// error when they are a free agent.
func (s *Store) ActiveContract(ctx context.Context, actorID string) (*sim.Contract, error) {
	var c sim.Contract
	err := s.db.QueryRow(ctx, `
		SELECT id, actor_id, studio_id, salary, ends_month, ends_year
		FROM actor_contracts
		WHERE actor_id = $1 AND status = 'active'
		LIMIT 1
	`, actorID).Scan(&c.ID, &c.ActorID, &c.StudioID, &c.Salary, &c.EndsMonth, &c.EndsYear)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active contract: %w", err)
	}
	return &c, nil
}

// ContractsForStudio lists a studio's active contracts.
func (s *Store) ContractsForStudio(ctx context.Context, studioID string) ([]sim.Contract, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, actor_id, studio_id, salary, ends_month, ends_year
		FROM actor_contracts
		WHERE studio_id = $1 AND status = 'active'
		ORDER BY id
	`, studioID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []sim.Contract
	for rows.Next() {
		var c sim.Contract
		if err := rows.Scan(&c.ID, &c.ActorID, &c.StudioID, &c.Salary, &c.EndsMonth, &c.EndsYear); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// ExpireContracts closes every contract past its end date and frees the
// actors involved. Returns the freed actor ids.
func (s *Store) ExpireContracts(ctx context.Context, month, year int) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		UPDATE actor_contracts
		SET status = 'expired'
		WHERE status = 'active'
		  AND (ends_year < $1 OR (ends_year = $1 AND ends_month <= $2))
		RETURNING actor_id
	`, year, month)
	if err != nil {
		return nil, fmt.Errorf("expire contracts: %w", err)
	}
	var actorIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan expired: %w", err)
		}
		actorIDs = append(actorIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range actorIDs {
		_, err = tx.Exec(ctx, `
			UPDATE actors SET status = $1 WHERE id = $2 AND status = $3
		`, sim.StatusAvailable, id, sim.StatusOnHiatus)
		if err != nil {
			return nil, fmt.Errorf("free expired actor %s: %w", id, err)
		}
	}
	return actorIDs, tx.Commit(ctx)
}

func addMonths(month, year, n int) (int, int) {
	month += n
	for month > 12 {
		month -= 12
		year++
	}
	return month, year
}
