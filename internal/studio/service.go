// Package studio is the service layer between the HTTP API and the
// simulation engine: it owns save loading, preconditions on player
// actions, and per-user serialization of month advancement.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"backlot/internal/sim"
	"backlot/internal/store"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrScriptNotFound    = errors.New("script not found")
	ErrScriptInUse       = errors.New("script already in production")
	ErrBidTooLow         = errors.New("bid must beat the current high bid")
	ErrActorUnavailable  = errors.New("actor unavailable")
	ErrWrongCastSize     = errors.New("cast size does not match script")
	ErrRivalNotFound     = errors.New("rival studio not found")
)

type Service struct {
	store  *store.Store
	engine *sim.Engine
	log    *slog.Logger

	locks sync.Map // user id -> *sync.Mutex
}

func NewService(st *store.Store, engine *sim.Engine, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, engine: engine, log: logger}
}

// userLock serializes mutations per save. Advancing a month twice
// concurrently would double-charge the player even with save versioning.
func (s *Service) userLock(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// EnsureStudio loads a user's save, creating and seeding one on first
// login. The shared actor roster is seeded once, globally.
func (s *Service) EnsureStudio(ctx context.Context, userID, playerName, studioName string) (sim.GameState, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	save, err := s.store.LoadSave(ctx, userID)
	if err == nil {
		return save.State, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return sim.GameState{}, err
	}

	for _, a := range sim.SeedActors() {
		if err := s.store.InsertActor(ctx, a); err != nil {
			s.log.Warn("seed actor insert failed", "actor_id", a.ID, "err", err)
		}
	}
	if studioName == "" {
		studioName = fmt.Sprintf("%s Pictures", playerName)
	}
	state := s.engine.NewGame(playerName, studioName)
	if roster, err := s.store.ListActors(ctx); err != nil {
		s.log.Warn("roster load failed, using seed roster", "err", err)
	} else if len(roster) > 0 {
		state.Actors = roster
	}
	if err := s.store.CreateSave(ctx, userID, state); err != nil {
		return sim.GameState{}, err
	}
	save, err = s.store.LoadSave(ctx, userID)
	if err != nil {
		return sim.GameState{}, err
	}
	return save.State, nil
}

// State returns the current save without mutating anything.
func (s *Service) State(ctx context.Context, userID string) (sim.GameState, error) {
	save, err := s.store.LoadSave(ctx, userID)
	if err != nil {
		return sim.GameState{}, err
	}
	return save.State, nil
}

// Advance runs one month for a save. Serialized per user; the save
// version guards against a concurrent writer sneaking in anyway.
func (s *Service) Advance(ctx context.Context, userID string) (sim.GameState, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	save, err := s.store.LoadSave(ctx, userID)
	if err != nil {
		return sim.GameState{}, err
	}

	// The shared roster is canonical; refresh before simulating so this
	// month sees other studios' signings and the latest lifecycle state.
	if roster, err := s.store.ListActors(ctx); err != nil {
		s.log.Warn("roster refresh failed", "err", err)
	} else if len(roster) > 0 {
		save.State.Actors = roster
	}

	next, err := s.engine.AdvanceMonth(ctx, &save.State)
	if err != nil {
		return sim.GameState{}, err
	}

	if freed, err := s.store.ExpireContracts(ctx, next.Month, next.Year); err != nil {
		s.log.Warn("contract expiration failed", "err", err)
	} else {
		for _, actorID := range freed {
			for i := range next.Actors {
				if next.Actors[i].ID == actorID && next.Actors[i].Status == sim.StatusOnHiatus {
					next.Actors[i].Status = sim.StatusAvailable
				}
			}
		}
	}

	if err := s.store.StoreSave(ctx, userID, next, save.Version); err != nil {
		return sim.GameState{}, err
	}
	s.log.Info("month advanced", "user_id", userID, "month", next.Month, "year", next.Year, "balance", next.Balance)
	return next, nil
}

// AdvanceAll ticks every save that opted into auto-advancement. One bad
// save doesn't stop the sweep.
func (s *Service) AdvanceAll(ctx context.Context) error {
	users, err := s.store.AutoAdvanceUsers(ctx)
	if err != nil {
		return err
	}
	for _, userID := range users {
		if _, err := s.Advance(ctx, userID); err != nil {
			s.log.Error("auto advance failed", "user_id", userID, "err", err)
		}
	}
	return nil
}

// mutate runs fn over a locked, loaded save and persists the result.
func (s *Service) mutate(ctx context.Context, userID string, fn func(*sim.GameState) error) (sim.GameState, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	save, err := s.store.LoadSave(ctx, userID)
	if err != nil {
		return sim.GameState{}, err
	}
	if err := fn(&save.State); err != nil {
		return sim.GameState{}, err
	}
	if err := s.store.StoreSave(ctx, userID, save.State, save.Version); err != nil {
		return sim.GameState{}, err
	}
	return save.State, nil
}

// MarkEventsRead flags every feed event as seen.
func (s *Service) MarkEventsRead(ctx context.Context, userID string) error {
	_, err := s.mutate(ctx, userID, func(state *sim.GameState) error {
		for i := range state.Events {
			state.Events[i].Read = true
		}
		return nil
	})
	return err
}

// SetAutoAdvance opts the save in or out of worker ticks.
func (s *Service) SetAutoAdvance(ctx context.Context, userID string, enabled bool) error {
	return s.store.SetAutoAdvance(ctx, userID, enabled)
}

func newEvent(month int, t sim.EventType, msg string) sim.GameEvent {
	return sim.GameEvent{ID: uuid.NewString(), Month: month, Message: msg, Type: t}
}
