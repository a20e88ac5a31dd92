package studio

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"backlot/internal/sim"
)

// PlaceBid raises the player's bid on a market script. Funds are only
// committed when the auction resolves at month end, but the bid must be
// coverable now.
func (s *Service) PlaceBid(ctx context.Context, userID, scriptID string, amount int64) (sim.GameState, error) {
	return s.mutate(ctx, userID, func(state *sim.GameState) error {
		var script *sim.Script
		for i := range state.MarketScripts {
			if state.MarketScripts[i].ID == scriptID {
				script = &state.MarketScripts[i]
				break
			}
		}
		if script == nil {
			return ErrScriptNotFound
		}
		if amount <= script.CurrentBid {
			return ErrBidTooLow
		}
		if amount > state.Balance {
			return ErrInsufficientFunds
		}
		script.CurrentBid = amount
		script.HighBidderID = sim.PlayerID
		state.Events = append(state.Events, newEvent(state.Month, sim.EventInfo,
			fmt.Sprintf("BID: $%d on \"%s\". Auction resolves at month end.", amount, script.Title)))
		return nil
	})
}

// Greenlight starts production on an owned script: exact required cast,
// everyone castable, budgets plus uncontracted salaries paid up front.
func (s *Service) Greenlight(ctx context.Context, userID, scriptID string, castIDs []string, productionBudget, marketingBudget int64) (sim.GameState, error) {
	return s.mutate(ctx, userID, func(state *sim.GameState) error {
		var script *sim.Script
		for i := range state.OwnedScripts {
			if state.OwnedScripts[i].ID == scriptID {
				script = &state.OwnedScripts[i]
				break
			}
		}
		if script == nil {
			return ErrScriptNotFound
		}
		for i := range state.Projects {
			if state.Projects[i].ScriptID == scriptID {
				return ErrScriptInUse
			}
		}
		if len(castIDs) != script.RequiredCast {
			return ErrWrongCastSize
		}

		cost := productionBudget + marketingBudget
		for _, actorID := range castIDs {
			actor := findActor(state, actorID)
			if actor == nil {
				return fmt.Errorf("%w: %s", ErrActorUnavailable, actorID)
			}
			contracted, err := s.contractedByPlayer(ctx, actorID, userID)
			if err != nil {
				s.log.Warn("contract lookup failed", "actor_id", actorID, "err", err)
			}
			switch {
			case contracted && (actor.Status == sim.StatusOnHiatus || actor.Status == sim.StatusAvailable):
				// Contracted actors cost nothing extra per film.
			case actor.Status == sim.StatusAvailable:
				cost += actor.Salary
			default:
				return fmt.Errorf("%w: %s is %s", ErrActorUnavailable, actor.Name, actor.Status)
			}
		}
		if cost > state.Balance {
			return ErrInsufficientFunds
		}

		state.Balance -= cost
		for _, actorID := range castIDs {
			if actor := findActor(state, actorID); actor != nil {
				actor.Status = sim.StatusInProduction
			}
			if err := s.store.UpdateActor(ctx, actorID, map[string]any{"status": sim.StatusInProduction}); err != nil {
				s.log.Warn("actor status update failed", "actor_id", actorID, "err", err)
			}
		}
		state.Projects = append(state.Projects, sim.NewProject(*script, castIDs, productionBudget, marketingBudget, state.Month, state.Year))

		state.Events = append(state.Events, newEvent(state.Month, sim.EventGood,
			fmt.Sprintf("GREENLIT: \"%s\" production started.", script.Title)))
		if marketingBudget > 500_000 {
			state.Events = append(state.Events, newEvent(state.Month, sim.EventAd,
				fmt.Sprintf("MARKETING: %s", script.Title)))
		}
		return nil
	})
}

func (s *Service) contractedByPlayer(ctx context.Context, actorID, userID string) (bool, error) {
	contract, err := s.store.ActiveContract(ctx, actorID)
	if err != nil {
		return false, err
	}
	return contract != nil && contract.StudioID == userID, nil
}

// SignContract puts an available actor on retainer. The full contract
// cost, signing bonus plus every month's salary, is paid up front.
func (s *Service) SignContract(ctx context.Context, userID, actorID string, durationMonths int, signingBonus int64) (sim.GameState, error) {
	return s.mutate(ctx, userID, func(state *sim.GameState) error {
		actor := findActor(state, actorID)
		if actor == nil {
			return fmt.Errorf("%w: %s", ErrActorUnavailable, actorID)
		}
		if actor.Status != sim.StatusAvailable {
			return fmt.Errorf("%w: %s is %s", ErrActorUnavailable, actor.Name, actor.Status)
		}
		cost := signingBonus + int64(durationMonths)*actor.Salary
		if cost > state.Balance {
			return ErrInsufficientFunds
		}
		contract, err := s.store.SignContract(ctx, userID, actorID, actor.Salary, state.Month, state.Year, durationMonths)
		if err != nil {
			return err
		}
		state.Balance -= cost
		actor.Status = sim.StatusOnHiatus
		state.Events = append(state.Events, newEvent(state.Month, sim.EventInfo,
			fmt.Sprintf("SIGNED: %s on a %d-month contract (through %d/%d).", actor.Name, durationMonths, contract.EndsMonth, contract.EndsYear)))
		return nil
	})
}

// TerminateContract buys out a contract early and frees the actor.
func (s *Service) TerminateContract(ctx context.Context, userID, contractID string) (sim.GameState, error) {
	return s.mutate(ctx, userID, func(state *sim.GameState) error {
		actorID, err := s.store.TerminateContract(ctx, contractID, userID)
		if err != nil {
			return err
		}
		name := actorID
		if actor := findActor(state, actorID); actor != nil {
			actor.Status = sim.StatusAvailable
			name = actor.Name
		}
		state.Events = append(state.Events, newEvent(state.Month, sim.EventInfo,
			fmt.Sprintf("CONTRACT: Bought out %s's contract. The agent was not thrilled.", name)))
		return nil
	})
}

// GiftRival wires money to a rival studio for a modest goodwill bump.
func (s *Service) GiftRival(ctx context.Context, userID, rivalID string, amount int64) (sim.GameState, error) {
	return s.mutate(ctx, userID, func(state *sim.GameState) error {
		var rival *sim.RivalStudio
		for i := range state.Rivals {
			if state.Rivals[i].ID == rivalID {
				rival = &state.Rivals[i]
				break
			}
		}
		if rival == nil {
			return ErrRivalNotFound
		}
		if amount <= 0 || amount > state.Balance {
			return ErrInsufficientFunds
		}
		state.Balance -= amount
		rival.Balance += amount
		if rival.Relationship += 10; rival.Relationship > 100 {
			rival.Relationship = 100
		}
		state.Events = append(state.Events, newEvent(state.Month, sim.EventInfo,
			fmt.Sprintf("TRANSFER: You wired $%d to %s.", amount, rival.Name)))
		return nil
	})
}

// SendMessage records a memo to a rival studio. Public memos also hit
// the gossip feed.
func (s *Service) SendMessage(ctx context.Context, userID, rivalID, content string, isPublic bool) (sim.GameState, error) {
	return s.mutate(ctx, userID, func(state *sim.GameState) error {
		var rival *sim.RivalStudio
		for i := range state.Rivals {
			if state.Rivals[i].ID == rivalID {
				rival = &state.Rivals[i]
				break
			}
		}
		if rival == nil {
			return ErrRivalNotFound
		}
		state.Messages = append(state.Messages, sim.StudioMessage{
			ID:       uuid.NewString(),
			FromID:   sim.PlayerID,
			ToID:     rivalID,
			Content:  content,
			Month:    state.Month,
			IsPublic: isPublic,
		})
		if isPublic {
			state.Events = append(state.Events, newEvent(state.Month, sim.EventGossip,
				fmt.Sprintf("WIRE: %s sends bold memo to %s: \"%s...\"", state.StudioName, rival.Name, memoPreview(content))))
		}
		return nil
	})
}

// memoPreview trims a memo to 30 runes for the gossip feed. Rune-wise
// so a multi-byte character is never split mid-sequence.
func memoPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= 30 {
		return content
	}
	return string(runes[:30])
}

func findActor(state *sim.GameState, id string) *sim.Actor {
	for i := range state.Actors {
		if state.Actors[i].ID == id {
			return &state.Actors[i]
		}
	}
	return nil
}
