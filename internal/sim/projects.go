package sim

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// NewProject builds a greenlit player movie at the start of its pipeline.
// Quality starts at zero and is settled by the release formula; the
// estimated release assumes the nominal six-month pipeline.
func NewProject(script Script, cast []string, productionBudget, marketingBudget int64, month, year int) Movie {
	estMonth, estYear := EstimatedRelease(month, year)
	return Movie{
		ID:               uuid.NewString(),
		ScriptID:         script.ID,
		StudioID:         PlayerID,
		Title:            script.Title,
		Genre:            script.Genre,
		Cast:             append([]string(nil), cast...),
		MarketingBudget:  marketingBudget,
		ProductionBudget: productionBudget,
		Phase:            PhasePreProduction,
		EstReleaseMonth:  estMonth,
		EstReleaseYear:   estYear,
	}
}

// advanceProjects runs the production pipeline for every unreleased
// player film and settles the ones that wrap this month.
func (e *Engine) advanceProjects(ctx context.Context, state *GameState) []GameEvent {
	var events []GameEvent
	for i := range state.Projects {
		m := &state.Projects[i]
		if m.StudioID != PlayerID || m.Released() {
			continue
		}

		ev, released := e.advanceProduction(m, state.Month)
		if ev != nil {
			events = append(events, GameEvent{
				ID:      uuid.NewString(),
				Month:   state.Month,
				Message: fmt.Sprintf("SET REPORT: \"%s\" - %s. %s", m.Title, ev.Title, ev.Description),
				Type:    productionEventType(ev.Kind),
			})
		}
		if !released {
			continue
		}

		m.ReleaseYear = state.Year
		events = append(events, e.releaseMovie(ctx, state, m)...)
	}
	return events
}

func productionEventType(kind string) EventType {
	switch kind {
	case "positive":
		return EventGood
	case "negative":
		return EventBad
	default:
		return EventInfo
	}
}

// releaseMovie settles a freshly wrapped player film: final quality and
// chemistry, box office, studio credit, cast release, and a review.
func (e *Engine) releaseMovie(ctx context.Context, state *GameState, m *Movie) []GameEvent {
	m.Chemistry = Chemistry(m.Cast, state.Actors)
	if script := state.ownedScriptByID(m.ScriptID); script != nil {
		m.Quality = e.movieQuality(*m, state.Actors, *script, m.Chemistry)
	}
	m.Revenue = e.boxOffice(*m, state)

	state.Balance += m.Revenue
	state.Reputation += reputationGain(m.Quality)

	for _, actorID := range m.Cast {
		if actor := state.actorByID(actorID); actor != nil {
			actor.Status = e.postReleaseStatus(ctx, actorID)
		}
	}

	m.Reviews = append(m.Reviews, e.review(ctx, *m))

	return []GameEvent{{
		ID:      uuid.NewString(),
		Month:   state.Month,
		Message: fmt.Sprintf("RELEASE: \"%s\" hits theaters!", m.Title),
		Type:    EventGood,
	}}
}

// postReleaseStatus decides where a cast member lands after a wrap:
// actors still under a studio contract go On Hiatus, everyone else back
// to the open market.
func (e *Engine) postReleaseStatus(ctx context.Context, actorID string) ActorStatus {
	if e.store == nil {
		return StatusAvailable
	}
	contract, err := e.store.ActiveContract(ctx, actorID)
	if err != nil {
		e.log.Warn("contract lookup failed", "actor_id", actorID, "err", err)
		return StatusAvailable
	}
	if contract != nil {
		return StatusOnHiatus
	}
	return StatusAvailable
}

func (e *Engine) review(ctx context.Context, m Movie) string {
	if e.story != nil {
		if r, err := e.story.Review(ctx, m); err == nil && r != "" {
			return r
		} else if err != nil {
			e.log.Warn("review generation failed", "movie_id", m.ID, "err", err)
		}
	}
	return fallbackReview(m.Quality, m.Genre)
}
