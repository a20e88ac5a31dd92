package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// runRivals lets a random handful of rival studios act for the month.
// Each active rival has a chance to drop a finished film straight into
// the release calendar, competing with everything else out this month.
func (e *Engine) runRivals(state *GameState) []GameEvent {
	if len(state.Rivals) == 0 {
		return nil
	}

	active := e.tun.RivalMinActive + e.nextIntn(e.tun.RivalMaxActive-e.tun.RivalMinActive+1)
	if active > len(state.Rivals) {
		active = len(state.Rivals)
	}
	// Partial Fisher-Yates: the first `active` indexes are the sample.
	idx := make([]int, len(state.Rivals))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < active; i++ {
		j := i + e.nextIntn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	var events []GameEvent
	for _, ri := range idx[:active] {
		rival := &state.Rivals[ri]
		if e.nextFloat() >= e.tun.RivalReleaseChance {
			continue
		}

		movie := Movie{
			ID:               uuid.NewString(),
			ScriptID:         "ai-script",
			StudioID:         rival.ID,
			Title:            fmt.Sprintf("%s presents %s", rival.Name, rivalMovieTitles[e.nextIntn(len(rivalMovieTitles))]),
			Genre:            Genres[e.nextIntn(len(Genres))],
			MarketingBudget:  int64(e.between(float64(e.tun.RivalMarketingMin), float64(e.tun.RivalMarketingMax))),
			ProductionBudget: int64(e.between(float64(e.tun.RivalProductionMin), float64(e.tun.RivalProductionMax))),
			Progress:         100,
			Phase:            PhaseReleased,
			Quality:          e.between(30, 95),
			ReleaseMonth:     state.Month,
			ReleaseYear:      state.Year,
		}
		movie.Revenue = e.boxOffice(movie, state)
		rival.Balance += movie.Revenue
		rival.YearlyRevenue += movie.Revenue
		state.Projects = append(state.Projects, movie)

		verdict := "MIXED"
		if movie.Quality > 70 {
			verdict = "RAVING"
		}
		events = append(events, GameEvent{
			ID:      uuid.NewString(),
			Month:   state.Month,
			Message: fmt.Sprintf("BO: %s released \"%s\". Reviews are %s.", rival.Name, movie.Title, verdict),
			Type:    EventInfo,
		})
	}
	return events
}

// reputationGain is the studio-reputation bump for releasing a film of
// the given quality.
func reputationGain(quality float64) int {
	return int(math.Floor(quality / 10))
}
