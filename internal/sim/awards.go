package sim

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// AwardCategory is one prize at the annual ceremony.
type AwardCategory string

const (
	AwardBestPicture        AwardCategory = "Best Picture"
	AwardBestActor          AwardCategory = "Best Actor"
	AwardBestActress        AwardCategory = "Best Actress"
	AwardBestDirector       AwardCategory = "Best Director"
	AwardBestScreenplay     AwardCategory = "Best Screenplay"
	AwardBestCinematography AwardCategory = "Best Cinematography"
	AwardBestScore          AwardCategory = "Best Score"
)

var awardCategories = []AwardCategory{
	AwardBestPicture,
	AwardBestActor,
	AwardBestActress,
	AwardBestDirector,
	AwardBestScreenplay,
	AwardBestCinematography,
	AwardBestScore,
}

// actingCategory reports whether a category nominates a performer rather
// than a film.
func actingCategory(c AwardCategory) bool {
	return c == AwardBestActor || c == AwardBestActress
}

// AwardNomination is one slot on a ceremony ballot. ActorID/ActorName are
// set only for acting categories.
type AwardNomination struct {
	ID         string        `json:"id"`
	Category   AwardCategory `json:"category"`
	MovieID    string        `json:"movie_id"`
	MovieTitle string        `json:"movie_title"`
	StudioID   string        `json:"studio_id"`
	ActorID    string        `json:"actor_id,omitempty"`
	ActorName  string        `json:"actor_name,omitempty"`
	IsWinner   bool          `json:"is_winner"`
}

// AwardsCeremony covers one award year: nominations announced in January,
// winners in February.
type AwardsCeremony struct {
	ID          string            `json:"id"`
	Year        int               `json:"year"`
	Name        string            `json:"name"`
	Nominations []AwardNomination `json:"nominations"`
	Announced   bool              `json:"announced"`
	Completed   bool              `json:"completed"`
}

func (c *AwardsCeremony) clone() AwardsCeremony {
	out := *c
	out.Nominations = append([]AwardNomination(nil), c.Nominations...)
	return out
}

// runAwards drives the awards calendar: January announces nominations for
// last year's releases, February hands out the statues.
func (e *Engine) runAwards(state *GameState) []GameEvent {
	switch state.Month {
	case 1:
		return e.announceNominations(state)
	case 2:
		return e.holdCeremony(state)
	}
	return nil
}

func (e *Engine) announceNominations(state *GameState) []GameEvent {
	awardYear := state.Year - 1
	for i := range state.Ceremonies {
		if state.Ceremonies[i].Year == awardYear {
			return nil
		}
	}
	ceremony := e.generateCeremony(state, awardYear)
	if ceremony == nil {
		return nil
	}
	state.Ceremonies = append(state.Ceremonies, *ceremony)

	playerNoms := 0
	for _, n := range ceremony.Nominations {
		if n.StudioID == PlayerID {
			playerNoms++
		}
	}
	msg := fmt.Sprintf("AWARDS: Nominations for the %s are out!", ceremony.Name)
	if playerNoms > 0 {
		msg = fmt.Sprintf("AWARDS: Nominations for the %s are out! %s picked up %d.", ceremony.Name, state.StudioName, playerNoms)
	}
	return []GameEvent{{
		ID:      uuid.NewString(),
		Month:   state.Month,
		Message: msg,
		Type:    EventInfo,
	}}
}

func (e *Engine) holdCeremony(state *GameState) []GameEvent {
	awardYear := state.Year - 1
	var ceremony *AwardsCeremony
	for i := range state.Ceremonies {
		if state.Ceremonies[i].Year == awardYear && state.Ceremonies[i].Announced && !state.Ceremonies[i].Completed {
			ceremony = &state.Ceremonies[i]
			break
		}
	}
	if ceremony == nil {
		return nil
	}
	e.determineWinners(ceremony)
	return e.applyAwardEffects(state, ceremony)
}

// generateCeremony builds the ballot from last year's qualifying releases.
// Fewer than the minimum film count means no ceremony at all.
func (e *Engine) generateCeremony(state *GameState, year int) *AwardsCeremony {
	var eligible []Movie
	for i := range state.Projects {
		p := &state.Projects[i]
		if p.Released() && p.ReleaseYear == year && p.Quality >= float64(e.tun.AwardMinQuality) {
			eligible = append(eligible, *p)
		}
	}
	if len(eligible) < e.tun.AwardMinFilms {
		return nil
	}

	ceremony := &AwardsCeremony{
		ID:        uuid.NewString(),
		Year:      year,
		Name:      fmt.Sprintf("%d Academy Awards", year),
		Announced: true,
	}
	for _, category := range awardCategories {
		ceremony.Nominations = append(ceremony.Nominations, e.nominate(category, eligible, state.Actors)...)
	}
	return ceremony
}

func (e *Engine) nominate(category AwardCategory, movies []Movie, actors []Actor) []AwardNomination {
	if !actingCategory(category) {
		type scored struct {
			movie Movie
			score float64
		}
		ranked := make([]scored, 0, len(movies))
		for _, m := range movies {
			ranked = append(ranked, scored{m, m.Quality + e.between(-10, 10)})
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
		if len(ranked) > e.tun.AwardNominees {
			ranked = ranked[:e.tun.AwardNominees]
		}
		noms := make([]AwardNomination, 0, len(ranked))
		for _, r := range ranked {
			noms = append(noms, AwardNomination{
				ID:         uuid.NewString(),
				Category:   category,
				MovieID:    r.movie.ID,
				MovieTitle: r.movie.Title,
				StudioID:   r.movie.StudioID,
			})
		}
		return noms
	}

	gender := "Male"
	if category == AwardBestActress {
		gender = "Female"
	}
	byID := make(map[string]*Actor, len(actors))
	for i := range actors {
		byID[actors[i].ID] = &actors[i]
	}
	type performance struct {
		actor *Actor
		movie Movie
		score float64
	}
	var perfs []performance
	for _, m := range movies {
		for _, actorID := range m.Cast {
			a := byID[actorID]
			if a == nil || a.Gender != gender {
				continue
			}
			perfs = append(perfs, performance{a, m, m.Quality*0.6 + float64(a.Skill)*0.4 + e.nextFloat()*15})
		}
	}
	sort.SliceStable(perfs, func(i, j int) bool { return perfs[i].score > perfs[j].score })

	var noms []AwardNomination
	seen := map[string]bool{}
	for _, p := range perfs {
		if len(noms) >= e.tun.AwardNominees || seen[p.actor.ID] {
			continue
		}
		seen[p.actor.ID] = true
		noms = append(noms, AwardNomination{
			ID:         uuid.NewString(),
			Category:   category,
			MovieID:    p.movie.ID,
			MovieTitle: p.movie.Title,
			StudioID:   p.movie.StudioID,
			ActorID:    p.actor.ID,
			ActorName:  p.actor.Name,
		})
	}
	return noms
}

// determineWinners picks one winner per category, weighted towards the
// top of the ballot with a geometric falloff.
func (e *Engine) determineWinners(ceremony *AwardsCeremony) {
	for _, category := range awardCategories {
		var idx []int
		for i := range ceremony.Nominations {
			if ceremony.Nominations[i].Category == category {
				idx = append(idx, i)
			}
		}
		if len(idx) == 0 {
			continue
		}
		weights := make([]float64, len(idx))
		total := 0.0
		w := 1.0
		for i := range idx {
			weights[i] = w * (0.5 + e.nextFloat())
			total += weights[i]
			w *= 0.7
		}
		draw := e.nextFloat() * total
		cumulative := 0.0
		for i := range idx {
			cumulative += weights[i]
			if draw <= cumulative {
				ceremony.Nominations[idx[i]].IsWinner = true
				break
			}
		}
	}
	ceremony.Completed = true
}

// applyAwardEffects credits winners: studio reputation for player wins,
// skill and reputation for acting winners, plus feed events.
func (e *Engine) applyAwardEffects(state *GameState, ceremony *AwardsCeremony) []GameEvent {
	var events []GameEvent
	playerWins, playerNoms := 0, 0

	for _, nom := range ceremony.Nominations {
		if nom.StudioID == PlayerID {
			playerNoms++
		}
		if !nom.IsWinner {
			continue
		}
		if nom.StudioID == PlayerID {
			playerWins++
			boost := 5
			if nom.Category == AwardBestPicture {
				boost = 15
			}
			state.Reputation = clampStat(state.Reputation + boost)
			suffix := ""
			if nom.ActorName != "" {
				suffix = fmt.Sprintf(" (%s)", nom.ActorName)
			}
			events = append(events, GameEvent{
				ID:      uuid.NewString(),
				Month:   state.Month,
				Message: fmt.Sprintf("AWARDS: \"%s\" wins %s!%s +%d reputation", nom.MovieTitle, nom.Category, suffix, boost),
				Type:    EventGood,
			})
		}
		if nom.ActorID != "" && actingCategory(nom.Category) {
			if actor := state.actorByID(nom.ActorID); actor != nil {
				actor.Skill = clampStat(actor.Skill + 5 + e.nextIntn(5))
				actor.Reputation = clampStat(actor.Reputation + 10)
				actor.addGossip(fmt.Sprintf("Won %s for \"%s\" at the %s", nom.Category, nom.MovieTitle, ceremony.Name))
			}
		}
	}

	summaryType := EventInfo
	if playerWins > 0 {
		summaryType = EventGood
	}
	events = append(events, GameEvent{
		ID:      uuid.NewString(),
		Month:   state.Month,
		Message: fmt.Sprintf("AWARDS: %s complete! %s: %d wins from %d nominations.", ceremony.Name, state.StudioName, playerWins, playerNoms),
		Type:    summaryType,
	})
	return events
}
