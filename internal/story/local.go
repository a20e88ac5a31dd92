// Package story generates flavor text for the simulation: script pitches,
// reviews, and gossip headlines. The Gemini client calls out to a remote
// model; Local composes everything from stock tables at zero cost.
package story

import (
	"context"
	"fmt"
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"backlot/internal/sim"
)

var tropes = map[sim.Genre][]string{
	sim.GenreAction:  {"Explosive", "Vengeance", "High-Octane", "Undercover", "Last Stand", "Overdrive"},
	sim.GenreComedy:  {"Unexpected", "Wacky", "Big Fat", "Total Disaster", "Misadventure", "Switcheroo"},
	sim.GenreDrama:   {"Tear-Jerker", "Shattered", "Legacy", "Bitter-Sweet", "Forgotten", "Crossroads"},
	sim.GenreSciFi:   {"Neo-", "Circuit", "Galactic", "Infinite", "Protocol", "Anomaly", "Neural"},
	sim.GenreHorror:  {"Sinister", "Shadow", "Nightmare", "Curse", "Silent", "Unseen", "Deep"},
	sim.GenreRomance: {"Chasing", "Mistaken", "Fate", "Spark", "Midnight", "Eternal", "Secret"},
}

// Local is the procedural text generator. It never fails, so it also
// serves as the fallback behind the Gemini client.
type Local struct {
	mu   sync.Mutex
	rand *mathrand.Rand
}

func NewLocal() *Local {
	return &Local{rand: mathrand.New(mathrand.NewSource(time.Now().UnixNano()))}
}

// NewLocalSeeded fixes the entropy source. Used by tests.
func NewLocalSeeded(seed int64) *Local {
	return &Local{rand: mathrand.New(mathrand.NewSource(seed))}
}

func (l *Local) nextFloat() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rand.Float64()
}

func (l *Local) nextIntn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rand.Intn(n)
}

// ScriptIdeas composes three pitches from the trope tables.
func (l *Local) ScriptIdeas(_ context.Context, _ int) ([]sim.ScriptIdea, error) {
	ideas := make([]sim.ScriptIdea, 0, 3)
	for i := 0; i < 3; i++ {
		genre := sim.Genres[l.nextIntn(len(sim.Genres))]
		trope := tropes[genre][l.nextIntn(len(tropes[genre]))]
		noun := sim.ScriptNouns[l.nextIntn(len(sim.ScriptNouns))]
		adj := sim.ScriptAdjectives[l.nextIntn(len(sim.ScriptAdjectives))]

		title := fmt.Sprintf("%s %s", adj, noun)
		if l.nextFloat() > 0.5 {
			title = fmt.Sprintf("%s %s", trope, noun)
		}
		tone := sim.ToneSerious
		if l.nextFloat() > 0.5 {
			tone = sim.ToneLighthearted
		}
		ideas = append(ideas, sim.ScriptIdea{
			Title:        title,
			Genre:        genre,
			Description:  fmt.Sprintf("A high-stakes %s film involving a %s secret and a race against time.", strings.ToLower(string(genre)), strings.ToLower(adj)),
			Tagline:      fmt.Sprintf("In a world of %s choices, only one %s matters.", strings.ToLower(adj), strings.ToLower(noun)),
			Quality:      45 + l.nextIntn(46),
			Complexity:   50,
			RequiredCast: 2,
			Tone:         tone,
		})
	}
	return ideas, nil
}

// Review grades a finished film by quality band.
func (l *Local) Review(_ context.Context, m sim.Movie) (string, error) {
	switch {
	case m.Quality > 80:
		return fmt.Sprintf("A modern masterpiece of %s!", strings.ToLower(string(m.Genre))), nil
	case m.Quality > 50:
		return "A solid effort that finds its footing by the second act.", nil
	default:
		return "A loud, confusing mess that should have stayed in pre-production.", nil
	}
}

// Headline picks a stock gossip line.
func (l *Local) Headline(_ context.Context, _ int) (string, error) {
	return sim.StockHeadlines[l.nextIntn(len(sim.StockHeadlines))], nil
}
