// Package sim implements the monthly simulation engine: actor lifecycle,
// production pipeline, rival studios, awards, and the orchestrator that
// advances a GameState by one month.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"backlot/internal/sim/tuning"
)

var (
	ErrNilState = errors.New("nil game state")
)

// Contract is the engine's view of an actor's studio contract. The engine
// only needs to know whether one exists when a film wraps.
type Contract struct {
	ID        string
	ActorID   string
	StudioID  string
	Salary    int64
	EndsMonth int
	EndsYear  int
}

// ActorStore persists the shared actor roster. AdvanceMonth treats every
// call as best-effort: failures are logged and the in-memory result stands.
type ActorStore interface {
	ListActors(ctx context.Context) ([]Actor, error)
	UpdateActor(ctx context.Context, id string, fields map[string]any) error
	ActiveContract(ctx context.Context, actorID string) (*Contract, error)
}

// ScriptIdea is a story pitch from the generator, not yet priced for market.
type ScriptIdea struct {
	Title        string
	Genre        Genre
	Tagline      string
	Description  string
	Quality      int
	Complexity   int
	RequiredCast int
	Tone         Tone
}

// StoryGenerator produces flavor text. Implementations may call out to a
// remote model; the engine substitutes canned values on any error.
type StoryGenerator interface {
	ScriptIdeas(ctx context.Context, year int) ([]ScriptIdea, error)
	Review(ctx context.Context, m Movie) (string, error)
	Headline(ctx context.Context, year int) (string, error)
}

// randSource is the engine's entropy. math/rand.Rand satisfies it; tests
// inject fixed sequences.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

// Engine advances game state month by month. Safe for concurrent use; the
// rand source is guarded so draws never interleave mid-formula.
type Engine struct {
	store ActorStore
	story StoryGenerator
	log   *slog.Logger
	tun   tuning.Tuning

	mu  sync.Mutex
	rng randSource
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithRand replaces the default time-seeded source. Used by tests.
func WithRand(r randSource) Option {
	return func(e *Engine) { e.rng = r }
}

func WithTuning(t tuning.Tuning) Option {
	return func(e *Engine) { e.tun = t }
}

func New(store ActorStore, story StoryGenerator, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		store: store,
		story: story,
		log:   logger,
		tun:   tuning.Defaults(),
		rng:   mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) nextFloat() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}

func (e *Engine) nextIntn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// between draws a uniform float in [lo, hi).
func (e *Engine) between(lo, hi float64) float64 {
	return lo + e.nextFloat()*(hi-lo)
}

// betweenInt64 draws a uniform int64 in [lo, hi].
func (e *Engine) betweenInt64(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(e.nextIntn(int(hi-lo+1)))
}

// AdvanceMonth runs one simulation month over a deep copy of state and
// returns the new state. The input is never mutated; callers swap on
// success. Collaborator failures degrade to canned values and logging,
// never to a failed month.
func (e *Engine) AdvanceMonth(ctx context.Context, state *GameState) (GameState, error) {
	if state == nil {
		return GameState{}, ErrNilState
	}
	next := state.Clone()
	var events []GameEvent

	// 1. Calendar.
	next.Month++
	if next.Month > 12 {
		next.Month = 1
		next.Year++
		for i := range next.Rivals {
			next.Rivals[i].YearlyRevenue = 0
		}
	}

	// 2. Script auction resolution.
	events = append(events, e.resolveAuctions(&next)...)

	// 3. Actor lifecycle, tier recalc, roster persistence.
	before := make([]Actor, len(next.Actors))
	for i := range next.Actors {
		before[i] = next.Actors[i].clone()
	}
	lifecycleEvents := e.runLifecycle(&next)
	UpdateTiers(next.Actors)
	e.persistActorDiffs(ctx, before, next.Actors)
	for _, le := range lifecycleEvents {
		if le.Type == LifecycleAging {
			continue
		}
		events = append(events, GameEvent{
			ID:      uuid.NewString(),
			Month:   next.Month,
			Message: le.Message,
			Type:    lifecycleEventType(le.Type),
		})
	}

	// 4. Rival studios act.
	events = append(events, e.runRivals(&next)...)

	// 5. Industry headline.
	events = append(events, GameEvent{
		ID:      uuid.NewString(),
		Month:   next.Month,
		Message: e.headline(ctx, next.Year),
		Type:    EventGossip,
	})

	// 6. Awards season: nominations in January, ceremony in February.
	events = append(events, e.runAwards(&next)...)

	// 7. Player productions.
	events = append(events, e.advanceProjects(ctx, &next)...)

	// 8. Script market refresh.
	events = append(events, e.refreshMarket(ctx, &next)...)

	next.Events = append(next.Events, events...)
	return next, nil
}

// resolveAuctions closes the month's script auctions. Scripts the player
// holds the high bid on are bought; everything else leaves the market.
func (e *Engine) resolveAuctions(state *GameState) []GameEvent {
	var events []GameEvent
	for i := range state.MarketScripts {
		sc := state.MarketScripts[i]
		if sc.HighBidderID != PlayerID {
			continue
		}
		state.Balance -= sc.CurrentBid
		owned := sc
		owned.HighBidderID = ""
		state.OwnedScripts = append(state.OwnedScripts, owned)
		events = append(events, GameEvent{
			ID:      uuid.NewString(),
			Month:   state.Month,
			Message: fmt.Sprintf("AUCTION WON: Rights to \"%s\" secured for $%d.", sc.Title, sc.CurrentBid),
			Type:    EventAuction,
		})
	}
	state.MarketScripts = nil
	return events
}

// lifecycleEventType maps a lifecycle event onto the feed taxonomy.
// Anything without a stronger classification reads as gossip.
func lifecycleEventType(t LifecycleEventType) EventType {
	switch t {
	case LifecycleDeath, LifecycleScandal, LifecycleCareerSlump, LifecycleFeud, LifecycleDivorce:
		return EventBad
	case LifecycleAwardWin, LifecycleComeback, LifecycleBreakoutRole:
		return EventGood
	default:
		return EventGossip
	}
}

// persistActorDiffs writes changed actors back to the shared roster.
// Best-effort: a failed write is logged and skipped.
func (e *Engine) persistActorDiffs(ctx context.Context, before, after []Actor) {
	if e.store == nil {
		return
	}
	prev := make(map[string]Actor, len(before))
	for _, a := range before {
		prev[a.ID] = a
	}
	for i := range after {
		fields := actorDiff(prev[after[i].ID], after[i])
		if len(fields) == 0 {
			continue
		}
		if err := e.store.UpdateActor(ctx, after[i].ID, fields); err != nil {
			e.log.Error("actor update failed", "actor_id", after[i].ID, "err", err)
		}
	}
}

// actorDiff lists the columns that changed between two snapshots of the
// same actor.
func actorDiff(old, cur Actor) map[string]any {
	fields := map[string]any{}
	if cur.Age != old.Age {
		fields["age"] = cur.Age
	}
	if cur.Tier != old.Tier {
		fields["tier"] = cur.Tier
	}
	if cur.Salary != old.Salary {
		fields["salary"] = cur.Salary
	}
	if cur.Reputation != old.Reputation {
		fields["reputation"] = cur.Reputation
	}
	if cur.Skill != old.Skill {
		fields["skill"] = cur.Skill
	}
	if cur.Status != old.Status {
		fields["status"] = cur.Status
	}
	if !relationshipsEqual(old.Relationships, cur.Relationships) {
		fields["relationships"] = cur.Relationships
	}
	if !stringsEqual(old.Gossip, cur.Gossip) {
		fields["gossip"] = cur.Gossip
	}
	return fields
}

func relationshipsEqual(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// headline asks the story generator for a monthly headline, with a local
// stand-in when the call fails.
func (e *Engine) headline(ctx context.Context, year int) string {
	if e.story != nil {
		if h, err := e.story.Headline(ctx, year); err == nil && h != "" {
			return h
		} else if err != nil {
			e.log.Warn("headline generation failed", "err", err)
		}
	}
	return StockHeadlines[e.nextIntn(len(StockHeadlines))]
}

// refreshMarket restocks the script market when it has gone empty.
func (e *Engine) refreshMarket(ctx context.Context, state *GameState) []GameEvent {
	if len(state.MarketScripts) > 0 {
		return nil
	}
	ideas := e.scriptIdeas(ctx, state.Year)
	var events []GameEvent
	for _, idea := range ideas {
		sc := Script{
			ID:           uuid.NewString(),
			Title:        idea.Title,
			Genre:        idea.Genre,
			Tagline:      idea.Tagline,
			Description:  idea.Description,
			Quality:      idea.Quality,
			Complexity:   idea.Complexity,
			BaseCost:     e.betweenInt64(e.tun.ScriptBaseCostMin, e.tun.ScriptBaseCostMax),
			RequiredCast: idea.RequiredCast,
			Tone:         idea.Tone,
		}
		sc.CurrentBid = sc.BaseCost
		if len(state.Rivals) > 0 {
			sc.HighBidderID = state.Rivals[e.nextIntn(len(state.Rivals))].ID
		}
		state.MarketScripts = append(state.MarketScripts, sc)
	}
	if len(state.MarketScripts) > 0 {
		events = append(events, GameEvent{
			ID:      uuid.NewString(),
			Month:   state.Month,
			Message: fmt.Sprintf("%d new scripts have hit the market.", len(state.MarketScripts)),
			Type:    EventInfo,
		})
	}
	return events
}

func (e *Engine) scriptIdeas(ctx context.Context, year int) []ScriptIdea {
	if e.story != nil {
		ideas, err := e.story.ScriptIdeas(ctx, year)
		if err == nil && len(ideas) > 0 {
			if len(ideas) > e.tun.MarketScriptCount {
				ideas = ideas[:e.tun.MarketScriptCount]
			}
			return ideas
		}
		if err != nil {
			e.log.Warn("script generation failed", "err", err)
		}
	}
	ideas := make([]ScriptIdea, 0, e.tun.MarketScriptCount)
	for i := 0; i < e.tun.MarketScriptCount; i++ {
		ideas = append(ideas, e.localScriptIdea())
	}
	return ideas
}

// localScriptIdea composes a script pitch from stock parts when no
// generator is wired or it errors.
func (e *Engine) localScriptIdea() ScriptIdea {
	genre := Genres[e.nextIntn(len(Genres))]
	tones := []Tone{ToneSerious, ToneLighthearted, ToneDark, ToneQuirky}
	trope := scriptTropes[e.nextIntn(len(scriptTropes))]
	noun := ScriptNouns[e.nextIntn(len(ScriptNouns))]
	adj := ScriptAdjectives[e.nextIntn(len(ScriptAdjectives))]
	return ScriptIdea{
		Title:        fmt.Sprintf("The %s %s", adj, noun),
		Genre:        genre,
		Tagline:      fmt.Sprintf("A %s tale of %s.", adj, trope),
		Description:  fmt.Sprintf("In a world of %s, one %s changes everything.", trope, noun),
		Quality:      30 + e.nextIntn(51),
		Complexity:   1 + e.nextIntn(10),
		RequiredCast: 1 + e.nextIntn(3),
		Tone:         tones[e.nextIntn(len(tones))],
	}
}
