package sim

import (
	"context"
	"errors"
	"testing"
)

// fakeStore is an in-memory ActorStore for engine tests.
type fakeStore struct {
	actors    []Actor
	updates   map[string]map[string]any
	contracts map[string]*Contract
	failWith  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		updates:   map[string]map[string]any{},
		contracts: map[string]*Contract{},
	}
}

func (f *fakeStore) ListActors(ctx context.Context) ([]Actor, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.actors, nil
}

func (f *fakeStore) UpdateActor(ctx context.Context, id string, fields map[string]any) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.updates[id] = fields
	return nil
}

func (f *fakeStore) ActiveContract(ctx context.Context, actorID string) (*Contract, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.contracts[actorID], nil
}

func TestProductionEventTypeMapping(t *testing.T) {
	if productionEventType("positive") != EventGood {
		t.Fatalf("positive should map to GOOD")
	}
	if productionEventType("negative") != EventBad {
		t.Fatalf("negative should map to BAD")
	}
	if productionEventType("neutral") != EventInfo {
		t.Fatalf("neutral should map to INFO")
	}
}

func TestReleaseMovieSettlement(t *testing.T) {
	e := New(nil, nil, nil, WithRand(&stubRand{floats: []float64{0.5}}))
	state := GameState{
		Month:      9,
		Year:       2003,
		Balance:    1_000_000,
		Reputation: 30,
		Actors: []Actor{
			{ID: "a1", Name: "Brad Fitt", Gender: "Male", Skill: 90, Status: StatusInProduction, Genres: []Genre{GenreAction}, Relationships: map[string]int{"a2": 25}},
			{ID: "a2", Name: "Julia Roberts-ish", Gender: "Female", Skill: 70, Status: StatusInProduction, Genres: []Genre{GenreAction}, Relationships: map[string]int{"a1": 25}},
		},
		OwnedScripts: []Script{{ID: "s1", Title: "The Big One", Genre: GenreAction, Quality: 50}},
	}
	m := Movie{
		ID:               "m1",
		ScriptID:         "s1",
		StudioID:         PlayerID,
		Title:            "The Big One",
		Genre:            GenreAction,
		Cast:             []string{"a1", "a2"},
		ProductionBudget: 8_000_000,
		MarketingBudget:  3_000_000,
		Phase:            PhaseReleased,
		ReleaseMonth:     9,
		ReleaseYear:      2003,
	}
	events := e.releaseMovie(context.Background(), &state, &m)

	if m.Chemistry != 25 {
		t.Fatalf("chemistry: got %d want 25", m.Chemistry)
	}
	// 50 + 0.4*80 + 5*2 + 25 + 10 = 127, clamped to 100.
	if m.Quality != 100 {
		t.Fatalf("settled quality: got %v want 100", m.Quality)
	}
	if m.Revenue <= 0 {
		t.Fatalf("release should earn revenue")
	}
	if state.Balance != 1_000_000+m.Revenue {
		t.Fatalf("balance not credited: %d", state.Balance)
	}
	if state.Reputation != 40 {
		t.Fatalf("reputation: got %d want 40", state.Reputation)
	}
	for _, a := range state.Actors {
		if a.Status != StatusAvailable {
			t.Fatalf("uncontracted cast should free up, %s is %s", a.ID, a.Status)
		}
	}
	if len(m.Reviews) != 1 || m.Reviews[0] == "" {
		t.Fatalf("expected one review, got %+v", m.Reviews)
	}
	if len(events) != 1 || events[0].Type != EventGood {
		t.Fatalf("expected one GOOD release event, got %+v", events)
	}
}

func TestPostReleaseStatus(t *testing.T) {
	store := newFakeStore()
	store.contracts["a1"] = &Contract{ID: "c1", ActorID: "a1", StudioID: "u1"}
	e := New(store, nil, nil, WithRand(&stubRand{}))

	if got := e.postReleaseStatus(context.Background(), "a1"); got != StatusOnHiatus {
		t.Fatalf("contracted actor: got %s want %s", got, StatusOnHiatus)
	}
	if got := e.postReleaseStatus(context.Background(), "a2"); got != StatusAvailable {
		t.Fatalf("free agent: got %s want %s", got, StatusAvailable)
	}

	store.failWith = errors.New("db down")
	if got := e.postReleaseStatus(context.Background(), "a1"); got != StatusAvailable {
		t.Fatalf("lookup failure should fall back to available, got %s", got)
	}
}

func TestAdvanceProjectsIgnoresRivalFilms(t *testing.T) {
	e := New(nil, nil, nil, WithRand(nominalRand()))
	state := GameState{
		Month: 4,
		Year:  2003,
		Projects: []Movie{
			{ID: "m1", StudioID: "r0", Phase: PhaseFilming, PhaseProgress: 90},
		},
	}
	if events := e.advanceProjects(context.Background(), &state); len(events) != 0 {
		t.Fatalf("rival film should not advance, got %+v", events)
	}
	if state.Projects[0].PhaseProgress != 90 {
		t.Fatalf("rival film mutated: %+v", state.Projects[0])
	}
}

func TestAdvanceProjectsReleasesWrappedFilm(t *testing.T) {
	e := New(nil, nil, nil, WithRand(nominalRand()))
	state := GameState{
		Month:        10,
		Year:         2003,
		Balance:      500_000,
		OwnedScripts: []Script{{ID: "s1", Title: "Closer", Genre: GenreDrama, Quality: 60}},
		Projects: []Movie{
			{
				ID:               "m1",
				ScriptID:         "s1",
				StudioID:         PlayerID,
				Title:            "Closer",
				Genre:            GenreDrama,
				ProductionBudget: 4_000_000,
				Phase:            PhaseMarketing,
				PhaseProgress:    10,
			},
		},
	}
	events := e.advanceProjects(context.Background(), &state)

	m := state.Projects[0]
	if !m.Released() {
		t.Fatalf("marketing at 10%% plus a nominal month should wrap, got %+v", m)
	}
	if m.ReleaseMonth != 10 || m.ReleaseYear != 2003 {
		t.Fatalf("release stamp: %d/%d", m.ReleaseMonth, m.ReleaseYear)
	}
	if state.Balance != 500_000+m.Revenue {
		t.Fatalf("revenue not banked: %d", state.Balance)
	}
	found := false
	for _, ev := range events {
		if ev.Type == EventGood {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a release event, got %+v", events)
	}
}

func TestFallbackReviewBands(t *testing.T) {
	if r := fallbackReview(90, GenreAction); r != "A modern masterpiece of action!" {
		t.Fatalf("high band: %q", r)
	}
	if r := fallbackReview(60, GenreDrama); r == "" || r == fallbackReview(90, GenreDrama) {
		t.Fatalf("mid band should differ from the rave: %q", r)
	}
	if r := fallbackReview(20, GenreHorror); r != "A loud, confusing mess that should have stayed in pre-production." {
		t.Fatalf("low band: %q", r)
	}
}
