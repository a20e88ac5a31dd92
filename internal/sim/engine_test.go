package sim

import (
	"context"
	mathrand "math/rand"
	"testing"

	"backlot/internal/sim/tuning"
)

// stubRand replays fixed sequences, cycling when exhausted.
type stubRand struct {
	floats []float64
	fi     int
	ints   []int
	ii     int
}

func (s *stubRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *stubRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)] % n
	s.ii++
	return v
}

func seededEngine(seed int64, opts ...Option) *Engine {
	opts = append([]Option{WithRand(mathrand.New(mathrand.NewSource(seed)))}, opts...)
	return New(nil, nil, nil, opts...)
}

func TestAdvanceMonthNilState(t *testing.T) {
	e := seededEngine(1)
	if _, err := e.AdvanceMonth(context.Background(), nil); err != ErrNilState {
		t.Fatalf("expected ErrNilState, got %v", err)
	}
}

func TestAdvanceMonthCalendarRollover(t *testing.T) {
	tun := tuning.Defaults()
	tun.RivalReleaseChance = 0 // keep rivals quiet so yearly revenue stays reset
	e := seededEngine(1, WithTuning(tun))

	state := GameState{
		Month: 12,
		Year:  2003,
		Rivals: []RivalStudio{
			{ID: "r0", Name: "Metro-G-M", YearlyRevenue: 4_400_000},
		},
	}
	next, err := e.AdvanceMonth(context.Background(), &state)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if next.Month != 1 || next.Year != 2004 {
		t.Fatalf("expected January 2004, got month=%d year=%d", next.Month, next.Year)
	}
	if next.Rivals[0].YearlyRevenue != 0 {
		t.Fatalf("expected yearly revenue reset, got %d", next.Rivals[0].YearlyRevenue)
	}
	if state.Month != 12 || state.Rivals[0].YearlyRevenue != 4_400_000 {
		t.Fatalf("input state mutated: month=%d rev=%d", state.Month, state.Rivals[0].YearlyRevenue)
	}
}

func TestAdvanceMonthMidYear(t *testing.T) {
	e := seededEngine(2)
	state := GameState{Month: 5, Year: 2003}
	next, err := e.AdvanceMonth(context.Background(), &state)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if next.Month != 6 || next.Year != 2003 {
		t.Fatalf("expected June 2003, got month=%d year=%d", next.Month, next.Year)
	}
	if len(next.Events) == 0 {
		t.Fatalf("expected at least the monthly headline event")
	}
}

func TestResolveAuctionsPlayerWin(t *testing.T) {
	e := seededEngine(3)
	state := GameState{
		Month:   2,
		Balance: 5_000_000,
		MarketScripts: []Script{
			{ID: "s1", Title: "The Matrix: Re-Reloaded", CurrentBid: 600_000, HighBidderID: PlayerID},
		},
	}
	events := e.resolveAuctions(&state)

	if state.Balance != 4_400_000 {
		t.Fatalf("expected balance 4400000, got %d", state.Balance)
	}
	if len(state.OwnedScripts) != 1 || state.OwnedScripts[0].ID != "s1" {
		t.Fatalf("expected script s1 owned, got %+v", state.OwnedScripts)
	}
	if state.OwnedScripts[0].HighBidderID != "" {
		t.Fatalf("expected high bidder cleared on owned script")
	}
	if len(state.MarketScripts) != 0 {
		t.Fatalf("expected market cleared, got %d scripts", len(state.MarketScripts))
	}
	if len(events) != 1 || events[0].Type != EventAuction {
		t.Fatalf("expected one AUCTION event, got %+v", events)
	}
}

func TestResolveAuctionsLostToRival(t *testing.T) {
	e := seededEngine(4)
	state := GameState{
		Balance: 5_000_000,
		MarketScripts: []Script{
			{ID: "s2", CurrentBid: 200_000, HighBidderID: "r2"},
		},
	}
	events := e.resolveAuctions(&state)

	if state.Balance != 5_000_000 {
		t.Fatalf("balance should not change on a lost auction, got %d", state.Balance)
	}
	if len(state.OwnedScripts) != 0 {
		t.Fatalf("lost script should not be owned")
	}
	if len(state.MarketScripts) != 0 {
		t.Fatalf("market should clear regardless of winner")
	}
	if len(events) != 0 {
		t.Fatalf("no events expected for lost auctions, got %+v", events)
	}
}

func TestRefreshMarketRestocks(t *testing.T) {
	e := seededEngine(5)
	state := GameState{
		Month: 3,
		Year:  2003,
		Rivals: []RivalStudio{
			{ID: "r0"}, {ID: "r1"},
		},
	}
	events := e.refreshMarket(context.Background(), &state)

	if len(state.MarketScripts) != tuning.Defaults().MarketScriptCount {
		t.Fatalf("expected %d market scripts, got %d", tuning.Defaults().MarketScriptCount, len(state.MarketScripts))
	}
	for _, sc := range state.MarketScripts {
		if sc.CurrentBid != sc.BaseCost {
			t.Fatalf("opening bid should equal base cost: %+v", sc)
		}
		if sc.BaseCost < 150_000 || sc.BaseCost > 1_000_000 {
			t.Fatalf("base cost %d out of range", sc.BaseCost)
		}
		if sc.HighBidderID != "r0" && sc.HighBidderID != "r1" {
			t.Fatalf("opening bidder should be a rival, got %q", sc.HighBidderID)
		}
		if sc.Title == "" || sc.Genre == "" {
			t.Fatalf("script missing flavor: %+v", sc)
		}
	}
	if len(events) != 1 || events[0].Type != EventInfo {
		t.Fatalf("expected one INFO restock event, got %+v", events)
	}
}

func TestRefreshMarketSkipsWhenStocked(t *testing.T) {
	e := seededEngine(6)
	state := GameState{
		MarketScripts: []Script{{ID: "s1"}},
	}
	if events := e.refreshMarket(context.Background(), &state); len(events) != 0 {
		t.Fatalf("stocked market should not restock, got %+v", events)
	}
	if len(state.MarketScripts) != 1 {
		t.Fatalf("existing scripts should be untouched")
	}
}

func TestLifecycleEventTypeMapping(t *testing.T) {
	tests := []struct {
		in   LifecycleEventType
		want EventType
	}{
		{LifecycleDeath, EventBad},
		{LifecycleScandal, EventBad},
		{LifecycleDivorce, EventBad},
		{LifecycleFeud, EventBad},
		{LifecycleCareerSlump, EventBad},
		{LifecycleAwardWin, EventGood},
		{LifecycleComeback, EventGood},
		{LifecycleBreakoutRole, EventGood},
		{LifecycleMarriage, EventGossip},
		{LifecycleRetirement, EventGossip},
		{LifecycleRehab, EventGossip},
	}
	for _, tc := range tests {
		if got := lifecycleEventType(tc.in); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestActorDiff(t *testing.T) {
	old := Actor{ID: "a1", Age: 38, Skill: 90, Salary: 2_000_000, Relationships: map[string]int{"a2": 25}}
	cur := old
	cur.Age = 39
	cur.Salary = 2_100_000
	cur.Relationships = map[string]int{"a2": 30}

	fields := actorDiff(old, cur)
	if len(fields) != 3 {
		t.Fatalf("expected 3 changed fields, got %v", fields)
	}
	if fields["age"] != 39 {
		t.Fatalf("age diff missing: %v", fields)
	}
	if fields["salary"] != int64(2_100_000) {
		t.Fatalf("salary diff missing: %v", fields)
	}
	if _, ok := fields["relationships"]; !ok {
		t.Fatalf("relationships diff missing: %v", fields)
	}
}

func TestActorDiffNoChange(t *testing.T) {
	a := Actor{ID: "a1", Age: 38, Relationships: map[string]int{"a2": 25}, Gossip: []string{"x"}}
	if fields := actorDiff(a, a); len(fields) != 0 {
		t.Fatalf("identical snapshots should diff empty, got %v", fields)
	}
}
