package sim

import (
	"strings"
	"testing"

	"backlot/internal/sim/tuning"
)

func soloRivalTuning() tuning.Tuning {
	tun := tuning.Defaults()
	tun.RivalMinActive = 1
	tun.RivalMaxActive = 1
	return tun
}

func TestRunRivalsRelease(t *testing.T) {
	// Gate draw 0.0 releases; budget/quality draws land mid-range.
	e := New(nil, nil, nil,
		WithRand(&stubRand{floats: []float64{0.0, 0.5, 0.5, 0.5, 0.5}}),
		WithTuning(soloRivalTuning()))
	state := GameState{
		Month: 6,
		Year:  2003,
		Rivals: []RivalStudio{
			{ID: "r0", Name: "Metro-G-M", Balance: 20_000_000},
		},
	}
	events := e.runRivals(&state)

	if len(state.Projects) != 1 {
		t.Fatalf("expected one rival release, got %d", len(state.Projects))
	}
	m := state.Projects[0]
	if m.StudioID != "r0" || !m.Released() || m.Progress != 100 {
		t.Fatalf("rival film malformed: %+v", m)
	}
	if m.ReleaseMonth != 6 || m.ReleaseYear != 2003 {
		t.Fatalf("release stamp: got %d/%d", m.ReleaseMonth, m.ReleaseYear)
	}
	if m.MarketingBudget < 1_000_000 || m.MarketingBudget > 6_000_000 {
		t.Fatalf("marketing budget out of range: %d", m.MarketingBudget)
	}
	if m.ProductionBudget < 2_000_000 || m.ProductionBudget > 12_000_000 {
		t.Fatalf("production budget out of range: %d", m.ProductionBudget)
	}
	if m.Quality < 30 || m.Quality > 95 {
		t.Fatalf("quality out of range: %v", m.Quality)
	}
	if m.Revenue <= 0 {
		t.Fatalf("released film should earn, got %d", m.Revenue)
	}
	if state.Rivals[0].Balance != 20_000_000+m.Revenue {
		t.Fatalf("rival balance not credited: %d", state.Rivals[0].Balance)
	}
	if state.Rivals[0].YearlyRevenue != m.Revenue {
		t.Fatalf("yearly revenue not credited: %d", state.Rivals[0].YearlyRevenue)
	}
	if len(events) != 1 || events[0].Type != EventInfo {
		t.Fatalf("expected one INFO event, got %+v", events)
	}
	if !strings.Contains(events[0].Message, "Reviews are MIXED") {
		t.Fatalf("mid-range quality should read MIXED: %q", events[0].Message)
	}
	if !strings.Contains(m.Title, "Metro-G-M presents") {
		t.Fatalf("rival title format: %q", m.Title)
	}
}

func TestRunRivalsRavingReviews(t *testing.T) {
	// Quality draw 0.9 lands at 88.5, over the raving threshold.
	e := New(nil, nil, nil,
		WithRand(&stubRand{floats: []float64{0.0, 0.5, 0.5, 0.9, 0.5}}),
		WithTuning(soloRivalTuning()))
	state := GameState{
		Month:  3,
		Year:   2003,
		Rivals: []RivalStudio{{ID: "r0", Name: "A24-proto"}},
	}
	events := e.runRivals(&state)
	if len(events) != 1 || !strings.Contains(events[0].Message, "Reviews are RAVING") {
		t.Fatalf("expected raving reviews, got %+v", events)
	}
}

func TestRunRivalsQuietMonth(t *testing.T) {
	tun := soloRivalTuning()
	tun.RivalReleaseChance = 0
	e := seededEngine(21, WithTuning(tun))
	state := GameState{
		Month:  4,
		Year:   2003,
		Rivals: []RivalStudio{{ID: "r0", Name: "Orion-ish"}},
	}
	if events := e.runRivals(&state); len(events) != 0 {
		t.Fatalf("zero release chance should be quiet, got %+v", events)
	}
	if len(state.Projects) != 0 {
		t.Fatalf("no films expected, got %d", len(state.Projects))
	}
}

func TestRunRivalsEmptyField(t *testing.T) {
	e := seededEngine(22)
	state := GameState{Month: 1, Year: 2003}
	if events := e.runRivals(&state); events != nil {
		t.Fatalf("no rivals means no events, got %+v", events)
	}
}

func TestRunRivalsSampleBounded(t *testing.T) {
	// Every draw releases: the number of films caps at the active sample,
	// which caps at the rival count.
	tun := tuning.Defaults()
	tun.RivalReleaseChance = 1.1
	e := seededEngine(23, WithTuning(tun))
	state := GameState{
		Month:  2,
		Year:   2003,
		Rivals: []RivalStudio{{ID: "r0", Name: "Miramax-alike"}, {ID: "r1", Name: "Summit-alike"}},
	}
	e.runRivals(&state)
	if len(state.Projects) > 2 {
		t.Fatalf("sample exceeded rival count: %d films", len(state.Projects))
	}
	seen := map[string]bool{}
	for _, m := range state.Projects {
		if seen[m.StudioID] {
			t.Fatalf("rival %s released twice in one month", m.StudioID)
		}
		seen[m.StudioID] = true
	}
}

func TestReputationGain(t *testing.T) {
	tests := []struct {
		quality float64
		want    int
	}{
		{0, 0},
		{9, 0},
		{10, 1},
		{45, 4},
		{100, 10},
	}
	for _, tc := range tests {
		if got := reputationGain(tc.quality); got != tc.want {
			t.Fatalf("quality %v: got %d want %d", tc.quality, got, tc.want)
		}
	}
}
