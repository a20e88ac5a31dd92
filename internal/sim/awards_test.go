package sim

import (
	"strings"
	"testing"
)

func awardsStateFixture() GameState {
	actors := []Actor{
		{ID: "a1", Name: "Brad Fitt", Gender: "Male", Skill: 90, Reputation: 95, Relationships: map[string]int{}},
		{ID: "a2", Name: "Julia Roberts-ish", Gender: "Female", Skill: 88, Reputation: 98, Relationships: map[string]int{}},
		{ID: "a4", Name: "Angelina J-ish", Gender: "Female", Skill: 85, Reputation: 94, Relationships: map[string]int{}},
		{ID: "a5", Name: "Tom C-ish", Gender: "Male", Skill: 92, Reputation: 99, Relationships: map[string]int{}},
	}
	projects := []Movie{
		{ID: "m1", Title: "First Feature", StudioID: PlayerID, Phase: PhaseReleased, ReleaseYear: 2003, Quality: 82, Cast: []string{"a1", "a2"}},
		{ID: "m2", Title: "Second Feature", StudioID: PlayerID, Phase: PhaseReleased, ReleaseYear: 2003, Quality: 74, Cast: []string{"a4", "a5"}},
		{ID: "m3", Title: "Rival Feature", StudioID: "r0", Phase: PhaseReleased, ReleaseYear: 2003, Quality: 68, Cast: nil},
		{ID: "m4", Title: "Weak Feature", StudioID: PlayerID, Phase: PhaseReleased, ReleaseYear: 2003, Quality: 40, Cast: []string{"a1"}},
		{ID: "m5", Title: "Last Year", StudioID: PlayerID, Phase: PhaseReleased, ReleaseYear: 2002, Quality: 90, Cast: []string{"a5"}},
		{ID: "m6", Title: "Unfinished", StudioID: PlayerID, Phase: PhaseFilming, Quality: 60, Cast: []string{"a2"}},
	}
	return GameState{
		Month:      1,
		Year:       2004,
		StudioName: "Backlot Pictures",
		Actors:     actors,
		Projects:   projects,
	}
}

func TestRunAwardsOffSeason(t *testing.T) {
	e := seededEngine(31)
	state := awardsStateFixture()
	state.Month = 5
	if events := e.runAwards(&state); events != nil {
		t.Fatalf("awards only run in January and February, got %+v", events)
	}
}

func TestGenerateCeremonyRequiresMinimumFilms(t *testing.T) {
	e := seededEngine(32)
	state := awardsStateFixture()
	state.Projects = state.Projects[:2] // only two qualifying releases
	if c := e.generateCeremony(&state, 2003); c != nil {
		t.Fatalf("two films should not sustain a ceremony, got %+v", c)
	}
}

func TestGenerateCeremonyBallot(t *testing.T) {
	e := seededEngine(33)
	state := awardsStateFixture()
	ceremony := e.generateCeremony(&state, 2003)
	if ceremony == nil {
		t.Fatalf("expected a ceremony for three qualifying films")
	}
	if ceremony.Name != "2003 Academy Awards" {
		t.Fatalf("ceremony name: %q", ceremony.Name)
	}
	if !ceremony.Announced || ceremony.Completed {
		t.Fatalf("fresh ceremony flags: %+v", ceremony)
	}

	byCategory := map[AwardCategory][]AwardNomination{}
	for _, n := range ceremony.Nominations {
		byCategory[n.Category] = append(byCategory[n.Category], n)
	}

	// Quality 40 and unreleased films never make the ballot, nor do prior
	// years' releases.
	for _, n := range ceremony.Nominations {
		if n.MovieID == "m4" || n.MovieID == "m5" || n.MovieID == "m6" {
			t.Fatalf("ineligible film nominated: %+v", n)
		}
	}

	if got := len(byCategory[AwardBestPicture]); got != 3 {
		t.Fatalf("best picture should list all three eligible films, got %d", got)
	}
	for _, n := range byCategory[AwardBestActor] {
		if n.ActorID != "a1" && n.ActorID != "a5" {
			t.Fatalf("best actor ballot has wrong gender: %+v", n)
		}
	}
	for _, n := range byCategory[AwardBestActress] {
		if n.ActorID != "a2" && n.ActorID != "a4" {
			t.Fatalf("best actress ballot has wrong gender: %+v", n)
		}
	}
	seen := map[string]bool{}
	for _, n := range byCategory[AwardBestActor] {
		if seen[n.ActorID] {
			t.Fatalf("actor nominated twice in one category: %s", n.ActorID)
		}
		seen[n.ActorID] = true
	}
}

func TestDetermineWinnersOnePerCategory(t *testing.T) {
	e := seededEngine(34)
	state := awardsStateFixture()
	ceremony := e.generateCeremony(&state, 2003)
	if ceremony == nil {
		t.Fatalf("expected a ceremony")
	}
	e.determineWinners(ceremony)
	if !ceremony.Completed {
		t.Fatalf("ceremony should complete after winners are drawn")
	}

	winners := map[AwardCategory]int{}
	populated := map[AwardCategory]bool{}
	for _, n := range ceremony.Nominations {
		populated[n.Category] = true
		if n.IsWinner {
			winners[n.Category]++
		}
	}
	for category := range populated {
		if winners[category] != 1 {
			t.Fatalf("category %s has %d winners", category, winners[category])
		}
	}
}

func TestAnnounceNominationsOncePerYear(t *testing.T) {
	e := seededEngine(35)
	state := awardsStateFixture()

	first := e.announceNominations(&state)
	if len(first) != 1 || len(state.Ceremonies) != 1 {
		t.Fatalf("expected one announcement, got events=%d ceremonies=%d", len(first), len(state.Ceremonies))
	}
	if !strings.Contains(first[0].Message, "Nominations") {
		t.Fatalf("announcement message: %q", first[0].Message)
	}

	second := e.announceNominations(&state)
	if len(second) != 0 || len(state.Ceremonies) != 1 {
		t.Fatalf("repeat announcement should be a no-op, got events=%d ceremonies=%d", len(second), len(state.Ceremonies))
	}
}

func TestApplyAwardEffectsPlayerWins(t *testing.T) {
	e := New(nil, nil, nil, WithRand(&stubRand{}))
	state := awardsStateFixture()
	state.Month = 2
	state.Reputation = 50
	ceremony := &AwardsCeremony{
		ID:   "c1",
		Year: 2003,
		Name: "2003 Academy Awards",
		Nominations: []AwardNomination{
			{ID: "n1", Category: AwardBestPicture, MovieID: "m1", MovieTitle: "First Feature", StudioID: PlayerID, IsWinner: true},
			{ID: "n2", Category: AwardBestActor, MovieID: "m1", MovieTitle: "First Feature", StudioID: PlayerID, ActorID: "a1", ActorName: "Brad Fitt", IsWinner: true},
			{ID: "n3", Category: AwardBestActress, MovieID: "m3", MovieTitle: "Rival Feature", StudioID: "r0", ActorID: "a2", ActorName: "Julia Roberts-ish", IsWinner: true},
		},
		Announced: true,
		Completed: true,
	}
	skillBefore := state.Actors[0].Skill
	repBefore := state.Actors[0].Reputation

	events := e.applyAwardEffects(&state, ceremony)

	// Best Picture +15, Best Actor +5 for the studio.
	if state.Reputation != 70 {
		t.Fatalf("studio reputation: got %d want 70", state.Reputation)
	}
	a1 := state.actorByID("a1")
	if a1.Skill <= skillBefore && skillBefore < 100 {
		t.Fatalf("acting winner should gain skill: before=%d after=%d", skillBefore, a1.Skill)
	}
	if a1.Reputation != clampStat(repBefore+10) {
		t.Fatalf("acting winner reputation: got %d", a1.Reputation)
	}
	if len(a1.Gossip) == 0 {
		t.Fatalf("acting winner should pick up gossip")
	}
	// A rival's actress still gets the personal boost.
	if a2 := state.actorByID("a2"); a2.Reputation != clampStat(98+10) {
		t.Fatalf("rival-studio winner reputation: got %d", a2.Reputation)
	}

	good := 0
	for _, ev := range events {
		if ev.Type == EventGood {
			good++
		}
	}
	// Two player win events plus the winning summary.
	if good != 3 {
		t.Fatalf("expected 3 GOOD events, got %d in %+v", good, events)
	}
}

func TestRunAwardsFebruaryNeedsAnnouncedCeremony(t *testing.T) {
	e := seededEngine(36)
	state := awardsStateFixture()
	state.Month = 2
	if events := e.runAwards(&state); len(events) != 0 {
		t.Fatalf("no announced ceremony means no February show, got %+v", events)
	}
}
