package sim

import (
	"testing"
)

func TestLifecycleProbabilityDeathByAge(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{30, 0.0005},
		{45, 0.002},
		{65, 0.008},
		{80, 0.02},
	}
	for _, tc := range tests {
		a := &Actor{Age: tc.age, Status: StatusAvailable}
		if got := lifecycleProbability(LifecycleDeath, a); got != tc.want {
			t.Fatalf("age %d: got %v want %v", tc.age, got, tc.want)
		}
	}
	dead := &Actor{Age: 80, Status: StatusDeceased}
	if got := lifecycleProbability(LifecycleDeath, dead); got != 0 {
		t.Fatalf("deceased actor cannot die again, got %v", got)
	}
}

func TestLifecycleProbabilityGates(t *testing.T) {
	retired := &Actor{Age: 70, Status: StatusRetired}
	if got := lifecycleProbability(LifecycleScandal, retired); got != 0 {
		t.Fatalf("retired actor should not have scandals, got %v", got)
	}

	famous := &Actor{Age: 40, Status: StatusAvailable, Reputation: 80}
	if got := lifecycleProbability(LifecycleComeback, famous); got != 0 {
		t.Fatalf("high reputation blocks comebacks, got %v", got)
	}

	single := &Actor{Age: 40, Status: StatusAvailable, Relationships: map[string]int{"a2": 30}}
	if got := lifecycleProbability(LifecycleDivorce, single); got != 0 {
		t.Fatalf("divorce needs a relationship over 50, got %v", got)
	}
	married := &Actor{Age: 40, Status: StatusAvailable, Relationships: map[string]int{"a2": 60}}
	if got := lifecycleProbability(LifecycleDivorce, married); got != 0.008 {
		t.Fatalf("divorce chance: got %v want 0.008", got)
	}

	content := &Actor{Age: 40, Status: StatusAvailable, Relationships: map[string]int{"a2": -10}}
	if got := lifecycleProbability(LifecycleReconciliation, content); got != 0 {
		t.Fatalf("reconciliation needs a feud under -30, got %v", got)
	}

	working := &Actor{Age: 40, Status: StatusAvailable}
	if got := lifecycleProbability(LifecycleRehab, working); got != 0 {
		t.Fatalf("rehab return only applies on hiatus, got %v", got)
	}
	resting := &Actor{Age: 40, Status: StatusOnHiatus}
	if got := lifecycleProbability(LifecycleRehab, resting); got != 0.1 {
		t.Fatalf("hiatus return chance: got %v want 0.1", got)
	}
}

func TestLifecycleProbabilityTierScaling(t *testing.T) {
	aList := &Actor{Age: 40, Status: StatusAvailable, Tier: TierAList}
	cList := &Actor{Age: 40, Status: StatusAvailable, Tier: TierCList}
	if lifecycleProbability(LifecycleScandal, aList) <= lifecycleProbability(LifecycleScandal, cList) {
		t.Fatalf("A-listers should attract more scandals")
	}
	newcomer := &Actor{Age: 22, Status: StatusAvailable, Tier: TierNewcomer}
	if lifecycleProbability(LifecycleBreakoutRole, newcomer) <= lifecycleProbability(LifecycleBreakoutRole, aList) {
		t.Fatalf("newcomers should land more breakout roles")
	}
}

func TestDeathRateStatistical(t *testing.T) {
	e := seededEngine(42)
	const trials = 5000
	deaths := 0
	for i := 0; i < trials; i++ {
		state := GameState{
			Month:  1,
			Actors: []Actor{{ID: "a1", Name: "Elder Statesman", Age: 90, Status: StatusAvailable, Relationships: map[string]int{}}},
		}
		for _, ev := range e.runLifecycle(&state) {
			if ev.Type == LifecycleDeath {
				deaths++
			}
		}
	}
	// p=0.02 over 5000 trials: expect ~100, allow a wide band.
	if deaths < 55 || deaths > 160 {
		t.Fatalf("death count %d outside plausible range for p=0.02", deaths)
	}
}

func TestRunLifecycleSkipsDeceased(t *testing.T) {
	e := seededEngine(13)
	state := GameState{
		Month:  1,
		Actors: []Actor{{ID: "a1", Name: "Ghost", Age: 50, Status: StatusDeceased, Relationships: map[string]int{}}},
	}
	for i := 0; i < 50; i++ {
		if events := e.runLifecycle(&state); len(events) != 0 {
			t.Fatalf("deceased actor generated events: %+v", events)
		}
	}
}

func TestApplyLifecycleImpactClamps(t *testing.T) {
	actor := &Actor{ID: "a1", Reputation: 5, Skill: 8, Salary: 12_000, Relationships: map[string]int{"a2": -90}}
	ev := &LifecycleEvent{
		Type:   LifecycleScandal,
		Gossip: "It's bad.",
		Impact: LifecycleImpact{Reputation: -15, Skill: -10, SalaryDelta: -5_000, Relationships: map[string]int{"a2": -40}},
	}
	applyLifecycleImpact(actor, ev)

	if actor.Reputation != 0 || actor.Skill != 0 {
		t.Fatalf("stats should clamp at 0: rep=%d skill=%d", actor.Reputation, actor.Skill)
	}
	if actor.Salary != SalaryFloor {
		t.Fatalf("salary should floor at %d, got %d", SalaryFloor, actor.Salary)
	}
	if actor.Relationships["a2"] != -100 {
		t.Fatalf("relationship should clamp at -100, got %d", actor.Relationships["a2"])
	}
	if len(actor.Gossip) != 1 || actor.Gossip[0] != "It's bad." {
		t.Fatalf("gossip not recorded: %+v", actor.Gossip)
	}
}

func TestGossipListBounded(t *testing.T) {
	actor := &Actor{ID: "a1"}
	for i := 0; i < 10; i++ {
		actor.addGossip("line")
	}
	if len(actor.Gossip) != GossipLimit {
		t.Fatalf("gossip should trim to %d, got %d", GossipLimit, len(actor.Gossip))
	}
}

func TestMarriageRespectsAgeGap(t *testing.T) {
	e := New(nil, nil, nil, WithRand(&stubRand{}))
	actor := &Actor{ID: "a1", Name: "Young Lead", Age: 25, Status: StatusAvailable, Relationships: map[string]int{}}
	all := []Actor{
		*actor,
		{ID: "a2", Name: "Veteran", Age: 70, Status: StatusAvailable},
	}
	if ev := e.generateLifecycleEvent(actor, LifecycleMarriage, 1, all); ev != nil {
		t.Fatalf("no partner within 20 years, expected nil event, got %+v", ev)
	}

	all = append(all, Actor{ID: "a3", Name: "Costar", Age: 30, Status: StatusAvailable})
	ev := e.generateLifecycleEvent(actor, LifecycleMarriage, 1, all)
	if ev == nil {
		t.Fatalf("expected marriage with eligible partner")
	}
	if ev.Impact.Relationships["a3"] != 60 {
		t.Fatalf("marriage should add +60 toward partner, got %+v", ev.Impact.Relationships)
	}
}

func TestFeudSkipsExistingEnemies(t *testing.T) {
	e := New(nil, nil, nil, WithRand(&stubRand{}))
	actor := &Actor{ID: "a1", Name: "Hothead", Age: 40, Status: StatusAvailable, Relationships: map[string]int{"a2": -80}}
	all := []Actor{
		*actor,
		{ID: "a2", Name: "Old Enemy", Age: 40, Status: StatusAvailable},
	}
	if ev := e.generateLifecycleEvent(actor, LifecycleFeud, 1, all); ev != nil {
		t.Fatalf("only target is already an enemy, expected nil, got %+v", ev)
	}
}

func TestRunLifecycleMirrorsRelationships(t *testing.T) {
	// Force exactly one feud. Zero-probability event types never draw, so
	// the first actor here consumes eight draws before the feud slot:
	// death, retirement, marriage, scandal, comeback, personal issues,
	// breakout, then feud.
	floats := make([]float64, 0, 32)
	for i := 0; i < 7; i++ {
		floats = append(floats, 0.999999)
	}
	floats = append(floats, 0.0)
	for i := 0; i < 12; i++ {
		floats = append(floats, 0.999999)
	}
	e := New(nil, nil, nil, WithRand(&stubRand{floats: floats}))

	state := GameState{
		Month: 1,
		Actors: []Actor{
			{ID: "a1", Name: "Hothead", Age: 40, Status: StatusAvailable, Relationships: map[string]int{}},
			{ID: "a2", Name: "Target", Age: 40, Status: StatusAvailable, Relationships: map[string]int{}},
		},
	}
	events := e.runLifecycle(&state)
	if len(events) != 1 || events[0].Type != LifecycleFeud {
		t.Fatalf("expected exactly one feud, got %+v", events)
	}
	if state.Actors[0].Relationships["a2"] != -40 {
		t.Fatalf("instigator side: got %d want -40", state.Actors[0].Relationships["a2"])
	}
	if state.Actors[1].Relationships["a1"] != -40 {
		t.Fatalf("target side should mirror: got %d want -40", state.Actors[1].Relationships["a1"])
	}
}

func TestUpdateTiersPromotionRescalesSalary(t *testing.T) {
	actors := []Actor{
		{ID: "a1", Tier: TierBList, Reputation: 92, Salary: 900_000, Status: StatusAvailable},
	}
	UpdateTiers(actors)
	if actors[0].Tier != TierAList {
		t.Fatalf("reputation 92 should promote to A-List, got %s", actors[0].Tier)
	}
	// 900k * (2.5 / 1.5) = 1.5M.
	if actors[0].Salary != 1_500_000 {
		t.Fatalf("salary should rescale with the tier: got %d", actors[0].Salary)
	}
}

func TestUpdateTiersDemotion(t *testing.T) {
	actors := []Actor{
		{ID: "a1", Tier: TierAList, Reputation: 35, Salary: 2_500_000, Status: StatusAvailable},
		{ID: "a2", Tier: TierBList, Reputation: 20, Salary: 600_000, Status: StatusAvailable},
	}
	UpdateTiers(actors)
	if actors[0].Tier != TierBList {
		t.Fatalf("A-List under 40 should fall to B-List, got %s", actors[0].Tier)
	}
	if actors[0].Salary != 1_500_000 {
		t.Fatalf("demotion salary: got %d want 1500000", actors[0].Salary)
	}
	if actors[1].Tier != TierCList {
		t.Fatalf("B-List under 30 should fall to C-List, got %s", actors[1].Tier)
	}
}

func TestUpdateTiersSkipsInactive(t *testing.T) {
	actors := []Actor{
		{ID: "a1", Tier: TierCList, Reputation: 95, Salary: 100_000, Status: StatusDeceased},
		{ID: "a2", Tier: TierCList, Reputation: 95, Salary: 100_000, Status: StatusRetired},
	}
	UpdateTiers(actors)
	for _, a := range actors {
		if a.Tier != TierCList || a.Salary != 100_000 {
			t.Fatalf("inactive actor %s changed: tier=%s salary=%d", a.ID, a.Tier, a.Salary)
		}
	}
}

func TestUpdateTiersNewcomerPath(t *testing.T) {
	actors := []Actor{
		{ID: "a1", Tier: TierNewcomer, Reputation: 80, Salary: 50_000, Status: StatusAvailable},
	}
	UpdateTiers(actors)
	if actors[0].Tier != TierCList {
		t.Fatalf("newcomer at 80 reputation climbs one rung to C-List, got %s", actors[0].Tier)
	}
	// 50k * (1.0 / 0.5) = 100k.
	if actors[0].Salary != 100_000 {
		t.Fatalf("salary should double moving off the newcomer rate: got %d", actors[0].Salary)
	}
}
