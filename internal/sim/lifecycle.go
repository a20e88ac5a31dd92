package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// LifecycleEventType names one kind of monthly actor event.
type LifecycleEventType string

const (
	LifecycleDeath           LifecycleEventType = "death"
	LifecycleRetirement      LifecycleEventType = "retirement"
	LifecycleMarriage        LifecycleEventType = "marriage"
	LifecycleDivorce         LifecycleEventType = "divorce"
	LifecycleScandal         LifecycleEventType = "scandal"
	LifecycleComeback        LifecycleEventType = "comeback"
	LifecycleAwardNomination LifecycleEventType = "award_nomination"
	LifecycleAwardWin        LifecycleEventType = "award_win"
	LifecyclePersonalIssues  LifecycleEventType = "personal_issues"
	LifecycleRehab           LifecycleEventType = "rehab"
	LifecycleCareerSlump     LifecycleEventType = "career_slump"
	LifecycleBreakoutRole    LifecycleEventType = "breakout_role"
	LifecycleFeud            LifecycleEventType = "feud"
	LifecycleReconciliation  LifecycleEventType = "reconciliation"
	LifecycleAging           LifecycleEventType = "aging"
)

// lifecycleOrder fixes the per-actor draw order so a seeded run replays
// identically.
var lifecycleOrder = []LifecycleEventType{
	LifecycleDeath,
	LifecycleRetirement,
	LifecycleMarriage,
	LifecycleDivorce,
	LifecycleScandal,
	LifecycleComeback,
	LifecycleAwardNomination,
	LifecycleAwardWin,
	LifecyclePersonalIssues,
	LifecycleRehab,
	LifecycleCareerSlump,
	LifecycleBreakoutRole,
	LifecycleFeud,
	LifecycleReconciliation,
	LifecycleAging,
}

// LifecycleImpact is the stat fallout of one lifecycle event. Zero values
// mean no change; Status empty means no status change.
type LifecycleImpact struct {
	Reputation    int
	Skill         int
	SalaryDelta   float64
	Status        ActorStatus
	Age           int
	Relationships map[string]int
}

// LifecycleEvent records one thing that happened to one actor this month.
type LifecycleEvent struct {
	ID        string
	ActorID   string
	ActorName string
	Type      LifecycleEventType
	Message   string
	Gossip    string
	Impact    LifecycleImpact
	Month     int
}

var scandalTypes = []string{
	"caught in a tax evasion scheme",
	"photographed in a compromising situation",
	"accused of being difficult on set",
	"linked to a controversial political figure",
	"spotted at an underground poker game",
	"rumored to have a secret family",
	"involved in a bar fight",
	"accused of plagiarizing a speech",
	"caught lying about their age",
	"leaked DMs reveal explosive feuds",
}

var awardNames = []string{
	"Golden Globe",
	"SAG Award",
	"Critics' Choice",
	"People's Choice",
	"MTV Movie Award",
	"Independent Spirit Award",
}

// lifecycleProbability is the monthly chance of an event type firing for
// an actor. Zero means the event cannot happen in their current state.
func lifecycleProbability(t LifecycleEventType, a *Actor) float64 {
	alive := a.Status != StatusDeceased
	active := alive && a.Status != StatusRetired
	switch t {
	case LifecycleDeath:
		if !alive {
			return 0
		}
		switch {
		case a.Age < 40:
			return 0.0005
		case a.Age < 60:
			return 0.002
		case a.Age < 75:
			return 0.008
		default:
			return 0.02
		}
	case LifecycleRetirement:
		if !active {
			return 0
		}
		switch {
		case a.Age < 50:
			return 0.001
		case a.Age < 65:
			return 0.01
		case a.Age < 75:
			return 0.03
		default:
			return 0.06
		}
	case LifecycleMarriage:
		if !active {
			return 0
		}
		switch {
		case a.Age < 25:
			return 0.02
		case a.Age < 40:
			return 0.015
		default:
			return 0.005
		}
	case LifecycleDivorce:
		if !alive || !hasRelationshipOver(a, 50) {
			return 0
		}
		return 0.008
	case LifecycleScandal:
		if !active {
			return 0
		}
		switch a.Tier {
		case TierAList:
			return 0.005 * 2
		case TierBList:
			return 0.005 * 1.5
		default:
			return 0.005
		}
	case LifecycleComeback:
		if !active || a.Reputation > 60 {
			return 0
		}
		return 0.02
	case LifecycleAwardNomination:
		if !active {
			return 0
		}
		return 0.01 * float64(a.Skill) / 100
	case LifecycleAwardWin:
		if !active {
			return 0
		}
		return 0.003 * float64(a.Skill) / 100
	case LifecyclePersonalIssues:
		if !active || a.Status == StatusOnHiatus {
			return 0
		}
		return 0.008
	case LifecycleRehab:
		if a.Status != StatusOnHiatus {
			return 0
		}
		return 0.1
	case LifecycleCareerSlump:
		if !active || a.Reputation < 40 {
			return 0
		}
		return 0.008
	case LifecycleBreakoutRole:
		if !active {
			return 0
		}
		switch a.Tier {
		case TierNewcomer:
			return 0.005 * 3
		case TierCList:
			return 0.005 * 2
		default:
			return 0.005
		}
	case LifecycleFeud:
		if !active {
			return 0
		}
		return 0.01
	case LifecycleReconciliation:
		if !alive || !hasRelationshipUnder(a, -30) {
			return 0
		}
		return 0.015
	case LifecycleAging:
		return 1.0 / 12
	}
	return 0
}

func hasRelationshipOver(a *Actor, threshold int) bool {
	for _, v := range a.Relationships {
		if v > threshold {
			return true
		}
	}
	return false
}

func hasRelationshipUnder(a *Actor, threshold int) bool {
	for _, v := range a.Relationships {
		if v < threshold {
			return true
		}
	}
	return false
}

// runLifecycle rolls every event type for every living actor and applies
// the fallout in place. Draws are independent; one actor can take several
// events in one month.
func (e *Engine) runLifecycle(state *GameState) []LifecycleEvent {
	var events []LifecycleEvent
	for i := range state.Actors {
		actor := &state.Actors[i]
		if actor.Status == StatusDeceased {
			continue
		}
		for _, t := range lifecycleOrder {
			p := lifecycleProbability(t, actor)
			if p <= 0 || e.nextFloat() >= p {
				continue
			}
			ev := e.generateLifecycleEvent(actor, t, state.Month, state.Actors)
			if ev == nil {
				continue
			}
			events = append(events, *ev)
			applyLifecycleImpact(actor, ev)
			// Mirror relationship shifts on the other party.
			for otherID, change := range ev.Impact.Relationships {
				if other := state.actorByID(otherID); other != nil {
					other.Relationships[actor.ID] = clampRelationship(other.Relationships[actor.ID] + change)
				}
			}
		}
	}
	return events
}

func (e *Engine) generateLifecycleEvent(actor *Actor, t LifecycleEventType, month int, all []Actor) *LifecycleEvent {
	ev := &LifecycleEvent{
		ID:        uuid.NewString(),
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Type:      t,
		Month:     month,
	}

	switch t {
	case LifecycleDeath:
		ev.Message = fmt.Sprintf("Tragic news: %s has passed away at age %d. The industry mourns.", actor.Name, actor.Age)
		ev.Gossip = "The industry still hasn't recovered from the loss. Tributes continue to pour in from colleagues and fans worldwide."
		ev.Impact = LifecycleImpact{Status: StatusDeceased}

	case LifecycleRetirement:
		ev.Message = fmt.Sprintf("%s announces retirement from acting after a storied career.", actor.Name)
		ev.Gossip = `Officially retired from the business. Sources say they're "at peace" with the decision, though insiders wonder if a comeback is inevitable.`
		ev.Impact = LifecycleImpact{Status: StatusRetired}

	case LifecycleMarriage:
		var eligible []*Actor
		for i := range all {
			p := &all[i]
			if p.ID == actor.ID || p.Status == StatusDeceased || p.Status == StatusRetired {
				continue
			}
			if abs(p.Age-actor.Age) < 20 {
				eligible = append(eligible, p)
			}
		}
		if len(eligible) == 0 {
			return nil
		}
		partner := eligible[e.nextIntn(len(eligible))]
		ev.Message = fmt.Sprintf("Wedding bells! %s and %s tie the knot in a lavish ceremony.", actor.Name, partner.Name)
		ev.Gossip = fmt.Sprintf(`Just married %s! The ceremony was the talk of the town. Insiders say they're "blissfully happy" but Hollywood marriages... we'll see.`, partner.Name)
		ev.Impact = LifecycleImpact{Reputation: 5, Relationships: map[string]int{partner.ID: 60}}

	case LifecycleDivorce:
		partner := e.pickRelated(actor, all, func(v int) bool { return v > 50 })
		if partner == nil {
			return nil
		}
		ev.Message = fmt.Sprintf("Splitsville! %s and %s confirm divorce after irreconcilable differences.", actor.Name, partner.Name)
		ev.Gossip = fmt.Sprintf(`The split from %s is getting UGLY. Lawyers are involved, and friends are being forced to pick sides. One source called it "a bloodbath."`, partner.Name)
		ev.Impact = LifecycleImpact{Reputation: -8, Skill: -8, Relationships: map[string]int{partner.ID: -80}}

	case LifecycleScandal:
		ev.Message = fmt.Sprintf("Scandal rocks Hollywood: %s %s.", actor.Name, scandalTypes[e.nextIntn(len(scandalTypes))])
		ev.Gossip = "The scandal won't die down. Publicists are in crisis mode, and studio execs are reconsidering upcoming projects. Career damage assessment: ongoing."
		ev.Impact = LifecycleImpact{Reputation: -15, Skill: -10, SalaryDelta: -float64(actor.Salary) * 0.15}

	case LifecycleComeback:
		ev.Message = fmt.Sprintf("%s makes stunning comeback with critically acclaimed indie role.", actor.Name)
		ev.Gossip = `The comeback is REAL. Critics are calling it a "career resurrection." Suddenly everyone who doubted them is pretending they always believed.`
		ev.Impact = LifecycleImpact{Reputation: 20, Skill: 5, SalaryDelta: float64(actor.Salary) * 0.20}

	case LifecycleAwardNomination:
		award := awardNames[e.nextIntn(len(awardNames))]
		ev.Message = fmt.Sprintf("%s earns %s nomination for outstanding performance.", actor.Name, award)
		ev.Gossip = fmt.Sprintf(`%s nominated! The campaign trail begins. Sources say they're "cautiously optimistic" but privately "already practicing their speech."`, award)
		ev.Impact = LifecycleImpact{Reputation: 8, Skill: 3, SalaryDelta: float64(actor.Salary) * 0.10}

	case LifecycleAwardWin:
		award := awardNames[e.nextIntn(len(awardNames))]
		ev.Message = fmt.Sprintf("%s wins %s! Emotional acceptance speech goes viral.", actor.Name, award)
		ev.Gossip = fmt.Sprintf("%s WINNER! The after-party was legendary. Quote fees have tripled overnight. Their agent hasn't slept in three days.", award)
		ev.Impact = LifecycleImpact{Reputation: 15, Skill: 5, SalaryDelta: float64(actor.Salary) * 0.30}

	case LifecyclePersonalIssues:
		ev.Message = fmt.Sprintf("%s takes leave from Hollywood to deal with personal matters.", actor.Name)
		ev.Gossip = `Stepped away from the spotlight. Close friends say it was "a long time coming." No timeline for return. Industry peers sending support.`
		ev.Impact = LifecycleImpact{Status: StatusOnHiatus, Skill: -5}

	case LifecycleRehab:
		ev.Message = fmt.Sprintf("%s returns to work after time away. Sources say they're refreshed and ready.", actor.Name)
		ev.Gossip = "Back in action and looking better than ever. The hiatus clearly did wonders. Scripts are already piling up on their agent's desk."
		ev.Impact = LifecycleImpact{Status: StatusAvailable, Reputation: 3, Skill: 8}

	case LifecycleCareerSlump:
		ev.Message = fmt.Sprintf("Rough patch for %s as recent projects underperform. Industry insiders worried.", actor.Name)
		ev.Gossip = `Career hitting a rough patch. Recent projects tanked, and insiders whisper about "box office poison." Needs a hit, and fast.`
		ev.Impact = LifecycleImpact{Reputation: -10, Skill: -6, SalaryDelta: -float64(actor.Salary) * 0.15}

	case LifecycleBreakoutRole:
		ev.Message = fmt.Sprintf("%s delivers breakout performance! Agents' phones ringing off the hook.", actor.Name)
		ev.Gossip = "BREAKOUT STAR! Everyone's scrambling to work with them. The performance is all anyone's talking about. A star is officially born."
		ev.Impact = LifecycleImpact{Reputation: 12, Skill: 8, SalaryDelta: float64(actor.Salary) * 0.25}

	case LifecycleFeud:
		var targets []*Actor
		for i := range all {
			p := &all[i]
			if p.ID == actor.ID || p.Status == StatusDeceased {
				continue
			}
			if actor.Relationships[p.ID] > -50 {
				targets = append(targets, p)
			}
		}
		if len(targets) == 0 {
			return nil
		}
		target := targets[e.nextIntn(len(targets))]
		ev.Message = fmt.Sprintf("Drama alert! %s and %s have very public falling out.", actor.Name, target.Name)
		ev.Gossip = fmt.Sprintf("Major feud with %s! Insiders say they can't be in the same room. Studios are already being warned not to cast them together.", target.Name)
		ev.Impact = LifecycleImpact{Reputation: -5, Skill: -4, Relationships: map[string]int{target.ID: -40}}

	case LifecycleReconciliation:
		foe := e.pickRelated(actor, all, func(v int) bool { return v < -30 })
		if foe == nil {
			return nil
		}
		ev.Message = fmt.Sprintf("Feud over! %s and %s spotted hugging at industry event.", actor.Name, foe.Name)
		ev.Gossip = fmt.Sprintf(`Made peace with %s! They were seen having a long talk at an industry event. Sources say "the hatchet is buried." For now.`, foe.Name)
		ev.Impact = LifecycleImpact{Reputation: 3, Skill: 3, Relationships: map[string]int{foe.ID: 50}}

	case LifecycleAging:
		// Silent: no message, no gossip, no feed entry.
		ev.Impact = LifecycleImpact{Age: 1}

	default:
		return nil
	}
	return ev
}

// pickRelated picks a uniform random actor whose relationship value from
// actor's side matches the filter.
func (e *Engine) pickRelated(actor *Actor, all []Actor, match func(int) bool) *Actor {
	var ids []string
	for id, v := range actor.Relationships {
		if match(v) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	// Map order is random but the draw must be reproducible under a seeded
	// source, so pick from a sorted view.
	sort.Strings(ids)
	id := ids[e.nextIntn(len(ids))]
	for i := range all {
		if all[i].ID == id {
			return &all[i]
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// applyLifecycleImpact mutates one actor per an event's impact block.
// Stats clamp to [0,100], relationships to [-100,100], salary never drops
// below the floor.
func applyLifecycleImpact(actor *Actor, ev *LifecycleEvent) {
	im := ev.Impact
	if im.Status != "" {
		actor.Status = im.Status
	}
	if im.Reputation != 0 {
		actor.Reputation = clampStat(actor.Reputation + im.Reputation)
	}
	if im.Skill != 0 {
		actor.Skill = clampStat(actor.Skill + im.Skill)
	}
	if im.SalaryDelta != 0 {
		s := int64(math.Round(float64(actor.Salary) + im.SalaryDelta))
		if s < SalaryFloor {
			s = SalaryFloor
		}
		actor.Salary = s
	}
	if im.Age != 0 {
		actor.Age += im.Age
	}
	for otherID, change := range im.Relationships {
		actor.Relationships[otherID] = clampRelationship(actor.Relationships[otherID] + change)
	}
	actor.addGossip(ev.Gossip)
}

// UpdateTiers recalculates every actor's tier from reputation, rescaling
// salary by the multiplier ratio on any change. Deceased and retired
// actors keep their tier.
func UpdateTiers(actors []Actor) {
	for i := range actors {
		a := &actors[i]
		if a.Status == StatusDeceased || a.Status == StatusRetired {
			continue
		}
		newTier := a.Tier
		switch {
		case a.Reputation >= 90 && a.Tier != TierAList:
			newTier = TierAList
		case a.Reputation >= 75 && a.Reputation < 90 && a.Tier == TierCList:
			newTier = TierBList
		case a.Reputation >= 75 && a.Reputation < 90 && a.Tier == TierNewcomer:
			newTier = TierCList
		case a.Reputation < 40 && a.Tier == TierAList:
			newTier = TierBList
		case a.Reputation < 30 && a.Tier == TierBList:
			newTier = TierCList
		}
		if newTier == a.Tier {
			continue
		}
		ratio := tierSalaryMultiplier[newTier] / tierSalaryMultiplier[a.Tier]
		a.Tier = newTier
		a.Salary = int64(math.Round(float64(a.Salary) * ratio))
		if a.Salary < SalaryFloor {
			a.Salary = SalaryFloor
		}
	}
}
