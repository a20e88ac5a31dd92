package sim

import (
	"math"

	"github.com/google/uuid"
)

// phaseWeight is each phase's share of overall progress.
var phaseWeight = map[Phase]int{
	PhasePreProduction:  10,
	PhaseFilming:        50,
	PhasePostProduction: 30,
	PhaseMarketing:      10,
}

// phaseRate is the nominal progress a phase gains per month, tuned so the
// whole pipeline runs about six months.
var phaseRate = map[Phase]float64{
	PhasePreProduction:  100,
	PhaseFilming:        50,
	PhasePostProduction: 50,
	PhaseMarketing:      100,
}

// phaseDurationMonths is the base pipeline length used for the estimated
// release date stamped at greenlight.
const phaseDurationMonths = 6

// nextPhase returns the phase after current; Released is absorbing.
func nextPhase(current Phase) Phase {
	for i, p := range phaseOrder {
		if p == current && i+1 < len(phaseOrder) {
			return phaseOrder[i+1]
		}
	}
	return PhaseReleased
}

// OverallProgress folds completed phase weights and the fractional current
// phase into a 0-100 figure.
func OverallProgress(phase Phase, phaseProgress float64) int {
	if phase == PhaseReleased {
		return 100
	}
	total := 0.0
	for _, p := range phaseOrder {
		if p == phase {
			total += phaseProgress / 100 * float64(phaseWeight[p])
			break
		}
		total += float64(phaseWeight[p])
	}
	if total > 100 {
		total = 100
	}
	return int(math.Round(total))
}

// EstimatedRelease projects a release date for a project started at the
// given month.
func EstimatedRelease(startMonth, startYear int) (month, year int) {
	month, year = startMonth+phaseDurationMonths, startYear
	for month > 12 {
		month -= 12
		year++
	}
	return month, year
}

type productionEventSpec struct {
	kind         string
	title        string
	description  string
	qualityDelta int
	budgetDelta  int64
	delayMonths  int
}

var productionEventTable = map[Phase][]productionEventSpec{
	PhasePreProduction: {
		{"positive", "Script Polish", "Last-minute script revisions improved dialogue significantly.", 5, 0, 0},
		{"positive", "Location Secured", "Secured perfect filming location under budget.", 3, -50_000, 0},
		{"negative", "Set Construction Delays", "Custom sets taking longer than expected to build.", 0, 100_000, 0},
		{"negative", "Casting Concerns", "Studio executives worried about lead casting choice.", -3, 0, 0},
		{"neutral", "Table Read Success", "Cast chemistry evident during first table read.", 2, 0, 0},
	},
	PhaseFilming: {
		{"positive", "On-Set Magic", "Cast delivers inspired performances during key scenes.", 8, 0, 0},
		{"positive", "Ahead of Schedule", "Director wrapping scenes faster than planned.", 2, -150_000, 0},
		{"negative", "Weather Delays", "Outdoor shoots delayed due to unexpected weather.", 0, 200_000, 1},
		{"negative", "Actor Injury", "Lead actor suffered minor injury during stunt work.", -2, 300_000, 1},
		{"negative", "Creative Differences", "Director and producer clash over creative direction.", -5, 0, 0},
		{"positive", "Improvised Scene", "Actor improvised a scene that tested through the roof.", 6, 0, 0},
		{"negative", "Equipment Failure", "Camera equipment malfunction causes reshoot.", -1, 100_000, 0},
		{"neutral", "Set Visit", "Press set visit generates early buzz.", 0, 0, 0},
	},
	PhasePostProduction: {
		{"positive", "Editor's Cut Shines", "First assembly cut exceeds expectations.", 5, 0, 0},
		{"positive", "Score Elevates", "Composer delivers exceptional soundtrack.", 7, 0, 0},
		{"negative", "VFX Overruns", "Visual effects requiring more work than budgeted.", 0, 500_000, 1},
		{"negative", "Test Screening Concerns", "Focus group responses suggest third act needs work.", -4, 200_000, 1},
		{"positive", "Sound Design Breakthrough", "Sound team creates immersive audio experience.", 4, 0, 0},
		{"negative", "Reshoots Required", "Test audiences confused by plot point - reshoots needed.", 2, 800_000, 1},
	},
	PhaseMarketing: {
		{"positive", "Trailer Goes Viral", "Marketing team creates trailer that captures attention online.", 0, -100_000, 0},
		{"positive", "Festival Buzz", "Early festival screenings generate awards talk.", 5, 0, 0},
		{"negative", "Leaked Footage", "Key scene leaked online dampens trailer impact.", 0, 150_000, 0},
		{"positive", "Star Power", "Lead actor's talk show appearances boost awareness.", 0, -50_000, 0},
		{"negative", "Crowded Release", "Major competitor announced same release date.", 0, 200_000, 0},
	},
}

// rollProductionEvent draws this month's production event for a project,
// or nil most months.
func (e *Engine) rollProductionEvent(m *Movie, month int) *ProductionEvent {
	if e.nextFloat() > e.tun.ProductionEventChance {
		return nil
	}
	table := productionEventTable[m.Phase]
	if len(table) == 0 {
		return nil
	}
	spec := table[e.nextIntn(len(table))]
	return &ProductionEvent{
		ID:           uuid.NewString(),
		Month:        month,
		Phase:        m.Phase,
		Kind:         spec.kind,
		Title:        spec.title,
		Description:  spec.description,
		QualityDelta: spec.qualityDelta,
		BudgetDelta:  spec.budgetDelta,
		DelayMonths:  spec.delayMonths,
	}
}

// advanceProduction moves one project one month forward: maybe an event,
// then phase progress, then phase transition. Released projects are
// untouched.
func (e *Engine) advanceProduction(m *Movie, month int) (event *ProductionEvent, released bool) {
	if m.Released() {
		return nil, false
	}

	if ev := e.rollProductionEvent(m, month); ev != nil {
		event = ev
		m.ProductionLog = append(m.ProductionLog, *ev)
		m.Quality = math.Max(0, math.Min(100, m.Quality+float64(ev.QualityDelta)))
		m.BudgetSpent += ev.BudgetDelta
		if ev.DelayMonths > 0 && m.EstReleaseMonth > 0 {
			m.EstReleaseMonth += ev.DelayMonths
			if m.EstReleaseMonth > 12 {
				m.EstReleaseMonth -= 12
				m.EstReleaseYear++
			}
		}
	}

	gain := phaseRate[m.Phase] + e.between(-5, 5)
	m.PhaseProgress = math.Min(100, m.PhaseProgress+gain)

	if m.PhaseProgress >= 100 {
		m.PhaseProgress = 0
		m.Phase = nextPhase(m.Phase)
		if m.Phase == PhaseReleased {
			released = true
			m.ReleaseMonth = month
		}
	}

	m.Progress = OverallProgress(m.Phase, m.PhaseProgress)
	return event, released
}
