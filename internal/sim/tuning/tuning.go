// Package tuning holds the balance knobs for the simulation engine.
// Defaults match the shipped game; an optional yaml file overrides them.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProductionEventChance float64 `yaml:"production_event_chance"`

	RivalMinActive     int     `yaml:"rival_min_active"`
	RivalMaxActive     int     `yaml:"rival_max_active"`
	RivalReleaseChance float64 `yaml:"rival_release_chance"`

	CompetitionPenalty float64 `yaml:"competition_penalty"`
	CompetitionFloor   float64 `yaml:"competition_floor"`

	MarketScriptCount int   `yaml:"market_script_count"`
	ScriptBaseCostMin int64 `yaml:"script_base_cost_min"`
	ScriptBaseCostMax int64 `yaml:"script_base_cost_max"`

	RivalMarketingMin  int64 `yaml:"rival_marketing_min"`
	RivalMarketingMax  int64 `yaml:"rival_marketing_max"`
	RivalProductionMin int64 `yaml:"rival_production_min"`
	RivalProductionMax int64 `yaml:"rival_production_max"`

	AwardMinQuality int `yaml:"award_min_quality"`
	AwardMinFilms   int `yaml:"award_min_films"`
	AwardNominees   int `yaml:"award_nominees"`
}

func Defaults() Tuning {
	return Tuning{
		ProductionEventChance: 0.30,
		RivalMinActive:        3,
		RivalMaxActive:        6,
		RivalReleaseChance:    0.60,
		CompetitionPenalty:    0.15,
		CompetitionFloor:      0.40,
		MarketScriptCount:     3,
		ScriptBaseCostMin:     150_000,
		ScriptBaseCostMax:     1_000_000,
		RivalMarketingMin:     1_000_000,
		RivalMarketingMax:     6_000_000,
		RivalProductionMin:    2_000_000,
		RivalProductionMax:    12_000_000,
		AwardMinQuality:       50,
		AwardMinFilms:         3,
		AwardNominees:         5,
	}
}

// Load reads a yaml override file on top of Defaults. Keys left unset in the
// file keep their default values.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}
