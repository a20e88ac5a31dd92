package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsSane(t *testing.T) {
	tun := Defaults()
	if tun.ProductionEventChance <= 0 || tun.ProductionEventChance > 1 {
		t.Fatalf("event chance out of range: %v", tun.ProductionEventChance)
	}
	if tun.RivalMinActive > tun.RivalMaxActive {
		t.Fatalf("rival band inverted: %d > %d", tun.RivalMinActive, tun.RivalMaxActive)
	}
	if tun.ScriptBaseCostMin > tun.ScriptBaseCostMax {
		t.Fatalf("script cost band inverted")
	}
	if tun.CompetitionFloor <= 0 || tun.CompetitionFloor > 1 {
		t.Fatalf("competition floor out of range: %v", tun.CompetitionFloor)
	}
	if tun.AwardNominees <= 0 || tun.AwardMinFilms <= 0 {
		t.Fatalf("award knobs unset")
	}
}

func TestLoadOverridesSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := "rival_release_chance: 0.25\nmarket_script_count: 5\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tun, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tun.RivalReleaseChance != 0.25 {
		t.Fatalf("override not applied: %v", tun.RivalReleaseChance)
	}
	if tun.MarketScriptCount != 5 {
		t.Fatalf("override not applied: %d", tun.MarketScriptCount)
	}
	// Untouched keys keep their defaults.
	if tun.ProductionEventChance != Defaults().ProductionEventChance {
		t.Fatalf("default lost: %v", tun.ProductionEventChance)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rival_release_chance: [oops"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
