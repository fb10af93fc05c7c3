package config

import (
	"reflect"
	"testing"

	"github.com/aristath/taskrank/internal/scoring"
)

func TestOverrideRoundTrip(t *testing.T) {
	merged := Merge(map[string]any{"weight_urgency": 2.5, "urgency_mode": "threshold"})

	cfg, err := Build(merged)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := scoring.DefaultConfig()
	want.WeightUrgency = 2.5
	want.UrgencyMode = scoring.ModeThreshold

	if got := cfg.Scoring(); got != want {
		t.Errorf("Scoring() = %+v, want %+v", got, want)
	}

	defaults := Default()
	cfg.Config = defaults.Config
	if !reflect.DeepEqual(cfg, defaults) {
		t.Errorf("application settings changed: %+v", cfg)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Default().ToMap()
	overrides := map[string]any{"q_multipliers": map[string]any{"q2_urgent": 3.0}}

	merged := MergeMaps(base, overrides)

	table := merged["q_multipliers"].(map[string]any)
	if table["Q2_URGENT"] != 3.0 {
		t.Errorf("Q2_URGENT = %v, want 3", table["Q2_URGENT"])
	}
	if table["Q1_TOP"] != 1.3 {
		t.Errorf("Q1_TOP = %v, want 1.3", table["Q1_TOP"])
	}

	baseTable := base["q_multipliers"].(map[string]any)
	if baseTable["Q2_URGENT"] != 1.1 {
		t.Errorf("base table mutated: %v", baseTable)
	}
	if _, ok := overrides["q_multipliers"].(map[string]any)["Q2_URGENT"]; ok {
		t.Error("overrides mutated")
	}
}

func TestMergeKeepsUnknownKeys(t *testing.T) {
	merged := Merge(map[string]any{"theme": "dark"})
	if merged["theme"] != "dark" {
		t.Errorf("unknown key dropped from merged map")
	}
	if _, err := Build(merged); err != nil {
		t.Errorf("unknown keys should be ignored by Build: %v", err)
	}
}

func TestBuildWeakTyping(t *testing.T) {
	cfg, err := Build(map[string]any{
		"weight_importance": "2",
		"max_importance":    "7",
		"enable_eisenhower": "true",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.WeightImportance != 2 || cfg.MaxImportance != 7 || !cfg.EnableEisenhower {
		t.Errorf("weakly typed values not decoded: %+v", cfg)
	}
}

func TestBuildRejectsBadValue(t *testing.T) {
	if _, err := Build(map[string]any{"weight_urgency": "abc"}); err == nil {
		t.Fatal("expected error for non-numeric weight")
	}
}

func TestApply(t *testing.T) {
	base := Default()
	base.WeightDependency = 3

	cfg, err := base.Apply(map[string]any{"WEIGHT_EFFORT": 0})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.WeightDependency != 3 {
		t.Errorf("weight_dependency = %v, want base value 3", cfg.WeightDependency)
	}
	if cfg.WeightEffort != 0 {
		t.Errorf("weight_effort = %v, want 0", cfg.WeightEffort)
	}

	same, err := base.Apply(nil)
	if err != nil {
		t.Fatal(err)
	}
	same.QMultipliers["Q1_TOP"] = 9
	if base.QMultipliers["Q1_TOP"] != 1.3 {
		t.Error("Apply(nil) shared the multiplier table")
	}
}
