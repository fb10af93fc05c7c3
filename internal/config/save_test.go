package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveCreatesParentDir(t *testing.T) {
	// Parent directories are created on demand
	path := filepath.Join(t.TempDir(), "nested", "deep", "config.json")

	if err := Save(Default(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Config file was not created: %s", path)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := Default()
			cfg.WeightUrgency = 2.25
			cfg.UrgencyMode = "exponential"
			cfg.MinImportance = 2
			cfg.QMultipliers["Q3_IMPORTANT"] = 1.2

			if err := Save(cfg, path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := Load("", path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if loaded.WeightUrgency != 2.25 {
				t.Errorf("weight_urgency = %v, want 2.25", loaded.WeightUrgency)
			}
			if loaded.UrgencyMode != "exponential" {
				t.Errorf("urgency_mode = %q, want exponential", loaded.UrgencyMode)
			}
			if loaded.MinImportance != 2 {
				t.Errorf("min_importance = %d, want 2", loaded.MinImportance)
			}
			if loaded.QMultipliers["Q3_IMPORTANT"] != 1.2 {
				t.Errorf("Q3_IMPORTANT = %v, want 1.2", loaded.QMultipliers["Q3_IMPORTANT"])
			}
			if loaded.QMultipliers["Q1_TOP"] != 1.3 {
				t.Errorf("Q1_TOP = %v, want 1.3", loaded.QMultipliers["Q1_TOP"])
			}
		})
	}
}
