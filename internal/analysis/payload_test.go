package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTasks int
		wantCfg   bool
		wantErr   bool
	}{
		{"json list", `[{"id":"a","title":"A"},{"id":"b"}]`, 2, false, false},
		{"json object", `{"tasks":[{"id":"a"}],"config":{"weight_urgency":2}}`, 1, true, false},
		{"yaml object", "tasks:\n  - id: a\n    due_date: 2026-11-01\nconfig:\n  urgency_mode: threshold\n", 1, true, false},
		{"yaml list", "- title: one\n- title: two\n- title: three\n", 3, false, false},
		{"tasks not a list", `{"tasks":{}}`, 0, false, true},
		{"task not an object", `["a"]`, 0, false, true},
		{"config not an object", `{"tasks":[],"config":[1]}`, 0, false, true},
		{"scalar document", `42`, 0, false, true},
		{"broken json", `{"tasks":[`, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePayload([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPayload) {
					t.Fatalf("expected ErrInvalidPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(p.Tasks) != tt.wantTasks {
				t.Errorf("tasks = %d, want %d", len(p.Tasks), tt.wantTasks)
			}
			if (p.Config != nil) != tt.wantCfg {
				t.Errorf("config = %v, want present=%v", p.Config, tt.wantCfg)
			}
		})
	}
}

func TestReadPayloadYAMLDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	content := "- id: a\n  title: A\n  due_date: 2026-10-21\n  estimated_hours: 2\n  importance: 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := ReadPayload(path)
	if err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}

	due, ok := ParseDate(p.Tasks[0]["due_date"])
	if !ok || !due.Equal(today.AddDate(0, 0, 2)) {
		t.Errorf("due date = %v (%v), want 2026-10-21", due, ok)
	}
}

func TestReadPayloadMissingFile(t *testing.T) {
	if _, err := ReadPayload(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
