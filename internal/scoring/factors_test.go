package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/aristath/taskrank/internal/task"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func dueIn(days int) task.Task {
	return task.Task{ID: "t", Title: "t", DueDate: today.AddDate(0, 0, days), EstimatedHours: 1, Importance: 5}
}

func TestUrgencyModes(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		mode UrgencyMode
		days int
		want float64
	}{
		{"linear due today", ModeLinear, 0, 1},
		{"linear due tomorrow", ModeLinear, 1, 1},
		{"linear in four days", ModeLinear, 4, 0.25},
		{"exponential due today", ModeExponential, 0, 1},
		{"exponential in two days", ModeExponential, 2, math.Exp(-2)},
		{"threshold inside window", ModeThreshold, 2, 2},
		{"threshold outside window", ModeThreshold, 3, 0.5},
		{"unknown mode", UrgencyMode("lunar"), 3, 0},
		{"overdue ignores mode", UrgencyMode("lunar"), -3, 8},
		{"overdue one day", ModeLinear, -1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			c.UrgencyMode = tt.mode
			got := Urgency(dueIn(tt.days), c, today)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Urgency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUrgencyMonotonic(t *testing.T) {
	for _, mode := range []UrgencyMode{ModeLinear, ModeExponential} {
		t.Run(string(mode), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.UrgencyMode = mode

			prev := math.Inf(1)
			for days := 0; days <= 30; days++ {
				u := Urgency(dueIn(days), cfg, today)
				if u > prev {
					t.Fatalf("urgency rose from %v to %v at %d days", prev, u, days)
				}
				prev = u
			}
		})
	}
}

func TestOverdueUrgencyDominates(t *testing.T) {
	for _, mode := range []UrgencyMode{ModeLinear, ModeExponential, ModeThreshold} {
		t.Run(string(mode), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.UrgencyMode = mode

			ceiling := 0.0
			for days := 0; days <= 30; days++ {
				ceiling = math.Max(ceiling, Urgency(dueIn(days), cfg, today))
			}

			prev := ceiling
			for overdue := 1; overdue <= 30; overdue++ {
				u := Urgency(dueIn(-overdue), cfg, today)
				if u <= prev {
					t.Fatalf("overdue by %d: urgency %v not above %v", overdue, u, prev)
				}
				prev = u
			}
		})
	}
}

func TestImportanceAndEffortOrdering(t *testing.T) {
	for i := 0; i < 10; i++ {
		lo := task.Task{Importance: i}
		hi := task.Task{Importance: i + 1}
		if Importance(hi) <= Importance(lo) {
			t.Errorf("Importance(%d) <= Importance(%d)", i+1, i)
		}
	}
	if got := Importance(task.Task{Importance: 10}); got != 1 {
		t.Errorf("Importance(10) = %v, want 1", got)
	}

	hours := []float64{0.5, 1, 2, 4, 8, 40}
	for i := 1; i < len(hours); i++ {
		quick := Effort(task.Task{EstimatedHours: hours[i-1]})
		slow := Effort(task.Task{EstimatedHours: hours[i]})
		if slow >= quick {
			t.Errorf("Effort(%v) = %v not below Effort(%v) = %v", hours[i], slow, hours[i-1], quick)
		}
	}
	if got := Effort(task.Task{EstimatedHours: -3}); got != 1 {
		t.Errorf("Effort(-3) = %v, want 1", got)
	}
}

func TestDependencyScoreCountsDependents(t *testing.T) {
	taskMap := map[string]task.Task{
		"core": {ID: "core"},
		"a":    {ID: "a", Dependencies: []string{"core"}},
		"b":    {ID: "b", Dependencies: []string{"x", "core"}},
		"c":    {ID: "c", Dependencies: []string{"core", "core"}},
		"d":    {ID: "d", Dependencies: []string{"a"}},
	}

	if got := DependencyScore(taskMap["core"], taskMap); got != 3 {
		t.Errorf("DependencyScore(core) = %d, want 3", got)
	}
	if got := DependencyScore(taskMap["a"], taskMap); got != 1 {
		t.Errorf("DependencyScore(a) = %d, want 1", got)
	}
	if got := DependencyScore(taskMap["d"], taskMap); got != 0 {
		t.Errorf("DependencyScore(d) = %d, want 0", got)
	}

	fanIn := FanIn(taskMap)
	for key, tk := range taskMap {
		if fanIn[key] != DependencyScore(tk, taskMap) {
			t.Errorf("FanIn[%s] = %d, DependencyScore = %d", key, fanIn[key], DependencyScore(tk, taskMap))
		}
	}
}

func TestDependencyScoreIgnoresSelfReference(t *testing.T) {
	taskMap := map[string]task.Task{
		"a": {ID: "a", Dependencies: []string{"a"}},
	}
	if got := DependencyScore(taskMap["a"], taskMap); got != 0 {
		t.Errorf("DependencyScore(a) = %d, want 0", got)
	}
	if got := FanIn(taskMap)["a"]; got != 0 {
		t.Errorf("FanIn[a] = %d, want 0", got)
	}
}
