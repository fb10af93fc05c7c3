package scoring

import (
	"math"
	"time"

	"github.com/aristath/taskrank/internal/task"
)

// ImportanceScale is the nominal top of the importance range.
const ImportanceScale = 10.0

// Urgency scores how pressing a task is given today's date.
// Overdue tasks grow without bound; unknown modes score zero.
func Urgency(t task.Task, cfg Config, today time.Time) float64 {
	return urgencyForDelta(task.DaysUntil(t.DueDate, today), cfg)
}

func urgencyForDelta(delta int, cfg Config) float64 {
	if delta < 0 {
		overdueDays := float64(-delta)
		return cfg.OverdueBase + overdueDays*cfg.OverdueGrowth
	}

	switch cfg.UrgencyMode {
	case ModeLinear:
		return 1 / float64(max(delta, 1))
	case ModeExponential:
		return math.Exp(-float64(delta))
	case ModeThreshold:
		if delta <= cfg.UrgencyThreshold {
			return cfg.HighUrgencyValue
		}
		return cfg.LowUrgencyValue
	}
	return 0
}

// Importance maps the importance rating linearly onto [0, 1] for the
// nominal 0-10 range. Ordering by rating is preserved outside that range.
func Importance(t task.Task) float64 {
	return float64(t.Importance) / ImportanceScale
}

// Effort favours quick tasks: 1 / (1 + hours), in (0, 1].
// Non-positive estimates score as zero-hour tasks.
func Effort(t task.Task) float64 {
	return 1 / (1 + math.Max(t.EstimatedHours, 0))
}

// DependencyScore counts the other tasks in taskMap that depend on t.
// Each dependent is counted once even if it lists t repeatedly.
func DependencyScore(t task.Task, taskMap map[string]task.Task) int {
	key := t.Key()
	count := 0
	for otherKey, other := range taskMap {
		if otherKey == key {
			continue
		}
		for _, dep := range other.Dependencies {
			if dep == key {
				count++
				break
			}
		}
	}
	return count
}

// FanIn precomputes DependencyScore for every key referenced in taskMap.
func FanIn(taskMap map[string]task.Task) map[string]int {
	fanIn := make(map[string]int, len(taskMap))
	for key, t := range taskMap {
		seen := make(map[string]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if dep == key || seen[dep] {
				continue
			}
			seen[dep] = true
			fanIn[dep]++
		}
	}
	return fanIn
}
