package scoring

import (
	"fmt"
	"strings"

	"github.com/aristath/taskrank/internal/task"
)

// Breakdown records each factor behind a task's score. Raw factor values
// and their weighted contributions are both kept so callers can explain
// the ranking.
type Breakdown struct {
	DaysUntilDue int     `json:"days_until_due"`
	Importance   int     `json:"importance"`
	Hours        float64 `json:"estimated_hours"`
	Dependents   int     `json:"dependents"`

	Urgency         float64 `json:"urgency"`
	ImportanceScore float64 `json:"importance_score"`
	EffortScore     float64 `json:"effort_score"`
	DependencyScore float64 `json:"dependency_score"`

	Multiplier float64 `json:"multiplier,omitempty"` // Quadrant weight, 0 when none was applied
	Total      float64 `json:"total"`
}

// Breakdown computes the per-factor contributions for t.
// Total always equals ScoreTask(t, taskMap) for the same clock.
func (e *Engine) Breakdown(t task.Task, taskMap map[string]task.Task) Breakdown {
	today := e.Today()
	dependents := DependencyScore(t, taskMap)

	b := Breakdown{
		DaysUntilDue:    task.DaysUntil(t.DueDate, today),
		Importance:      t.Importance,
		Hours:           t.EstimatedHours,
		Dependents:      dependents,
		Urgency:         e.cfg.WeightUrgency * Urgency(t, e.cfg, today),
		ImportanceScore: e.cfg.WeightImportance * Importance(t),
		EffortScore:     e.cfg.WeightEffort * Effort(t),
		DependencyScore: e.cfg.WeightDependency * float64(dependents),
	}
	b.Total = b.Urgency + b.ImportanceScore + b.EffortScore + b.DependencyScore
	return b
}

// Overdue reports whether the task was due before today.
func (b Breakdown) Overdue() bool {
	return b.DaysUntilDue < 0
}

// Scale applies a quadrant multiplier to the total.
func (b Breakdown) Scale(multiplier float64) Breakdown {
	b.Multiplier = multiplier
	b.Total *= multiplier
	return b
}

// Explain renders a one-line human explanation of the breakdown.
func (b Breakdown) Explain() string {
	parts := make([]string, 0, 4)

	switch {
	case b.DaysUntilDue < 0:
		parts = append(parts, fmt.Sprintf("overdue by %s", plural(-b.DaysUntilDue, "day")))
	case b.DaysUntilDue == 0:
		parts = append(parts, "due today")
	default:
		parts = append(parts, fmt.Sprintf("due in %s", plural(b.DaysUntilDue, "day")))
	}

	parts = append(parts, fmt.Sprintf("importance %d", b.Importance))
	parts = append(parts, fmt.Sprintf("%gh estimated", b.Hours))

	if b.Dependents > 0 {
		parts = append(parts, fmt.Sprintf("blocks %s", plural(b.Dependents, "task")))
	}

	if b.Multiplier != 0 && b.Multiplier != 1 {
		parts = append(parts, fmt.Sprintf("weighted x%g", b.Multiplier))
	}

	return fmt.Sprintf("%s (score %.2f)", strings.Join(parts, ", "), b.Total)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
