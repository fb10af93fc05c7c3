package analysis

import (
	"github.com/aristath/taskrank/internal/dependency"
	"github.com/aristath/taskrank/internal/scoring"
	"github.com/aristath/taskrank/internal/task"
)

// ScoredTask is a normalized task annotated with its score and status.
type ScoredTask struct {
	ID             string                 `json:"id"`
	Key            string                 `json:"key"`
	Title          string                 `json:"title"`
	DueDate        string                 `json:"due_date"`
	EstimatedHours float64                `json:"estimated_hours"`
	Importance     int                    `json:"importance"`
	Dependencies   []string               `json:"dependencies"`
	Score          float64                `json:"score"`
	Explanation    string                 `json:"explanation"`
	Breakdown      scoring.Breakdown      `json:"breakdown"`
	Quadrant       scoring.Quadrant       `json:"quadrant,omitempty"` // Set when Eisenhower weighting is enabled
	Blocked        bool                   `json:"blocked"`
	Issues         []task.ValidationIssue `json:"issues,omitempty"`
}

// Warning groups the validation issues of one submitted record.
// ID is the record's id, or idx_N for records without one.
type Warning struct {
	ID     string                 `json:"id"`
	Issues []task.ValidationIssue `json:"issues"`
}

// Report is the outcome of one analysis run.
type Report struct {
	RunID          string             `json:"run_id"`
	PriorityList   []ScoredTask       `json:"priority_list"`   // Unblocked tasks, highest score first
	BlockedTasks   []ScoredTask       `json:"blocked_tasks"`   // Tasks on a dependency cycle
	NeedsAttention []ScoredTask       `json:"needs_attention"` // Tasks with validation issues
	Warnings       []Warning          `json:"warnings"`
	Cycles         []dependency.Cycle `json:"cycles"`
	WorkOrder      []string           `json:"work_order"` // Unblocked keys, dependencies first
	ConfigUsed     map[string]any     `json:"config_used"`
}

// Ranked returns every scored task, blocked or not, highest score first.
func (r *Report) Ranked() []ScoredTask {
	all := make([]ScoredTask, 0, len(r.PriorityList)+len(r.BlockedTasks))
	all = append(all, r.PriorityList...)
	all = append(all, r.BlockedTasks...)
	sortByScore(all)
	return all
}
