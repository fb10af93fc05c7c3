package analysis

import (
	"strings"

	"github.com/aristath/taskrank/internal/task"
)

// DefaultTopN is the number of suggestions returned when none is requested.
const DefaultTopN = 3

// Suggestion status values.
const (
	StatusOK      = "ok"
	StatusBlocked = "blocked"
)

// Suggestion is a task recommended for today with a short reason.
type Suggestion struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Score          float64 `json:"score"`
	Reason         string  `json:"reason"`
	DueDate        string  `json:"due_date"`
	Importance     int     `json:"importance"`
	EstimatedHours float64 `json:"estimated_hours"`
	Status         string  `json:"status"`
}

// Suggest analyzes records and returns the top n unblocked tasks.
// n <= 0 means DefaultTopN.
func (a *Analyzer) Suggest(records []task.Record, overrides map[string]any, n int) ([]Suggestion, error) {
	report, err := a.Analyze(records, overrides)
	if err != nil {
		return nil, err
	}
	return Suggestions(report, n), nil
}

// Suggestions picks the top n entries of a report's priority list.
func Suggestions(report *Report, n int) []Suggestion {
	if n <= 0 {
		n = DefaultTopN
	}

	suggestions := make([]Suggestion, 0, min(n, len(report.PriorityList)))
	for _, st := range report.PriorityList {
		if len(suggestions) >= n {
			break
		}

		status := StatusOK
		if st.Blocked {
			status = StatusBlocked
		}
		suggestions = append(suggestions, Suggestion{
			ID:             st.ID,
			Title:          st.Title,
			Score:          st.Score,
			Reason:         Reason(st),
			DueDate:        st.DueDate,
			Importance:     st.Importance,
			EstimatedHours: st.EstimatedHours,
			Status:         status,
		})
	}
	return suggestions
}

// Reason explains in a few words why a task is worth doing now.
func Reason(st ScoredTask) string {
	if st.Blocked {
		return "Task blocked by circular dependency"
	}

	var reasons []string
	if strings.Contains(st.Explanation, "overdue") {
		reasons = append(reasons, "past due")
	}
	if st.Importance >= 8 {
		reasons = append(reasons, "high impact")
	}
	if st.EstimatedHours <= 2 {
		reasons = append(reasons, "quick win")
	}
	if len(reasons) == 0 {
		return "balanced priority"
	}
	return strings.Join(reasons, ", ")
}
