package task

import (
	"math"
	"time"
)

// DateLayout is the calendar-date format used for due dates on the wire.
const DateLayout = "2006-01-02"

// Task is a single unit of work submitted for prioritisation.
// Values are treated as immutable for the duration of one analysis.
type Task struct {
	ID             string    `json:"id,omitempty"`    // Optional stable identifier
	Title          string    `json:"title"`           // Display string
	DueDate        time.Time `json:"due_date"`        // Calendar date, UTC midnight
	EstimatedHours float64   `json:"estimated_hours"` // Effort estimate
	Importance     int       `json:"importance"`      // Nominally 1-10
	Dependencies   []string  `json:"dependencies"`    // Keys of tasks this one depends on
}

// Key returns the identifier used to index the task in a task map.
// Tasks without an ID fall back to their title.
func (t Task) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Title
}

// Record converts the task into its loose record form.
func (t Task) Record() Record {
	deps := make([]string, len(t.Dependencies))
	copy(deps, t.Dependencies)

	r := Record{
		"title":           t.Title,
		"estimated_hours": t.EstimatedHours,
		"importance":      t.Importance,
		"dependencies":    deps,
	}
	if t.ID != "" {
		r["id"] = t.ID
	}
	if !t.DueDate.IsZero() {
		r["due_date"] = t.DueDate.Format(DateLayout)
	}
	return r
}

// Map indexes tasks by Key. Later tasks overwrite earlier ones that share a key.
func Map(tasks []Task) map[string]Task {
	m := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		m[t.Key()] = t
	}
	return m
}

// Date returns the calendar date of t as UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole calendar days from now until due.
// Negative values mean the due date has passed.
func DaysUntil(due, now time.Time) int {
	diff := Date(due).Sub(Date(now))
	return int(math.Round(diff.Hours() / 24))
}
