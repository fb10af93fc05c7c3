package analysis

import (
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/aristath/taskrank/internal/config"
	"github.com/aristath/taskrank/internal/task"
)

// UntitledTask is the title given to records without one.
const UntitledTask = "Untitled Task"

// dateLayouts are tried in order when parsing a due date string.
var dateLayouts = []string{
	task.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalize converts a loose record into a Task. It never fails: values
// that cannot be used fall back to the configured defaults.
func Normalize(r task.Record, cfg *config.Config, today time.Time) task.Task {
	t := task.Task{
		ID:           normalizeID(r),
		Title:        strings.TrimSpace(cast.ToString(r["title"])),
		Dependencies: normalizeDependencies(r["dependencies"]),
	}
	if t.Title == "" {
		t.Title = UntitledTask
	}

	if due, ok := ParseDate(r["due_date"]); ok {
		t.DueDate = due
	} else {
		t.DueDate = task.Date(today).AddDate(0, 0, cfg.FarFutureDays)
	}

	t.EstimatedHours = cfg.DefaultEstimatedHours
	if hours, err := task.CoerceFloat(r["estimated_hours"]); err == nil && hours > 0 {
		t.EstimatedHours = hours
	}

	t.Importance = 1
	if importance, err := task.CoerceInt(r["importance"]); err == nil && importance != 0 {
		t.Importance = importance
	}
	t.Importance = min(max(t.Importance, cfg.MinImportance), cfg.MaxImportance)

	return t
}

// ParseDate reads a due date from a string or time value. Only the
// calendar date is kept.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return task.Date(d), true
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return task.Date(parsed), true
			}
		}
	}
	return time.Time{}, false
}

func normalizeID(r task.Record) string {
	for _, key := range []string{"id", "task_id"} {
		if raw, ok := r.Lookup(key); ok {
			if id := strings.TrimSpace(cast.ToString(raw)); id != "" {
				return id
			}
		}
	}
	return ""
}

func normalizeDependencies(v any) []string {
	deps := []string{}
	if v == nil || !task.IsList(v) {
		return deps
	}

	list := reflect.ValueOf(v)
	for i := 0; i < list.Len(); i++ {
		item := list.Index(i).Interface()
		if item == nil {
			continue
		}
		deps = append(deps, cast.ToString(item))
	}
	return deps
}
