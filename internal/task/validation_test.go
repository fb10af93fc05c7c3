package task

import (
	"math"
	"testing"
	"time"
)

func validRecord() Record {
	return Record{
		"id":              "t1",
		"title":           "Write report",
		"due_date":        "2026-10-20",
		"estimated_hours": 2.0,
		"importance":      5,
		"dependencies":    []any{},
	}
}

func issueFields(issues []ValidationIssue) map[string]string {
	fields := make(map[string]string, len(issues))
	for _, issue := range issues {
		fields[issue.Field] = issue.Message
	}
	return fields
}

func TestValidateAcceptsNormalTask(t *testing.T) {
	ok, issues := Validator{}.Validate(validRecord())
	if !ok {
		t.Fatalf("expected valid task, got issues %v", issues)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %d", len(issues))
	}
}

func TestValidateFlagsAllBrokenFields(t *testing.T) {
	broken := Record{
		"title":           " ",
		"due_date":        nil,
		"estimated_hours": 0,
		"importance":      -1,
		"dependencies":    "not-a-list",
	}

	ok, issues := Validator{}.Validate(broken)
	if ok {
		t.Fatal("expected invalid task")
	}

	fields := issueFields(issues)
	for _, field := range []string{"title", "due_date", "estimated_hours", "importance", "dependencies"} {
		if _, found := fields[field]; !found {
			t.Errorf("expected issue on field %q, got %v", field, issues)
		}
	}
}

func TestValidateFieldMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r Record)
		field   string
		message string
	}{
		{
			name:    "importance missing",
			mutate:  func(r Record) { delete(r, "importance") },
			field:   "importance",
			message: "importance missing",
		},
		{
			name:    "importance not an integer",
			mutate:  func(r Record) { r["importance"] = "high" },
			field:   "importance",
			message: "importance must be an integer",
		},
		{
			name:    "importance decimal string",
			mutate:  func(r Record) { r["importance"] = "3.7" },
			field:   "importance",
			message: "importance must be an integer",
		},
		{
			name:    "importance fractional number",
			mutate:  func(r Record) { r["importance"] = 3.7 },
			field:   "importance",
			message: "importance must be an integer",
		},
		{
			name:    "importance NaN",
			mutate:  func(r Record) { r["importance"] = math.NaN() },
			field:   "importance",
			message: "importance must be an integer",
		},
		{
			name:    "importance negative",
			mutate:  func(r Record) { r["importance"] = -3 },
			field:   "importance",
			message: "importance must be positive",
		},
		{
			name:    "hours missing",
			mutate:  func(r Record) { r["estimated_hours"] = nil },
			field:   "estimated_hours",
			message: "estimated hours required",
		},
		{
			name:    "hours non-numeric",
			mutate:  func(r Record) { r["estimated_hours"] = "a while" },
			field:   "estimated_hours",
			message: "estimated hours must be numeric",
		},
		{
			name:    "hours negative",
			mutate:  func(r Record) { r["estimated_hours"] = -2.5 },
			field:   "estimated_hours",
			message: "estimated hours must be positive",
		},
		{
			name:    "blank due date",
			mutate:  func(r Record) { r["due_date"] = "  " },
			field:   "due_date",
			message: "due date required",
		},
		{
			name:    "missing title",
			mutate:  func(r Record) { delete(r, "title") },
			field:   "title",
			message: "title is required",
		},
		{
			name:    "dependencies as map",
			mutate:  func(r Record) { r["dependencies"] = map[string]any{"a": 1} },
			field:   "dependencies",
			message: "dependencies must be a list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(r)

			ok, issues := Validator{}.Validate(r)
			if ok {
				t.Fatal("expected invalid task")
			}
			if len(issues) != 1 {
				t.Fatalf("expected exactly 1 issue, got %v", issues)
			}
			if issues[0].Field != tt.field {
				t.Errorf("field = %q, want %q", issues[0].Field, tt.field)
			}
			if issues[0].Message != tt.message {
				t.Errorf("message = %q, want %q", issues[0].Message, tt.message)
			}
		})
	}
}

func TestValidateCoercesLooseValues(t *testing.T) {
	r := validRecord()
	r["importance"] = "7"
	r["estimated_hours"] = "1.5"
	r["dependencies"] = []string{"a", "b"}

	if ok, issues := (Validator{}).Validate(r); !ok {
		t.Errorf("expected coercible values to pass, got %v", issues)
	}
}

func TestValidateAbsentDependenciesIsFine(t *testing.T) {
	r := validRecord()
	delete(r, "dependencies")

	if ok, issues := (Validator{}).Validate(r); !ok {
		t.Errorf("expected task without dependencies to pass, got %v", issues)
	}
}

func TestTaskRecordRoundTripsThroughValidator(t *testing.T) {
	task := Task{
		ID:             "a",
		Title:          "Ship it",
		DueDate:        time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC),
		EstimatedHours: 3,
		Importance:     8,
		Dependencies:   []string{"b"},
	}

	ok, issues := Validator{}.Validate(task.Record())
	if !ok {
		t.Errorf("expected typed task to validate, got %v", issues)
	}

	var zero Task
	_, issues = Validator{}.Validate(zero.Record())
	fields := issueFields(issues)
	for _, field := range []string{"title", "due_date", "estimated_hours"} {
		if _, found := fields[field]; !found {
			t.Errorf("zero task: expected issue on %q, got %v", field, issues)
		}
	}
}

func TestValidateAcceptsLargeAndZeroPaddedImportance(t *testing.T) {
	for _, v := range []any{"010", "08", "09", " 7 ", 8.0, 1e300, math.Inf(1), "99999999999999999999"} {
		r := validRecord()
		r["importance"] = v
		if ok, issues := (Validator{}).Validate(r); !ok {
			t.Errorf("importance %v: expected valid, got %v", v, issues)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		input   any
		want    int
		wantErr bool
	}{
		{"010", 10, false},
		{"08", 8, false},
		{"-4", -4, false},
		{"3.7", 0, true},
		{"0x10", 0, true},
		{"", 0, true},
		{9.0, 9, false},
		{float32(2), 2, false},
		{3.7, 0, true},
		{1e300, math.MaxInt, false},
		{math.Inf(1), math.MaxInt, false},
		{-1e300, math.MinInt, false},
		{math.Inf(-1), math.MinInt, false},
		{"99999999999999999999", math.MaxInt, false},
		{"-99999999999999999999", math.MinInt, false},
		{math.NaN(), 0, true},
		{int64(6), 6, false},
		{[]any{1}, 0, true},
	}

	for _, tt := range tests {
		got, err := CoerceInt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("CoerceInt(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("CoerceInt(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
