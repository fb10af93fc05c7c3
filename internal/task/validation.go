package task

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ValidationIssue describes one problem found on a task field.
// Issues are advisory: a task with issues is still analysed.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator checks the minimal structural invariants of a task record.
// The zero value is ready to use.
type Validator struct{}

// Validate inspects every field independently and returns all issues found.
// It never panics on malformed values; coercion failures become issues.
func (Validator) Validate(r Record) (bool, []ValidationIssue) {
	issues := []ValidationIssue{}

	if title, _ := r.Lookup("title"); strings.TrimSpace(cast.ToString(title)) == "" {
		issues = append(issues, ValidationIssue{Field: "title", Message: "title is required"})
	}

	if raw, ok := r.Lookup("importance"); !ok {
		issues = append(issues, ValidationIssue{Field: "importance", Message: "importance missing"})
	} else if value, err := toInt(raw); err != nil {
		issues = append(issues, ValidationIssue{Field: "importance", Message: "importance must be an integer"})
	} else if value < 0 {
		issues = append(issues, ValidationIssue{Field: "importance", Message: "importance must be positive"})
	}

	if raw, ok := r.Lookup("due_date"); !ok || isBlank(raw) {
		issues = append(issues, ValidationIssue{Field: "due_date", Message: "due date required"})
	}

	if raw, ok := r.Lookup("estimated_hours"); !ok {
		issues = append(issues, ValidationIssue{Field: "estimated_hours", Message: "estimated hours required"})
	} else if hours, err := toFloat(raw); err != nil {
		issues = append(issues, ValidationIssue{Field: "estimated_hours", Message: "estimated hours must be numeric"})
	} else if hours <= 0 {
		issues = append(issues, ValidationIssue{Field: "estimated_hours", Message: "estimated hours must be positive"})
	}

	if raw, ok := r.Lookup("dependencies"); ok && !isList(raw) {
		issues = append(issues, ValidationIssue{Field: "dependencies", Message: "dependencies must be a list"})
	}

	return len(issues) == 0, issues
}

// toInt coerces v to an int. Strings are read in base 10 and must hold a
// whole number. Floats must be integral; values beyond the int range
// saturate at math.MaxInt or math.MinInt. Blank strings, NaN and
// non-scalar values are errors.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, errNotNumeric
		}
		i, err := strconv.Atoi(s)
		if errors.Is(err, strconv.ErrRange) {
			return saturate(!strings.HasPrefix(s, "-")), nil
		}
		if err != nil {
			return 0, errNotNumeric
		}
		return i, nil
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	}
	return cast.ToIntE(v)
}

func floatToInt(f float64) (int, error) {
	switch {
	case math.IsNaN(f):
		return 0, errNotNumeric
	case f >= math.MaxInt:
		return math.MaxInt, nil
	case f <= math.MinInt:
		return math.MinInt, nil
	case f != math.Trunc(f):
		return 0, errNotNumeric
	}
	return int(f), nil
}

func saturate(positive bool) int {
	if positive {
		return math.MaxInt
	}
	return math.MinInt
}

// toFloat coerces v to a float64. NaN is rejected.
func toFloat(v any) (float64, error) {
	if isBlank(v) {
		return 0, errNotNumeric
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	return f, nil
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func isList(v any) bool {
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
