package task

import "errors"

var errNotNumeric = errors.New("value is not numeric")

// CoerceInt converts a loosely typed value to an int using the same rules
// as the validator.
func CoerceInt(v any) (int, error) {
	return toInt(v)
}

// CoerceFloat converts a loosely typed value to a float64 using the same
// rules as the validator.
func CoerceFloat(v any) (float64, error) {
	return toFloat(v)
}

// IsList reports whether v is a slice or array.
func IsList(v any) bool {
	return isList(v)
}
