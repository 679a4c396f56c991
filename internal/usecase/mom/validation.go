package mom

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or malformed save fields. Value holds the
// offending raw input when a single field failed to parse.
type ValidationError struct {
	Fields []string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Value != "":
		return fmt.Sprintf("invalid %s %q: %s", strings.Join(e.Fields, ","), e.Value, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("invalid %s: %s", strings.Join(e.Fields, ","), e.Reason)
	default:
		return "missing required fields: " + strings.Join(e.Fields, ", ")
	}
}

func missingFields(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func invalidField(field, value, reason string) *ValidationError {
	return &ValidationError{Fields: []string{field}, Value: value, Reason: reason}
}
