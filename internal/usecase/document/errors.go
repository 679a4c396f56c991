package document

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateMissing is returned when the template file does not exist
	ErrTemplateMissing = errors.New("template not found")

	// ErrConverterNotFound is returned when no conversion executable responds
	ErrConverterNotFound = errors.New("document converter not found")
)

// ConversionError reports a failed PDF conversion
type ConversionError struct {
	Command string
	Output  string
	Err     error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("pdf conversion with %s failed", e.Command)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Output != "" {
		msg += " (" + e.Output + ")"
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
