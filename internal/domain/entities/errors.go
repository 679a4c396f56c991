package entities

import "errors"

// Domain errors
var (
	ErrMeetingRecordNotFound = errors.New("meeting record not found")
	ErrIncompleteRecord      = errors.New("meeting record is missing required fields")
)
