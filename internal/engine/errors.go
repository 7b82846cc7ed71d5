package engine

import "errors"

var ErrNotFound = errors.New("not found")

// ValidationError reports a precondition failure before a schedule is built.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidOperationError is a rejected user action. Title and Message are
// shown to the organizer as an alert.
type InvalidOperationError struct {
	Title   string
	Message string
}

func (e *InvalidOperationError) Error() string {
	return e.Title + ": " + e.Message
}

func invalidOperation(title, message string) error {
	return &InvalidOperationError{Title: title, Message: message}
}
