package session

import "errors"

// Decision is the organizer's answer to a confirmation prompt. The zero
// value is Cancelled.
type Decision int

const (
	Cancelled Decision = iota
	Confirmed
)

func (d Decision) Confirmed() bool {
	return d == Confirmed
}

var ErrConfirmationRequired = errors.New("confirmation required")

// Prompt is a title and message shown to the organizer, either as a
// confirmation question or as an informational notice.
type Prompt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ConfirmationError is returned when a destructive operation is called
// without a confirmed Decision. Nothing has been changed.
type ConfirmationError struct {
	Prompt Prompt
}

func (e *ConfirmationError) Error() string {
	return "confirmation required: " + e.Prompt.Title
}

func (e *ConfirmationError) Unwrap() error {
	return ErrConfirmationRequired
}

func requireConfirmation(d Decision, title, message string) error {
	if d.Confirmed() {
		return nil
	}
	return &ConfirmationError{Prompt: Prompt{Title: title, Message: message}}
}

var (
	promptRegenerate = Prompt{
		Title:   "Regenerate Schedule",
		Message: "A schedule already exists. Generating again will replace it. Are you sure?",
	}
	promptReset = Prompt{
		Title:   "Reset Schedule",
		Message: "Are you sure? This will delete the current schedule.",
	}
	promptFinalize = Prompt{
		Title:   "Finalize Session",
		Message: "This will calculate player stats, update their history, and clear the current list. Are you sure?",
	}
	promptRemove = Prompt{
		Title:   "Confirm Delete",
		Message: "Are you sure you want to remove this player?",
	}

	noticeLateAddition = Prompt{
		Title:   "Adding players",
		Message: "The matches have already been generated. Reset the matches for this player to be included.",
	}
)
