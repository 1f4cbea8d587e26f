package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrDeclined is returned when the user gives up after a failed submit.
	ErrDeclined = errors.New("prompt: submission abandoned")
)
