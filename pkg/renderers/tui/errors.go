package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrQuit is returned by the navigator when the user chooses to leave.
	ErrQuit = errors.New("tui: quit")
	// ErrNoChoices is returned when a page offers nothing to follow and there
	// is no history to go back to.
	ErrNoChoices = errors.New("tui: nothing to follow")
)
