package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrQuit is returned by Session.Run when the respondent chose Quit.
	ErrQuit = errors.New("tui: quit")
)
