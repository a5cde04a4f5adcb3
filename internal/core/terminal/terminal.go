// Package terminal provides terminal-related utility functions
package terminal

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
)

var getSize = term.GetSize

// Width returns the column count of the terminal on stdout. ok is false when
// stdout is not a terminal and COLUMNS does not name a width, in which case
// callers fall back to one entry per line.
func Width() (width int, ok bool) {
	if w, _, err := getSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w, true
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w, true
	}
	return 0, false
}

// Height returns the row count of the terminal on stdout
func Height() (height int, ok bool) {
	if _, h, err := getSize(os.Stdout.Fd()); err == nil && h > 0 {
		return h, true
	}
	return 0, false
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}
