package ui

import (
	"fmt"
	"io"
	"os"
)

// Print functions for consistent output

// Stdout receives regular output; tests swap it for a buffer
var Stdout io.Writer = os.Stdout

// Stderr receives diagnostics
var Stderr io.Writer = os.Stderr

func Error(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Output writes s unchanged
func Output(s string) {
	fmt.Fprint(Stdout, s)
}

// OutputLine writes a formatted line
func OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, format+"\n", args...)
}

// OutputLines writes each line followed by a newline
func OutputLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(Stdout, line)
	}
}

// PathLine renders the "path:" line that introduces one directory's output
func PathLine(path string) string {
	return BoldStyle.Render(path) + ":"
}
