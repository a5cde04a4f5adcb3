// Package ui provides UI styling and output functions for the CLI.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/aki/eb/internal/core/listing"
)

var (
	// ErrorStyle is the style for error messages
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// WarningStyle is the style for warning messages
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))

	// DimStyle is the style for tree connectors
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// BoldStyle is the style for bold text
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// HeaderStyle is the style for the long view's column titles
	HeaderStyle = lipgloss.NewStyle().Underline(true)

	// DirStyle is the style for directory names
	DirStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// ExecStyle is the style for executable file names
	ExecStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	// SymlinkStyle is the style for symbolic link names
	SymlinkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	// ErrorIcon is the icon for error messages
	ErrorIcon = "❌"

	// WarningIcon is the icon for warning messages
	WarningIcon = "⚠️"
)

// ColorMode selects when output is colored
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode name
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode: %s (must be auto, always or never)", s)
	}
}

// SetColorMode sets the color profile every style renders with. Auto follows
// stdout and the NO_COLOR / CLICOLOR_FORCE environment.
func SetColorMode(mode ColorMode) {
	switch mode {
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
	}
}

// ColorEnabled reports whether styles currently emit escape codes
func ColorEnabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

// StyleName renders an entry's display name by kind. A tree prefix in front
// of the name is dimmed.
func StyleName(e listing.Entry) string {
	prefix, name := "", e.DisplayName()
	if e.Display != "" && strings.HasSuffix(name, e.Name) {
		prefix, name = strings.TrimSuffix(name, e.Name), e.Name
	}
	if prefix != "" {
		prefix = DimStyle.Render(prefix)
	}

	switch {
	case e.Symlink:
		name = SymlinkStyle.Render(name)
	case e.IsDir():
		name = DirStyle.Render(name)
	case e.IsExecutable():
		name = ExecStyle.Render(name)
	}
	return prefix + name
}
