// Package cli renders user-facing command output.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor   = lipgloss.Color("#A40000")
	accentColor    = lipgloss.Color("#FFA500")
	mutedColor     = lipgloss.Color("#888888")
	highlightColor = lipgloss.Color("#FFFF00")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)
)

// PrintVersion prints version information
func PrintVersion(w io.Writer, name, version string) {
	fmt.Fprintf(w, "%s %s %s\n", TitleStyle.Render(name), KeyStyle.Render("version"), ValueStyle.Render(version))
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", WarningStyle.Render("Warning:"), message)
}

// PrintInfo prints a key/value line
func PrintInfo(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}
