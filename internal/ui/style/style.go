// Package style provides shared colors, icons and lipgloss styles for CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// Styles used by the step summary.
var (
	StepName  = lipgloss.NewStyle().Bold(true)
	Completed = lipgloss.NewStyle().Foreground(Green)
	Cached    = lipgloss.NewStyle().Foreground(Slate)
	Failed    = lipgloss.NewStyle().Foreground(Red)
	Skipped   = lipgloss.NewStyle().Foreground(Yellow)
	Heading   = lipgloss.NewStyle().Foreground(Iris).Bold(true)
)
