// Package style holds the colors, icons and lipgloss styles shared by every
// presentation adapter.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Mist   = lipgloss.Color("#F6F7FB")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Text styles of the status screen.
var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Label    = lipgloss.NewStyle().Foreground(Slate)
	Building = lipgloss.NewStyle().Bold(true).Foreground(Yellow)
	Failed   = lipgloss.NewStyle().Bold(true).Foreground(Red)
	Ready    = lipgloss.NewStyle().Bold(true).Foreground(Green)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Muted    = lipgloss.NewStyle().Foreground(Slate)
	Key      = lipgloss.NewStyle().Bold(true).Foreground(Mist)
)
