package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/nativedev/internal/ui/style"
)

// Header Style.
var headerStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, true, false).
	BorderForeground(style.Slate).
	PaddingRight(1)
