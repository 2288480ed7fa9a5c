// Package detector chooses between the interactive and the line-based
// status display.
package detector

import (
	"os"
	"strings"

	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the dev server.
type OutputMode int

const (
	// ModeAuto picks a mode from the environment.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive TUI with key bindings.
	ModeTUI
	// ModeLinear forces plain status lines, suitable for CI and pipes.
	ModeLinear
)

func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// Environment is what detection looks at.
type Environment struct {
	StdoutIsTTY bool
	StdinIsTTY  bool
	CI          string
}

// CurrentEnvironment inspects the running process.
func CurrentEnvironment() Environment {
	return Environment{
		StdoutIsTTY: term.IsTerminal(int(os.Stdout.Fd())),
		StdinIsTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		CI:          os.Getenv("CI"),
	}
}

// Detect returns ModeTUI only when both ends of the terminal are interactive
// and no CI system is detected. Key bindings need stdin.
func (e Environment) Detect() OutputMode {
	isCI := e.CI == "true" || e.CI == "1"
	if isCI || !e.StdoutIsTTY || !e.StdinIsTTY {
		return ModeLinear
	}
	return ModeTUI
}

// ParseMode parses the --output-mode flag. Accepted values are "auto", "tui",
// "linear" and its alias "ci"; empty means auto.
func ParseMode(flag string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", "auto":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(zerr.New("unknown output mode"), domain.ErrConfigInvalid.Error()), "output_mode", flag)
	}
}

// Resolve applies a user choice on top of the detected mode.
func Resolve(detected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return detected
	}
	return requested
}
