package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for the shell.
type Mode int

const (
	// ModeNonInteractive is used for scripts and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether the shell talks to a human.
//
// Returns ModeNonInteractive if:
//   - stdin or stdout is not a terminal (piped input, redirected output)
//   - VFSH_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	if os.Getenv("VFSH_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// ColorEnabled resolves a color setting ("auto", "always", "never").
// "auto" colors only in interactive mode.
func ColorEnabled(setting string) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	default:
		return IsInteractive()
	}
}
