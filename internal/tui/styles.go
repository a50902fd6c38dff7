package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorError     = lipgloss.Color("196") // Red
)

// Palette holds render functions for the shell's decorated text.
type Palette struct {
	User   func(string) string
	Error  func(string) string
	Branch func(string) string
}

func plain(s string) string { return s }

// PlainPalette leaves all text unchanged.
func PlainPalette() Palette {
	return Palette{User: plain, Error: plain, Branch: plain}
}

// NewPalette returns lipgloss-backed render functions for w. When enabled is
// false the palette is plain. Colors are forced on when enabled, so the
// caller decides whether w is a terminal.
func NewPalette(w io.Writer, enabled bool) Palette {
	if !enabled {
		return PlainPalette()
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	userStyle := r.NewStyle().Bold(true).Foreground(ColorPrimary)
	errorStyle := r.NewStyle().Foreground(ColorError)
	branchStyle := r.NewStyle().Foreground(ColorSecondary)

	return Palette{
		User:   func(s string) string { return userStyle.Render(s) },
		Error:  func(s string) string { return errorStyle.Render(s) },
		Branch: func(s string) string { return branchStyle.Render(s) },
	}
}
