// Package display renders styled plain-text output for the non-interactive
// commands.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// detects whether stdout is a terminal. Colors are automatically disabled when
// output is piped or redirected, or when NO_COLOR is set.
package display

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette shared with the interactive view.
var (
	ColorEmerald = lipgloss.Color("36")
	ColorGold    = lipgloss.Color("178")
	ColorSky     = lipgloss.Color("74")
	ColorGray    = lipgloss.Color("245")
)

var renderer = lipgloss.NewRenderer(os.Stdout)

// enabled reports whether color output is active.
// It is set once at init time.
var enabled bool

func init() {
	SetEnabled(shouldEnable())
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return isTerminal(os.Stdout)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	enabled = b
	if b && renderer.ColorProfile() == termenv.Ascii {
		renderer.SetColorProfile(termenv.ANSI256)
	}
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

// render applies a style, only when colors are enabled.
func render(style lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return style.Render(text)
}

func newStyle() lipgloss.Style {
	return renderer.NewStyle()
}

// Bold returns text rendered in bold.
func Bold(text string) string {
	return render(newStyle().Bold(true), text)
}

// Dim returns text rendered faint.
func Dim(text string) string {
	return render(newStyle().Faint(true), text)
}

// Green returns text in the emerald brand color.
func Green(text string) string {
	return render(newStyle().Foreground(ColorEmerald), text)
}

// Gold returns text in gold, used for the Ramadan banner.
func Gold(text string) string {
	return render(newStyle().Foreground(ColorGold).Bold(true), text)
}

// Cyan returns text in sky blue.
func Cyan(text string) string {
	return render(newStyle().Foreground(ColorSky), text)
}

// Gray returns text in gray.
func Gray(text string) string {
	return render(newStyle().Foreground(ColorGray), text)
}

// Accent highlights the next prayer and today's row.
func Accent(text string) string {
	return render(newStyle().Foreground(ColorEmerald).Bold(true), text)
}
