package render

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Shared colors used across all subcommand output.
var (
	successColor lipgloss.TerminalColor = lipgloss.Color("82")
	warningColor lipgloss.TerminalColor = lipgloss.Color("214")
	errorColor   lipgloss.TerminalColor = lipgloss.Color("196")
	mutedColor   lipgloss.TerminalColor = lipgloss.Color("240")
	accentColor  lipgloss.TerminalColor = lipgloss.Color("62")
	addedColor   lipgloss.TerminalColor = lipgloss.Color("42")
	removedColor lipgloss.TerminalColor = lipgloss.Color("203")
)

// Shared styles used across all subcommand output.
var (
	// SuccessStyle marks completed operations and clean states.
	SuccessStyle = lipgloss.NewStyle().Foreground(successColor)

	// WarningStyle marks noteworthy but non-fatal conditions.
	WarningStyle = lipgloss.NewStyle().Foreground(warningColor)

	// ErrorStyle marks failures.
	ErrorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)

	// MutedStyle renders secondary detail such as hints.
	MutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	// AccentStyle highlights branch names and headers.
	AccentStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)

	// AddedStyle renders added and untracked paths.
	AddedStyle = lipgloss.NewStyle().Foreground(addedColor)

	// RemovedStyle renders deleted paths.
	RemovedStyle = lipgloss.NewStyle().Foreground(removedColor)
)

// Terminal symbols prefixed to rendered lines.
const (
	SuccessSymbol = "✔"
	ErrorSymbol   = "✖"
	WarningSymbol = "!"
	BulletSymbol  = "•"
	ArrowSymbol   = "➜"
)

// ConfigureColor selects the color profile: disabled explicitly or whenever
// standard output is not a terminal.
func ConfigureColor(disableColor bool) {
	if disableColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SuccessLine renders a success-styled line with the success symbol.
func SuccessLine(text string) string {
	return SuccessStyle.Render(SuccessSymbol + " " + text)
}

// WarningLine renders a warning-styled line with the warning symbol.
func WarningLine(text string) string {
	return WarningStyle.Render(WarningSymbol + " " + text)
}

// ErrorLine renders an error-styled line with the error symbol.
func ErrorLine(text string) string {
	return ErrorStyle.Render(ErrorSymbol + " " + text)
}

// HintLine renders a muted remediation hint.
func HintLine(text string) string {
	return MutedStyle.Render(ArrowSymbol + " " + text)
}
