// Package style holds the pterm styles for human-directed output.
// Formatting is only applied when stdout is a terminal.
package style

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

var (
	// TitleStyle renders section headers
	TitleStyle = pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)

	// MutedStyle renders secondary information
	MutedStyle = pterm.NewStyle(pterm.FgGray)

	// SuccessStyle renders success lines
	SuccessStyle = pterm.NewStyle(pterm.FgGreen)

	// WarnStyle renders warnings
	WarnStyle = pterm.NewStyle(pterm.FgYellow)

	// ErrorStyle renders fatal errors
	ErrorStyle = pterm.NewStyle(pterm.FgRed, pterm.Bold)
)

// isTerminal reports whether stdout supports styling
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Bold returns the string formatted as bold when stdout is a terminal
func Bold(s string) string {
	if !isTerminal() {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// Success formats a success line
func Success(s string) string {
	if !isTerminal() {
		return s
	}
	return SuccessStyle.Sprint(s)
}

// Warn formats a warning line
func Warn(s string) string {
	if !isTerminal() {
		return s
	}
	return WarnStyle.Sprint(s)
}

// Error formats an error line
func Error(s string) string {
	if !isTerminal() {
		return s
	}
	return ErrorStyle.Sprint(s)
}

// Muted formats secondary information
func Muted(s string) string {
	if !isTerminal() {
		return s
	}
	return MutedStyle.Sprint(s)
}
