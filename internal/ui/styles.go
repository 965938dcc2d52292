package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Forge brand colors and styles
var (
	ColorBlue   = lipgloss.Color("63")
	ColorGreen  = lipgloss.Color("42")
	ColorYellow = lipgloss.Color("220")
	ColorRed    = lipgloss.Color("196")
	ColorGray   = lipgloss.Color("240")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	IconSuccess = "✅"
	IconWarning = "⚠️ "
	IconError   = "❌"
	IconRocket  = "🚀"
	IconPackage = "📦"
	IconPhone   = "📱"
	IconTrash   = "🗑️ "
)

// Success renders a success line.
func Success(msg string) string {
	return SuccessStyle.Render(IconSuccess + " " + msg)
}

// Warning renders a warning line.
func Warning(msg string) string {
	return WarningStyle.Render(IconWarning + msg)
}

// Failure renders an error line.
func Failure(msg string) string {
	return ErrorStyle.Render(IconError + " " + msg)
}
