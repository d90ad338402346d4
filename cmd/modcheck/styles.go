package main

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorValid   = lipgloss.Color("#10B981")
	colorInvalid = lipgloss.Color("#EF4444")

	validStyle   = lipgloss.NewStyle().Foreground(colorValid).Bold(true)
	invalidStyle = lipgloss.NewStyle().Foreground(colorInvalid).Bold(true)
)

func styleVerdict(valid bool, verdict string) string {
	if valid {
		return validStyle.Render(verdict)
	}
	return invalidStyle.Render(verdict)
}
