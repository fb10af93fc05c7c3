package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Section styles
var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	StyleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Emphasis
var (
	StyleOverdue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("red")).
			Bold(true)

	StyleBlocked = lipgloss.NewStyle().
			Foreground(lipgloss.Color("red"))

	StyleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("yellow"))

	StyleScore = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green")).
			Bold(true)
)
