package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/mortar/internal/ui/style"
)

var (
	stepRunningStyle = lipgloss.NewStyle().
				Foreground(style.Clay).
				Bold(true)

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	stepErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Clay).
			Foreground(style.White)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.White)

	faintStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	skipStyle = lipgloss.NewStyle().
			Foreground(style.Yellow)

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.Slate).
			Padding(0, 1)
)
