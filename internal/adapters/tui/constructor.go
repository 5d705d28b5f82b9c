// Package tui provides the interactive terminal interface for watch mode.
package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/mortar/internal/ui/output"
)

const maxLogLines = 200

// NewModel creates a new TUI model with default settings.
func NewModel(w io.Writer) Model {
	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		StepMap:  make(map[string]*StepNode),
		LogLines: make([]string, 0, maxLogLines),
		Phase:    PhaseWaiting,
	}
}
