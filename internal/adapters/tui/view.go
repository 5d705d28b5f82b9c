package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/mortar/internal/ui/style"
)

const minLogHeight = 3

// View renders the UI.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) View() string {
	if m.Width == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		m.statusLine(),
		m.stepList(),
		m.logPane(),
		m.footer(),
	)
}

//nolint:gocritic // hugeParam ignored
func (m *Model) header() string {
	if m.Phase == PhaseWaiting && m.LastErr != nil {
		return failureTitleStyle.Render("mortar watch")
	}
	return titleStyle.Render("mortar watch")
}

//nolint:gocritic // hugeParam ignored
func (m *Model) statusLine() string {
	switch {
	case m.Phase == PhaseBuilding:
		line := stepRunningStyle.Render(fmt.Sprintf("%s cycle %d building", style.Dot, m.Cycle))
		if len(m.Trigger) > 0 {
			line += faintStyle.Render("  changed: " + strings.Join(m.Trigger, ", "))
		}
		return line

	case m.Cycle == 0:
		return faintStyle.Render("starting...")

	case m.LastErr != nil:
		return stepErrorStyle.Render(fmt.Sprintf("%s cycle %d failed after %v: %v",
			style.Cross, m.Cycle, m.LastElapsed.Round(time.Millisecond), m.LastErr))

	default:
		line := stepDoneStyle.Render(fmt.Sprintf("%s cycle %d ok in %v",
			style.Check, m.Cycle, m.LastElapsed.Round(time.Millisecond)))
		if len(m.Skipped) > 0 {
			line += "\n" + skipStyle.Render(fmt.Sprintf("%s unchanged, skipped rebuild (%s)",
				style.Tilde, strings.Join(m.Skipped, ", ")))
		}
		return line
	}
}

//nolint:gocritic // hugeParam ignored
func (m *Model) stepList() string {
	if len(m.Steps) == 0 {
		return ""
	}

	var s strings.Builder
	for _, step := range m.Steps {
		s.WriteString("  " + m.renderStepRow(step) + "\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func (m *Model) renderStepRow(step *StepNode) string {
	switch step.Status {
	case StatusRunning:
		return stepRunningStyle.Render(style.Dot + " " + step.Name)
	case StatusDone:
		return stepDoneStyle.Render(style.Check + " " + step.Name)
	case StatusError:
		return stepErrorStyle.Render(style.Cross + " " + step.Name)
	default:
		return faintStyle.Render(style.Circle + " " + step.Name)
	}
}

//nolint:gocritic // hugeParam ignored
func (m *Model) logPane() string {
	height := m.logHeight()

	lines := m.LogLines
	if m.PendingLine != "" {
		lines = append(lines[:len(lines):len(lines)], m.PendingLine)
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}

	width := m.Width - 4
	if width < 20 {
		width = 20
	}

	return logStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// logHeight returns how many output lines fit between the status area and
// the footer.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) logHeight() int {
	const chrome = 6 // title, status, footer, borders
	height := m.Height - chrome - len(m.Steps)
	if height < minLogHeight {
		return minLogHeight
	}
	return height
}

//nolint:gocritic // hugeParam ignored
func (m *Model) footer() string {
	if m.Phase == PhaseBuilding {
		return faintStyle.Render("q quit")
	}
	return faintStyle.Render("q quit · watching for changes...")
}
