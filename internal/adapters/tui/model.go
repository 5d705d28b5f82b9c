package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StepStatus represents the current state of a build step.
type StepStatus string

const (
	// StatusRunning indicates the step is currently executing.
	StatusRunning StepStatus = "Running"
	// StatusDone indicates the step completed successfully.
	StatusDone StepStatus = "Done"
	// StatusError indicates the step failed.
	StatusError StepStatus = "Error"
)

// CyclePhase represents where the watch session currently is.
type CyclePhase string

const (
	// PhaseWaiting indicates no cycle is running.
	PhaseWaiting CyclePhase = "Waiting"
	// PhaseBuilding indicates a cycle is in progress.
	PhaseBuilding CyclePhase = "Building"
)

// StepNode represents a single step in the current cycle.
type StepNode struct {
	Name   string
	Status StepStatus
}

// Model represents the watch TUI state.
type Model struct {
	Width  int
	Height int

	Cycle   int
	Trigger []string
	Phase   CyclePhase
	Steps   []*StepNode
	StepMap map[string]*StepNode

	LogLines    []string
	PendingLine string

	LastElapsed time.Duration
	LastErr     error
	Skipped     []string
}

// Init initializes the model.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop,gocritic // hugeParam ignored, cyclop ignored
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case MsgCycleStart:
		m.Cycle = msg.Seq
		m.Trigger = msg.Trigger
		m.Phase = PhaseBuilding
		m.Steps = nil
		m.StepMap = make(map[string]*StepNode)
		m.LogLines = m.LogLines[:0]
		m.PendingLine = ""
		m.Skipped = nil
		m.LastErr = nil

	case MsgStepStart:
		node := &StepNode{
			Name:   msg.Step,
			Status: StatusRunning,
		}
		m.Steps = append(m.Steps, node)
		m.StepMap[msg.Step] = node

	case MsgStepLog:
		m.appendLog(msg.Data)

	case MsgStepComplete:
		if node, ok := m.StepMap[msg.Step]; ok {
			if msg.Err != nil {
				node.Status = StatusError
			} else {
				node.Status = StatusDone
			}
		}

	case MsgCycleComplete:
		m.Phase = PhaseWaiting
		m.LastElapsed = msg.Elapsed
		m.LastErr = msg.Err
		m.flushPending()

	case MsgCycleSkipped:
		m.Skipped = msg.Paths
	}

	return m, nil
}

// appendLog folds a chunk of toolchain output into the sliding line window.
func (m *Model) appendLog(data []byte) {
	text := m.PendingLine + string(data)
	lines := strings.Split(text, "\n")

	// The last element is either empty (chunk ended on a newline) or an
	// incomplete line to carry into the next chunk.
	m.PendingLine = lines[len(lines)-1]
	lines = lines[:len(lines)-1]

	for _, line := range lines {
		m.LogLines = append(m.LogLines, strings.TrimSuffix(line, "\r"))
	}

	if overflow := len(m.LogLines) - maxLogLines; overflow > 0 {
		m.LogLines = append(m.LogLines[:0], m.LogLines[overflow:]...)
	}
}

// flushPending promotes an unterminated trailing line into the window.
func (m *Model) flushPending() {
	if m.PendingLine == "" {
		return
	}
	m.LogLines = append(m.LogLines, strings.TrimSuffix(m.PendingLine, "\r"))
	m.PendingLine = ""

	if overflow := len(m.LogLines) - maxLogLines; overflow > 0 {
		m.LogLines = append(m.LogLines[:0], m.LogLines[overflow:]...)
	}
}
