package tui_test

import (
	"fmt"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mortar/internal/adapters/tui"
	"go.trai.ch/zerr"
)

func newTestModel(t *testing.T) *tui.Model {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel(io.Discard)
	m.Width = 80
	m.Height = 24
	return &m
}

func update(t *testing.T, m *tui.Model, msg tea.Msg) *tui.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(*tui.Model)
	require.True(t, ok)
	return next
}

func TestUpdate_CycleStart_ResetsState(t *testing.T) {
	m := newTestModel(t)

	// Leave traces of a previous cycle behind.
	m = update(t, m, tui.MsgCycleStart{Seq: 1})
	m = update(t, m, tui.MsgStepStart{Step: "compile main.cpp"})
	m = update(t, m, tui.MsgStepLog{Step: "compile main.cpp", Data: []byte("old output\n")})
	m = update(t, m, tui.MsgCycleComplete{Seq: 1, Elapsed: time.Second, Err: zerr.New("compilation failed")})

	m = update(t, m, tui.MsgCycleStart{Seq: 2, Trigger: []string{"main.cpp"}})

	assert.Equal(t, 2, m.Cycle)
	assert.Equal(t, tui.PhaseBuilding, m.Phase)
	assert.Equal(t, []string{"main.cpp"}, m.Trigger)
	assert.Empty(t, m.Steps)
	assert.Empty(t, m.LogLines)
	assert.NoError(t, m.LastErr)
}

func TestUpdate_StepLifecycle(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tui.MsgCycleStart{Seq: 1})

	m = update(t, m, tui.MsgStepStart{Step: "compile main.cpp"})
	require.Len(t, m.Steps, 1)
	assert.Equal(t, tui.StatusRunning, m.Steps[0].Status)

	m = update(t, m, tui.MsgStepComplete{Step: "compile main.cpp"})
	assert.Equal(t, tui.StatusDone, m.Steps[0].Status)

	m = update(t, m, tui.MsgStepStart{Step: "link noob"})
	m = update(t, m, tui.MsgStepComplete{Step: "link noob", Err: zerr.New("command failed")})
	require.Len(t, m.Steps, 2)
	assert.Equal(t, tui.StatusError, m.Steps[1].Status)
}

func TestUpdate_StepComplete_UnknownStepIgnored(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tui.MsgCycleStart{Seq: 1})

	m = update(t, m, tui.MsgStepComplete{Step: "never started"})
	assert.Empty(t, m.Steps)
}

func TestUpdate_StepLog_AssemblesLines(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tui.MsgCycleStart{Seq: 1})
	m = update(t, m, tui.MsgStepStart{Step: "compile main.cpp"})

	m = update(t, m, tui.MsgStepLog{Step: "compile main.cpp", Data: []byte("par")})
	assert.Empty(t, m.LogLines)
	assert.Equal(t, "par", m.PendingLine)

	m = update(t, m, tui.MsgStepLog{Step: "compile main.cpp", Data: []byte("tial line\r\nnext")})
	require.Len(t, m.LogLines, 1)
	assert.Equal(t, "partial line", m.LogLines[0])
	assert.Equal(t, "next", m.PendingLine)
}

func TestUpdate_CycleComplete_FlushesPending(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tui.MsgCycleStart{Seq: 1})
	m = update(t, m, tui.MsgStepLog{Step: "run", Data: []byte("no trailing newline")})

	m = update(t, m, tui.MsgCycleComplete{Seq: 1, Elapsed: 300 * time.Millisecond})

	assert.Equal(t, tui.PhaseWaiting, m.Phase)
	assert.Equal(t, 300*time.Millisecond, m.LastElapsed)
	require.NotEmpty(t, m.LogLines)
	assert.Equal(t, "no trailing newline", m.LogLines[len(m.LogLines)-1])
	assert.Empty(t, m.PendingLine)
}

func TestUpdate_LogWindow_Capped(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tui.MsgCycleStart{Seq: 1})

	total := tui.MaxLogLinesExported + 50
	for i := range total {
		data := fmt.Sprintf("line %d\n", i)
		m = update(t, m, tui.MsgStepLog{Step: "compile main.cpp", Data: []byte(data)})
	}

	require.Len(t, m.LogLines, tui.MaxLogLinesExported)
	assert.Equal(t, "line 50", m.LogLines[0])
	assert.Equal(t, fmt.Sprintf("line %d", total-1), m.LogLines[len(m.LogLines)-1])
}

func TestUpdate_CycleSkipped(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tui.MsgCycleStart{Seq: 1})
	m = update(t, m, tui.MsgCycleComplete{Seq: 1, Elapsed: time.Second})

	m = update(t, m, tui.MsgCycleSkipped{Paths: []string{"main.cpp"}})

	assert.Equal(t, []string{"main.cpp"}, m.Skipped)
	assert.Equal(t, tui.PhaseWaiting, m.Phase)
}

func TestUpdate_KeyQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.NotNil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
}

func TestUpdate_OtherKeysIgnored(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd)
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.Width)
	assert.Equal(t, 40, m.Height)
}
