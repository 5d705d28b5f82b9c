package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Renderer wraps the Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	program := tea.NewProgram(model, opts...)
	return &Renderer{
		program: program,
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start() error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() {
	r.program.Quit()
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnCycleStart forwards cycle start events to the TUI.
func (r *Renderer) OnCycleStart(seq int, trigger []string) {
	r.program.Send(MsgCycleStart{
		Seq:     seq,
		Trigger: trigger,
	})
}

// OnStepStart forwards step start events to the TUI.
func (r *Renderer) OnStepStart(step string) {
	r.program.Send(MsgStepStart{Step: step})
}

// OnStepLog forwards toolchain output to the TUI.
func (r *Renderer) OnStepLog(step string, data []byte) {
	r.program.Send(MsgStepLog{
		Step: step,
		Data: data,
	})
}

// OnStepComplete forwards step completion events to the TUI.
func (r *Renderer) OnStepComplete(step string, err error) {
	r.program.Send(MsgStepComplete{
		Step: step,
		Err:  err,
	})
}

// OnCycleComplete forwards cycle completion events to the TUI.
func (r *Renderer) OnCycleComplete(seq int, elapsed time.Duration, err error) {
	r.program.Send(MsgCycleComplete{
		Seq:     seq,
		Elapsed: elapsed,
		Err:     err,
	})
}

// OnCycleSkipped forwards skip notices to the TUI.
func (r *Renderer) OnCycleSkipped(paths []string) {
	r.program.Send(MsgCycleSkipped{Paths: paths})
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
