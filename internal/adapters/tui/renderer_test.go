package tui_test

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/mortar/internal/adapters/tui"
	"go.trai.ch/zerr"
)

func newTestRenderer(t *testing.T) *tui.Renderer {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	model := tui.NewModel(io.Discard)
	return tui.NewRenderer(
		&model,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
}

func TestRenderer_Lifecycle(t *testing.T) {
	renderer := newTestRenderer(t)

	if err := renderer.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	renderer.Stop()

	if err := renderer.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func TestRenderer_ForwardsCycleEvents(t *testing.T) {
	renderer := newTestRenderer(t)

	if err := renderer.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		renderer.Stop()
		_ = renderer.Wait()
	}()

	renderer.OnCycleStart(1, nil)
	renderer.OnCycleComplete(1, 120*time.Millisecond, nil)
	renderer.OnCycleStart(2, []string{"main.cpp"})
	renderer.OnCycleComplete(2, 80*time.Millisecond, zerr.New("compilation failed"))
	renderer.OnCycleSkipped([]string{"main.cpp"})

	time.Sleep(10 * time.Millisecond)
}

func TestRenderer_ForwardsStepEvents(t *testing.T) {
	renderer := newTestRenderer(t)

	if err := renderer.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		renderer.Stop()
		_ = renderer.Wait()
	}()

	renderer.OnCycleStart(1, nil)
	renderer.OnStepStart("compile main.cpp")
	renderer.OnStepLog("compile main.cpp", []byte("main.cpp: ok\n"))
	renderer.OnStepComplete("compile main.cpp", nil)
	renderer.OnStepStart("link noob")
	renderer.OnStepComplete("link noob", zerr.New("command failed"))

	time.Sleep(10 * time.Millisecond)
}

func TestRenderer_Program(t *testing.T) {
	renderer := newTestRenderer(t)

	if renderer.Program() == nil {
		t.Error("Expected non-nil Program()")
	}
}
