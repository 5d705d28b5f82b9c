package ports

import "time"

// Renderer defines the interface for presenting watch-mode build cycles.
// Implementations own a presentation loop with its own lifecycle; the
// On* methods feed it events and must be safe to call from any goroutine.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start launches the presentation loop.
	Start() error

	// Stop shuts the presentation loop down.
	Stop()

	// Wait blocks until the presentation loop has exited and returns its
	// terminal error, if any.
	Wait() error

	// OnCycleStart reports that a build cycle began. The trigger lists the
	// paths whose changes caused it; it is empty for the initial cycle.
	OnCycleStart(seq int, trigger []string)

	// OnStepStart reports that a named step within the current cycle began.
	OnStepStart(step string)

	// OnStepLog carries a chunk of toolchain output attributed to a step.
	OnStepLog(step string, data []byte)

	// OnStepComplete reports that a step finished.
	OnStepComplete(step string, err error)

	// OnCycleComplete reports that the current cycle finished.
	OnCycleComplete(seq int, elapsed time.Duration, err error)

	// OnCycleSkipped reports that changed paths were discarded because the
	// build inputs hashed identically to the previous cycle.
	OnCycleSkipped(paths []string)
}
