package tui

import "time"

// MsgCycleStart announces a new build cycle.
type MsgCycleStart struct {
	Seq     int
	Trigger []string
}

// MsgStepStart announces that a step within the current cycle began.
type MsgStepStart struct {
	Step string
}

// MsgStepLog carries a chunk of toolchain output for a step.
type MsgStepLog struct {
	Step string
	Data []byte
}

// MsgStepComplete announces that a step finished.
type MsgStepComplete struct {
	Step string
	Err  error
}

// MsgCycleComplete announces the outcome of a cycle.
type MsgCycleComplete struct {
	Seq     int
	Elapsed time.Duration
	Err     error
}

// MsgCycleSkipped announces that changed paths hashed identically to the
// previous build and no cycle was run.
type MsgCycleSkipped struct {
	Paths []string
}
