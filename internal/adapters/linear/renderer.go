// Package linear provides a synchronous, line-buffered renderer for CI and
// non-interactive watch sessions.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Renderer implements ports.Renderer with linear, chronological log lines.
// Toolchain output goes to stdout with step name prefixes; cycle and step
// status lines go to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	started map[string]time.Time
	buffers map[string]*bytes.Buffer

	stopOnce sync.Once
	done     chan struct{}
}

// NewRenderer creates a new linear renderer. Nil writers fall back to the
// process stdout and stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	output := termenv.NewOutput(stderr, termenv.WithProfile(colorProfile()))

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output,
		started: make(map[string]time.Time),
		buffers: make(map[string]*bytes.Buffer),
		done:    make(chan struct{}),
	}
}

// colorProfile returns the color profile based on environment.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	// Basic ANSI is the safe choice for CI log viewers.
	return termenv.ANSI
}

// Start is a no-op, the linear renderer is synchronous.
func (r *Renderer) Start() error {
	return nil
}

// Stop flushes all remaining step buffers and releases Wait.
func (r *Renderer) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		for step := range r.buffers {
			r.flushBufferLocked(step)
		}
		close(r.done)
	})
}

// Wait blocks until Stop is called. The linear renderer prints
// synchronously, so there is no terminal error to report.
func (r *Renderer) Wait() error {
	<-r.done
	return nil
}

// OnCycleStart prints the cycle header with the triggering paths.
func (r *Renderer) OnCycleStart(seq int, trigger []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(trigger) == 0 {
		_, _ = fmt.Fprintf(r.stderr, "Starting build cycle %d\n", seq)
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "Starting build cycle %d (changed: %s)\n",
		seq, strings.Join(trigger, ", "))
}

// OnStepStart prints a step start message.
func (r *Renderer) OnStepStart(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started[step] = time.Now()
	r.buffers[step] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", step)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnStepLog buffers toolchain output and prints complete lines with the
// step name prefix.
func (r *Renderer) OnStepLog(step string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf, ok := r.buffers[step]
	if !ok {
		return
	}

	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back.
			if len(line) > 0 {
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				r.buffers[step] = newBuf
			}
			break
		}

		r.printLineLocked(step, line)
	}
}

// OnStepComplete flushes the remaining buffer and prints the step status.
func (r *Renderer) OnStepComplete(step string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	startTime, ok := r.started[step]
	if !ok {
		return
	}

	r.flushBufferLocked(step)

	duration := time.Since(startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", step)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n",
			prefix, symbol, duration)
	}

	delete(r.started, step)
	delete(r.buffers, step)
}

// OnCycleComplete prints the cycle outcome.
func (r *Renderer) OnCycleComplete(seq int, elapsed time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s Cycle %d failed after %v: %v\n",
			symbol, seq, elapsed.Round(time.Millisecond), err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s Cycle %d completed in %v\n",
			symbol, seq, elapsed.Round(time.Millisecond))
	}

	_, _ = fmt.Fprintln(r.stderr, r.output.String("Watching for changes...").Faint().String())
}

// OnCycleSkipped reports changes whose content hashed identically to the
// previous build.
func (r *Renderer) OnCycleSkipped(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	symbol := r.output.String("~").Foreground(termenv.ANSIYellow).String()
	_, _ = fmt.Fprintf(r.stderr, "%s Content unchanged, skipping rebuild (%s)\n",
		symbol, strings.Join(paths, ", "))
}

// flushBufferLocked prints any remaining partial line for a step.
// Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(step string) {
	buf, ok := r.buffers[step]
	if !ok || buf.Len() == 0 {
		return
	}
	r.printLineLocked(step, buf.Bytes())
	buf.Reset()
}

// printLineLocked prints a line with the step name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(step string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", step, string(line))
}
