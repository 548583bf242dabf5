// Package harness manages isolated executions of the external analysis tool.
package harness

import (
	"fmt"
	"time"
)

// Output holds the captured result of one successful tool run.
type Output struct {
	Text string        // combined stdout and stderr
	Wall time.Duration // wall-clock time measured by the orchestrator
}

// outputPrefixLen bounds how much raw output is kept for diagnostics.
const outputPrefixLen = 500

// Prefix returns at most the first 500 characters of the captured output.
func (o *Output) Prefix() string {
	runes := []rune(o.Text)
	if len(runes) <= outputPrefixLen {
		return o.Text
	}

	return string(runes[:outputPrefixLen])
}

// ErrorKind classifies a failed run.
type ErrorKind int

const (
	// ErrExec means the tool failed to launch or exited non-zero.
	ErrExec ErrorKind = iota
	// ErrTimeout means the run exceeded its wall-clock deadline.
	ErrTimeout
)

func (k ErrorKind) String() string {
	if k == ErrTimeout {
		return "timeout"
	}

	return "execution failed"
}

// RunError reports a failed tool run. The benchmark recovers from these by
// skipping the sample; they never abort the whole sweep.
type RunError struct {
	Kind   ErrorKind
	Detail string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
