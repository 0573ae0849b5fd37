package runner

import (
	"strings"
	"time"
)

// Status classifies the outcome of a single execution.
type Status string

const (
	// StatusSuccess covers processes that completed without tripping the
	// error rule, including a positive exit code with a silent stderr.
	StatusSuccess Status = "success"
	// StatusError covers launch failures, internal runner failures and
	// processes that exited non-zero while writing to stderr.
	StatusError Status = "error"
	// StatusTimeout marks executions aborted by the configured deadline.
	StatusTimeout Status = "timeout"
)

// Result is the immutable outcome of one Run invocation.
//
// ExitCode is nil when the process never reported an exit status: it was
// killed on timeout, or it could not be started at all. Stdout and Stderr
// hold the captured text with line breaks preserved; streams that were not
// captured stay empty. Duration is wall clock from the start of Run to its
// return, inclusive of process startup and stream draining.
type Result struct {
	RunID    string
	ExitCode *int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Status   Status
}

// Millis reports the execution duration in whole milliseconds.
func (r Result) Millis() int64 {
	return r.Duration.Milliseconds()
}

// classify applies the completed-process rule: a positive exit code counts
// as an error only when the process also produced non-whitespace stderr.
// Exit code 1 with an empty stderr is deliberately Success.
func classify(exitCode int, stderr string) Status {
	if exitCode > 0 && strings.TrimSpace(stderr) != "" {
		return StatusError
	}
	return StatusSuccess
}
