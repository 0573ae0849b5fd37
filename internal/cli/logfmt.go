package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"

	"github.com/smartasso/process-async-helper/internal/runner"
)

// RunRecord represents a finished execution ready for JSON encoding.
type RunRecord struct {
	Timestamp      time.Time `json:"ts"`
	Task           string    `json:"task,omitempty"`
	RunID          string    `json:"run_id"`
	Status         string    `json:"status"`
	ExitCode       *int      `json:"exit_code"`
	DurationMillis int64     `json:"duration_ms"`
	Stdout         string    `json:"stdout,omitempty"`
	Stderr         string    `json:"stderr,omitempty"`
}

// NewRunRecord converts a runner result into a structured record.
func NewRunRecord(task string, res runner.Result) RunRecord {
	return RunRecord{
		Task:           task,
		RunID:          res.RunID,
		Status:         string(res.Status),
		ExitCode:       res.ExitCode,
		DurationMillis: res.Millis(),
		Stdout:         res.Stdout,
		Stderr:         res.Stderr,
	}
}

// EncodeRunRecord encodes a result record to JSON, reporting encoder errors
// to stderr if needed.
func EncodeRunRecord(enc *json.Encoder, stderr io.Writer, task string, res runner.Result) {
	if enc == nil {
		return
	}
	record := NewRunRecord(task, res)
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if err := enc.Encode(&record); err != nil {
		fmt.Fprintf(stderr, "error: encode record: %v\n", err)
	}
}

// renderResult writes a result as a JSON record, or, when out is a terminal
// and JSON was not forced, as the raw captured streams followed by a summary
// line on stderr.
func renderResult(out, errw io.Writer, task string, res runner.Result, forceJSON bool) {
	if forceJSON || !isTerminal(out) {
		EncodeRunRecord(json.NewEncoder(out), errw, task, res)
		return
	}
	if res.Stdout != "" {
		fmt.Fprint(out, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(errw, res.Stderr)
	}
	exit := "none"
	if res.ExitCode != nil {
		exit = strconv.Itoa(*res.ExitCode)
	}
	prefix := ""
	if task != "" {
		prefix = task + ": "
	}
	fmt.Fprintf(errw, "%sstatus=%s exit=%s duration=%s\n", prefix, res.Status, exit, res.Duration.Round(time.Millisecond))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
