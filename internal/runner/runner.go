package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartasso/process-async-helper/internal/metrics"
)

// InternalErrorExitCode is the reserved exit code reported when execution
// fails inside the runner itself rather than in the child process.
const InternalErrorExitCode = -1

// maxLineLength bounds a single captured line. Longer lines abort the
// scanner; the remainder of the stream is still drained so the pipe cannot
// back up.
const maxLineLength = 1024 * 1024

// Spec describes a single process invocation. Command is the argv for the
// child: Command[0] is the executable (resolved via PATH when it is not a
// path) and the remaining entries are its arguments.
type Spec struct {
	Command       []string
	Dir           string
	Env           map[string]string
	CaptureStdout bool
	CaptureStderr bool
	Timeout       time.Duration
}

// Runner executes one child process per Run call. The zero value is usable
// and safe for concurrent use.
type Runner struct{}

// New constructs a Runner.
func New() *Runner {
	return &Runner{}
}

var defaultRunner = New()

// RunCommand runs name with args, capturing both streams, waiting up to
// timeout (0 waits indefinitely).
func RunCommand(ctx context.Context, timeout time.Duration, name string, args ...string) Result {
	return defaultRunner.Run(ctx, Spec{
		Command:       append([]string{name}, args...),
		CaptureStdout: true,
		CaptureStderr: true,
		Timeout:       timeout,
	})
}

// Run executes the process described by spec to completion or timeout. It
// never returns an error and never panics across its boundary: every
// failure mode is folded into the Result and distinguished by Status and
// ExitCode. Cancelling ctx behaves like an expired timeout.
func (r *Runner) Run(ctx context.Context, spec Spec) Result {
	start := time.Now()
	res := r.execute(ctx, spec)
	res.RunID = uuid.NewString()
	res.Duration = time.Since(start)
	metrics.ObserveRun(string(res.Status), res.Duration)
	return res
}

func (r *Runner) execute(ctx context.Context, spec Spec) Result {
	if len(spec.Command) == 0 {
		return syntheticFailure(errors.New("spec requires a command"))
	}

	cmd := exec.Command(spec.Command[0], spec.Command[1:]...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if len(spec.Env) > 0 {
		env := os.Environ()
		for k, v := range spec.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		cmd.Env = env
	}

	// Streams that are not captured stay nil so the child inherits the
	// null device.
	var stdout, stderr io.ReadCloser
	if spec.CaptureStdout {
		pipe, err := cmd.StdoutPipe()
		if err != nil {
			return syntheticFailure(fmt.Errorf("stdout pipe: %w", err))
		}
		stdout = pipe
	}
	if spec.CaptureStderr {
		pipe, err := cmd.StderrPipe()
		if err != nil {
			return syntheticFailure(fmt.Errorf("stderr pipe: %w", err))
		}
		stderr = pipe
	}

	configureCmdSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		// Launch refusal is its own terminal state: no exit code, no output.
		return Result{Status: StatusError}
	}

	outBuf := &capture{}
	errBuf := &capture{}

	// Draining must begin before any wait. A child that produces output
	// faster than it is consumed would otherwise deadlock against the pipe
	// buffer limit while the parent waits for exit.
	var wg sync.WaitGroup
	if stdout != nil {
		wg.Add(1)
		go drain(stdout, outBuf, &wg)
	}
	if stderr != nil {
		wg.Add(1)
		go drain(stderr, errBuf, &wg)
	}

	// Joint completion: every captured stream has reached end-of-stream and
	// the process has reported its exit status. Wait must not run before
	// the drains finish, per the os/exec pipe contract.
	waitErr := make(chan error, 1)
	go func() {
		wg.Wait()
		waitErr <- cmd.Wait()
	}()

	// The deadline is armed just before the wait, not at process launch.
	var deadline <-chan time.Time
	if spec.Timeout > 0 {
		timer := time.NewTimer(spec.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case err := <-waitErr:
		if err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				res := syntheticFailure(fmt.Errorf("wait: %w", err))
				res.Stdout = outBuf.String()
				return res
			}
		}
		code := cmd.ProcessState.ExitCode()
		res := Result{ExitCode: &code, Stdout: outBuf.String(), Stderr: errBuf.String()}
		res.Status = classify(code, res.Stderr)
		return res
	case <-deadline:
	case <-ctx.Done():
	}

	// Timeout branch: terminate once, best-effort, and return without
	// waiting for the kill to land. The buffers hold whatever had arrived,
	// which may be incomplete if the child keeps writing before it dies.
	terminate(cmd)
	return Result{
		Status: StatusTimeout,
		Stdout: outBuf.String(),
		Stderr: errBuf.String(),
	}
}

func drain(r io.Reader, buf *capture, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		buf.appendLine(scanner.Text())
	}
	_, _ = io.Copy(io.Discard, r)
}

func syntheticFailure(err error) Result {
	code := InternalErrorExitCode
	return Result{ExitCode: &code, Stderr: err.Error(), Status: StatusError}
}

// capture accumulates stream lines in arrival order. Only the stream's
// drain goroutine writes; readers snapshot under the same lock, which keeps
// the timeout path safe while the child is still producing output.
type capture struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (c *capture) appendLine(line string) {
	c.mu.Lock()
	c.buf.WriteString(line)
	c.buf.WriteByte('\n')
	c.mu.Unlock()
}

func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}
