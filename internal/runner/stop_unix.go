//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

// terminate forcefully stops the child process. Termination failures
// (process already exited, permission denied) are observed and deliberately
// discarded: the timeout path is best-effort and never surfaces a
// termination error to the caller.
func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	// Negative pid addresses the process group created via Setpgid.
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
