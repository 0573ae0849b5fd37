//go:build windows

package runner

import "os/exec"

// terminate forcefully stops the top-level child process. Windows offers no
// process-group delivery here, so grandchildren may survive; failures are
// deliberately discarded.
func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
