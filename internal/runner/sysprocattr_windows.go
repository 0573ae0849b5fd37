//go:build windows

package runner

import "os/exec"

func configureCmdSysProcAttr(cmd *exec.Cmd) {}
