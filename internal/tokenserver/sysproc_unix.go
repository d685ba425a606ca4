//go:build !windows

package tokenserver

import (
	"os/exec"
	"syscall"
)

func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func terminate(pid int) error {
	return syscall.Kill(-pid, syscall.SIGTERM)
}
