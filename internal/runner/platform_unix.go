//go:build !windows

package runner

import (
	"os/exec"
	"strings"
	"syscall"
)

// setupProcessGroup configures cmd to run in its own process group so
// the whole tree can be killed in one step.
func setupProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// killProcessGroup sends SIGKILL to the process group (retrying with
// SIGTERM if that signal fails) and then kills the direct child as
// well, treating an already-finished child as success. A shell launcher
// may have spawned grandchildren the direct PID alone would miss (spec
// §4.3).
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}

	pid := cmd.Process.Pid
	if pgid, err := syscall.Getpgid(pid); err == nil && pgid > 0 {
		if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil {
			syscall.Kill(-pgid, syscall.SIGTERM)
		}
	}

	if err := cmd.Process.Kill(); err != nil {
		if !strings.Contains(err.Error(), "process already finished") {
			return err
		}
	}
	return nil
}
