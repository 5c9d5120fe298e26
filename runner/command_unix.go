//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

// prepareCommand runs the spec command in its own process group so a cancel
// also stops the dev servers and browsers the test runner spawns.
func prepareCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay
}
