//go:build windows

package runner

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps the child process from flashing a console window.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
