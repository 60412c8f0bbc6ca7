//go:build unix

package execshell

import (
	"os/exec"
	"syscall"
)

// detachProcess starts the child in its own session so that it survives the
// terminal that launched it.
func detachProcess(executable *exec.Cmd) {
	executable.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
