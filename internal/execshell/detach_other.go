//go:build !unix

package execshell

import "os/exec"

func detachProcess(*exec.Cmd) {}
