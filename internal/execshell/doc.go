// Package execshell provides structured helpers for invoking external tools.
//
// OSCommandRunner wraps os/exec: Run waits for the child while draining its
// output streams, Start spawns a detached child and returns immediately.
// ShellExecutor layers zap logging, lifecycle observers, and per-command
// timeouts on top of any CommandRunner so callers can be tested with fakes.
package execshell
