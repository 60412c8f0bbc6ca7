package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	processWaitDelayConstant               = 2 * time.Second
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command and waits for it to exit. Standard output
// and standard error are copied into buffers by os/exec on their own goroutines
// while the process runs, so a chatty child cannot fill a pipe and stall.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)
	runner.configureProcess(executable, command.Details)
	// Grandchildren holding the output pipes must not keep Wait blocked after
	// the context has killed the direct child.
	executable.WaitDelay = processWaitDelayConstant

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	} else if command.Details.AllocateTerminal {
		terminalController, terminalReplica, terminalError := pty.Open()
		switch {
		case terminalError == nil:
			defer terminalController.Close()
			defer terminalReplica.Close()
			executable.Stdin = terminalReplica
		case errors.Is(terminalError, pty.ErrUnsupported):
		default:
			return ExecutionResult{}, SpawnError{Command: command.Name, Cause: terminalError}
		}
	}

	if startError := executable.Start(); startError != nil {
		return ExecutionResult{}, runner.classifyStartError(command, startError)
	}

	waitError := executable.Wait()
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, SpawnError{Command: command.Name, Cause: contextError}
	}
	if waitError != nil {
		exitError := &exec.ExitError{}
		if errors.As(waitError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, SpawnError{Command: command.Name, Cause: waitError}
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}

// Start spawns the supplied command without waiting for it. The child runs
// detached from the caller and its output is discarded.
func (runner *OSCommandRunner) Start(command ShellCommand) error {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.Command(string(command.Name), commandArguments...)
	runner.configureProcess(executable, command.Details)
	detachProcess(executable)

	if startError := executable.Start(); startError != nil {
		return runner.classifyStartError(command, startError)
	}

	if releaseError := executable.Process.Release(); releaseError != nil {
		return SpawnError{Command: command.Name, Cause: releaseError}
	}
	return nil
}

func (runner *OSCommandRunner) configureProcess(executable *exec.Cmd, details CommandDetails) {
	if len(details.WorkingDirectory) > 0 {
		executable.Dir = details.WorkingDirectory
	}

	if len(details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}
}

func (runner *OSCommandRunner) classifyStartError(command ShellCommand, startError error) error {
	if errors.Is(startError, exec.ErrNotFound) {
		return ExecutableNotFoundError{Executable: command.Name}
	}
	// An explicit path that does not exist fails in the exec call itself; a
	// missing working directory would surface the same way, so only treat it
	// as a missing executable when no directory was requested.
	if len(command.Details.WorkingDirectory) == 0 && errors.Is(startError, fs.ErrNotExist) {
		return ExecutableNotFoundError{Executable: command.Name}
	}
	return SpawnError{Command: command.Name, Cause: startError}
}
