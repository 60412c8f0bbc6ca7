package execshell

import (
	"context"
	"errors"
	"fmt"
)

const (
	executableNotFoundMessageConstant         = "executable not found"
	executableNotFoundTemplateConstant        = "%s: executable not found in PATH"
	spawnFailureTemplateConstant              = "%s failed: %v"
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	defaultEngineCommandNameStringConstant    = "docker"
	defaultTerminalCommandNameStringConstant  = "xterm"
	unknownCommandNameLabelConstant           = "command"
)

// CommandName identifies an executable resolved through the process search path.
type CommandName string

// Default executables used when configuration does not override them.
const (
	CommandDocker CommandName = CommandName(defaultEngineCommandNameStringConstant)
	CommandXterm  CommandName = CommandName(defaultTerminalCommandNameStringConstant)
)

// CommandDetails describes the argument vector and process environment of a command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	// AllocateTerminal attaches a pseudo-terminal as standard input.
	AllocateTerminal bool
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a command that ran to completion.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs commands either to completion or fire-and-forget.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
	Start(command ShellCommand) error
}

// ErrExecutableNotFound matches failures caused by an executable missing from the search path.
var ErrExecutableNotFound = errors.New(executableNotFoundMessageConstant)

// ErrLoggerNotConfigured indicates NewShellExecutor received a nil logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates NewShellExecutor received a nil runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// ExecutableNotFoundError reports that the named executable could not be resolved.
type ExecutableNotFoundError struct {
	Executable CommandName
}

// Error describes the missing executable.
func (notFoundError ExecutableNotFoundError) Error() string {
	return fmt.Sprintf(executableNotFoundTemplateConstant, describeCommandName(notFoundError.Executable))
}

// Is allows errors.Is(err, ErrExecutableNotFound).
func (notFoundError ExecutableNotFoundError) Is(target error) bool {
	return target == ErrExecutableNotFound
}

// SpawnError reports any failure other than a missing executable, including
// interruption by context cancellation or timeout.
type SpawnError struct {
	Command CommandName
	Cause   error
}

// Error describes the failure together with the underlying system message.
func (spawnError SpawnError) Error() string {
	return fmt.Sprintf(spawnFailureTemplateConstant, describeCommandName(spawnError.Command), spawnError.Cause)
}

// Unwrap exposes the underlying cause.
func (spawnError SpawnError) Unwrap() error {
	return spawnError.Cause
}

func describeCommandName(name CommandName) string {
	if len(name) == 0 {
		return unknownCommandNameLabelConstant
	}
	return string(name)
}
