package execshell

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	logFieldCommandNameConstant      = "command_name"
	logFieldCommandArgumentsConstant = "arguments"
	logFieldExitCodeConstant         = "exit_code"
	logFieldStandardErrorConstant    = "stderr"
	logFieldTimeoutConstant          = "timeout"
	logFieldDetachedConstant         = "detached"
)

// ExecutorOption customizes a ShellExecutor.
type ExecutorOption func(executor *ShellExecutor)

// WithCommandEventObserver routes command lifecycle notifications to observer.
func WithCommandEventObserver(observer CommandEventObserver) ExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.observer = observer
		}
	}
}

// WithCommandTimeout bounds every waited command. Zero or negative disables the bound.
func WithCommandTimeout(timeout time.Duration) ExecutorOption {
	return func(executor *ShellExecutor) {
		executor.timeout = timeout
	}
}

// ShellExecutor runs commands through a CommandRunner with structured logging.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
	timeout   time.Duration
}

// NewShellExecutor validates dependencies and builds a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, options ...ExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		logger:    logger,
		runner:    runner,
		observer:  noopCommandEventObserver{},
		formatter: CommandMessageFormatter{},
	}
	for _, option := range options {
		if option != nil {
			option(executor)
		}
	}
	return executor, nil
}

// Execute runs command to completion. A non-zero exit code is reported in the
// result rather than as an error; errors are reserved for commands that could
// not be run or were interrupted.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if executor.timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, executor.timeout)
		defer cancel()
	}

	executor.observer.CommandStarted(command)
	executor.logger.Debug(
		executor.formatter.BuildStartedMessage(command),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.Duration(logFieldTimeoutConstant, executor.timeout),
	)

	executionResult, executionError := executor.runner.Run(executionContext, command)
	if executionError != nil {
		executor.observer.CommandExecutionFailed(command, executionError)
		executor.logger.Debug(
			executor.formatter.BuildExecutionFailureMessage(command, executionError),
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Error(executionError),
		)
		return ExecutionResult{}, executionError
	}

	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode == 0 {
		executor.logger.Debug(
			executor.formatter.BuildSuccessMessage(command),
			zap.String(logFieldCommandNameConstant, string(command.Name)),
		)
	} else {
		executor.logger.Debug(
			executor.formatter.BuildFailureMessage(command, executionResult),
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
		)
	}

	return executionResult, nil
}

// Start spawns command and returns as soon as the process exists.
func (executor *ShellExecutor) Start(command ShellCommand) error {
	executor.observer.CommandStarted(command)
	executor.logger.Debug(
		executor.formatter.BuildStartedMessage(command),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.Bool(logFieldDetachedConstant, true),
	)

	if startError := executor.runner.Start(command); startError != nil {
		executor.observer.CommandExecutionFailed(command, startError)
		executor.logger.Debug(
			executor.formatter.BuildExecutionFailureMessage(command, startError),
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Error(startError),
		)
		return startError
	}

	executor.observer.CommandSpawned(command)
	executor.logger.Debug(
		executor.formatter.BuildSpawnedMessage(command),
		zap.String(logFieldCommandNameConstant, string(command.Name)),
	)
	return nil
}
