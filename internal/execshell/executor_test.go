package execshell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/dockbash/internal/execshell"
)

const (
	testExecutionSuccessCaseNameConstant         = "success"
	testExecutionFailureCaseNameConstant         = "failure_exit_code"
	testExecutionRunnerErrorCaseNameConstant     = "runner_error"
	testLoggerInitializationCaseNameConstant     = "logger_validation"
	testRunnerInitializationCaseNameConstant     = "runner_validation"
	testSuccessfulInitializationCaseNameConstant = "successful_initialization"
	testStandardErrorOutputConstant              = "Error response from daemon: container not running"
	testContainerIdentifierConstant              = "a1b2c3"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	startError       error
	recordedCommands []execshell.ShellCommand
	startedCommands  []execshell.ShellCommand
	recordedDeadline bool
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	_, runner.recordedDeadline = executionContext.Deadline()
	return runner.executionResult, runner.executionError
}

func (runner *recordingCommandRunner) Start(command execshell.ShellCommand) error {
	runner.startedCommands = append(runner.startedCommands, command)
	return runner.startError
}

type recordingObserver struct {
	events []string
}

func (recorder *recordingObserver) CommandStarted(execshell.ShellCommand) {
	recorder.events = append(recorder.events, "started")
}

func (recorder *recordingObserver) CommandCompleted(execshell.ShellCommand, execshell.ExecutionResult) {
	recorder.events = append(recorder.events, "completed")
}

func (recorder *recordingObserver) CommandSpawned(execshell.ShellCommand) {
	recorder.events = append(recorder.events, "spawned")
}

func (recorder *recordingObserver) CommandExecutionFailed(execshell.ShellCommand, error) {
	recorder.events = append(recorder.events, "failed")
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerInitializationCaseNameConstant,
			logger:      nil,
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        testRunnerInitializationCaseNameConstant,
			logger:      zap.NewNop(),
			runner:      nil,
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:          testSuccessfulInitializationCaseNameConstant,
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
			} else {
				require.Error(testInstance, creationError)
				require.ErrorIs(testInstance, creationError, testCase.expectError)
			}
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	runnerFailure := execshell.SpawnError{Command: execshell.CommandDocker, Cause: errors.New("permission denied")}

	testCases := []struct {
		name             string
		runnerResult     execshell.ExecutionResult
		runnerError      error
		expectedError    error
		expectedEvents   []string
		expectedLogCount int
	}{
		{
			name: testExecutionSuccessCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardOutput: "GNU bash, version 5.2.15",
				ExitCode:       0,
			},
			expectedEvents:   []string{"started", "completed"},
			expectedLogCount: 2,
		},
		{
			name: testExecutionFailureCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardError: testStandardErrorOutputConstant,
				ExitCode:      1,
			},
			expectedEvents:   []string{"started", "completed"},
			expectedLogCount: 2,
		},
		{
			name:             testExecutionRunnerErrorCaseNameConstant,
			runnerError:      runnerFailure,
			expectedError:    runnerFailure,
			expectedEvents:   []string{"started", "failed"},
			expectedLogCount: 2,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			logger := zap.New(observerCore)

			recordingRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}
			eventRecorder := &recordingObserver{}

			shellExecutor, creationError := execshell.NewShellExecutor(logger, recordingRunner, execshell.WithCommandEventObserver(eventRecorder))
			require.NoError(testInstance, creationError)

			command := execshell.ShellCommand{
				Name:    execshell.CommandDocker,
				Details: execshell.CommandDetails{Arguments: []string{"exec", "-it", testContainerIdentifierConstant, "bash", "--version"}},
			}
			executionResult, executionError := shellExecutor.Execute(context.Background(), command)

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, executionError, testCase.expectedError)
				require.Empty(testInstance, executionResult.StandardOutput)
			} else {
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testCase.runnerResult, executionResult)
			}

			require.Equal(testInstance, testCase.expectedEvents, eventRecorder.events)
			require.Len(testInstance, observerLogs.All(), testCase.expectedLogCount)
		})
	}
}

func TestShellExecutorAppliesCommandTimeout(testInstance *testing.T) {
	testCases := []struct {
		name             string
		timeout          time.Duration
		expectedDeadline bool
	}{
		{name: "timeout_configured", timeout: time.Second, expectedDeadline: true},
		{name: "timeout_disabled", timeout: 0, expectedDeadline: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			recordingRunner := &recordingCommandRunner{}
			shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner, execshell.WithCommandTimeout(testCase.timeout))
			require.NoError(testInstance, creationError)

			_, executionError := shellExecutor.Execute(context.Background(), execshell.ShellCommand{Name: execshell.CommandDocker})
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedDeadline, recordingRunner.recordedDeadline)
		})
	}
}

func TestShellExecutorStartBehavior(testInstance *testing.T) {
	testCases := []struct {
		name           string
		startError     error
		expectedEvents []string
	}{
		{
			name:           "spawned",
			expectedEvents: []string{"started", "spawned"},
		},
		{
			name:           "executable_missing",
			startError:     execshell.ExecutableNotFoundError{Executable: execshell.CommandXterm},
			expectedEvents: []string{"started", "failed"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			recordingRunner := &recordingCommandRunner{startError: testCase.startError}
			eventRecorder := &recordingObserver{}
			shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner, execshell.WithCommandEventObserver(eventRecorder))
			require.NoError(testInstance, creationError)

			command := execshell.ShellCommand{Name: execshell.CommandXterm, Details: execshell.CommandDetails{Arguments: []string{"-T", "web"}}}
			startError := shellExecutor.Start(command)

			if testCase.startError != nil {
				require.ErrorIs(testInstance, startError, execshell.ErrExecutableNotFound)
			} else {
				require.NoError(testInstance, startError)
			}
			require.Empty(testInstance, recordingRunner.recordedCommands)
			require.Equal(testInstance, []execshell.ShellCommand{command}, recordingRunner.startedCommands)
			require.Equal(testInstance, testCase.expectedEvents, eventRecorder.events)
		})
	}
}
