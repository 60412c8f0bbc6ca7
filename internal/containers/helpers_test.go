package containers_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/temirov/dockbash/internal/execshell"
)

type scriptedResponse struct {
	result execshell.ExecutionResult
	err    error
	delay  time.Duration
}

// fakeCommandExecutor answers commands by their joined argument vector and
// records every call. It is safe for concurrent use.
type fakeCommandExecutor struct {
	mutex            sync.Mutex
	responses        map[string]scriptedResponse
	fallback         scriptedResponse
	executedCommands []execshell.ShellCommand
	startedCommands  []execshell.ShellCommand
	startError       error
}

func newFakeCommandExecutor() *fakeCommandExecutor {
	return &fakeCommandExecutor{responses: map[string]scriptedResponse{}}
}

func (executor *fakeCommandExecutor) register(arguments []string, response scriptedResponse) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	executor.responses[strings.Join(arguments, " ")] = response
}

func (executor *fakeCommandExecutor) Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.mutex.Lock()
	executor.executedCommands = append(executor.executedCommands, command)
	response, registered := executor.responses[strings.Join(command.Details.Arguments, " ")]
	if !registered {
		response = executor.fallback
	}
	executor.mutex.Unlock()

	if response.delay > 0 {
		time.Sleep(response.delay)
	}
	return response.result, response.err
}

func (executor *fakeCommandExecutor) Start(command execshell.ShellCommand) error {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	executor.startedCommands = append(executor.startedCommands, command)
	return executor.startError
}

func probeArguments(containerIdentifier string) []string {
	return []string{"exec", "-it", containerIdentifier, "bash", "--version"}
}
