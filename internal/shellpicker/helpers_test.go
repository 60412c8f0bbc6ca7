package shellpicker_test

import (
	"context"
	"strings"
	"sync"

	"github.com/temirov/dockbash/internal/containers"
	"github.com/temirov/dockbash/internal/execshell"
	"github.com/temirov/dockbash/internal/selection"
)

const (
	testListingOutputConstant     = "a1;web;nginx\nb2;db;postgres\nc3;api;node\n"
	testBashVersionOutputConstant = "GNU bash, version 5.2.15(1)-release\r\n"
	testMissingShellMessage       = "OCI runtime exec failed: exec: \"bash\": executable file not found in $PATH\r\n"
)

var testListingArguments = []string{"ps", "--format", "{{.ID}};{{.Names}};{{.Image}}"}

type commandResponse struct {
	result execshell.ExecutionResult
	err    error
}

type fakeCommandExecutor struct {
	mutex            sync.Mutex
	responses        map[string]commandResponse
	executedCommands []execshell.ShellCommand
	startedCommands  []execshell.ShellCommand
	startError       error
}

func newFakeCommandExecutor() *fakeCommandExecutor {
	return &fakeCommandExecutor{responses: map[string]commandResponse{}}
}

func (executor *fakeCommandExecutor) register(arguments []string, response commandResponse) {
	executor.responses[strings.Join(arguments, " ")] = response
}

func (executor *fakeCommandExecutor) Execute(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	executor.executedCommands = append(executor.executedCommands, command)
	response := executor.responses[strings.Join(command.Details.Arguments, " ")]
	return response.result, response.err
}

func (executor *fakeCommandExecutor) Start(command execshell.ShellCommand) error {
	executor.mutex.Lock()
	defer executor.mutex.Unlock()
	executor.startedCommands = append(executor.startedCommands, command)
	return executor.startError
}

// newShellHostExecutor answers a listing of web, db and api where only db lacks bash.
func newShellHostExecutor() *fakeCommandExecutor {
	executor := newFakeCommandExecutor()
	executor.register(testListingArguments, commandResponse{result: execshell.ExecutionResult{StandardOutput: testListingOutputConstant}})
	executor.register(probeArguments("a1"), commandResponse{result: execshell.ExecutionResult{StandardOutput: testBashVersionOutputConstant}})
	executor.register(probeArguments("b2"), commandResponse{result: execshell.ExecutionResult{StandardOutput: testMissingShellMessage, ExitCode: 126}})
	executor.register(probeArguments("c3"), commandResponse{result: execshell.ExecutionResult{StandardOutput: testBashVersionOutputConstant}})
	return executor
}

func probeArguments(containerIdentifier string) []string {
	return []string{"exec", "-it", containerIdentifier, "bash", "--version"}
}

type stubLister struct {
	listed    []containers.Container
	listError error
}

func (lister stubLister) ListContainers(context.Context) ([]containers.Container, error) {
	return lister.listed, lister.listError
}

type stubProber struct {
	keep     map[string]bool
	received []containers.Container
}

func (prober *stubProber) FilterWithShell(_ context.Context, candidates []containers.Container) []containers.Container {
	prober.received = candidates
	survivors := make([]containers.Container, 0, len(candidates))
	for _, candidate := range candidates {
		if prober.keep[candidate.ID] {
			survivors = append(survivors, candidate)
		}
	}
	return survivors
}

type recordingPresenter struct {
	choose      func(entries []selection.Entry) (selection.Entry, bool, error)
	invocations int
	received    []selection.Entry
}

func (presenter *recordingPresenter) Choose(_ context.Context, entries []selection.Entry) (selection.Entry, bool, error) {
	presenter.invocations++
	presenter.received = entries
	if presenter.choose == nil {
		return selection.Entry{}, false, nil
	}
	return presenter.choose(entries)
}

type recordingLauncher struct {
	launched    []containers.Container
	launchError error
}

func (launcher *recordingLauncher) Launch(container containers.Container) error {
	launcher.launched = append(launcher.launched, container)
	return launcher.launchError
}
