package containers_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/dockbash/internal/containers"
	"github.com/temirov/dockbash/internal/execshell"
)

func TestLauncherCommand(testInstance *testing.T) {
	testCases := []struct {
		name              string
		terminal          containers.TerminalConfiguration
		container         containers.Container
		expectedName      execshell.CommandName
		expectedArguments []string
	}{
		{
			name:         "default_terminal",
			terminal:     containers.DefaultTerminalConfiguration(),
			container:    containers.Container{ID: "a1", Name: "web", Image: "nginx"},
			expectedName: execshell.CommandXterm,
			expectedArguments: []string{
				"-T", "web", "-e", "docker", "exec", "-it", "a1", "bash",
			},
		},
		{
			name: "mintty_with_winpty_wrapper",
			terminal: containers.TerminalConfiguration{
				Executable: "mintty",
				TitleFlag:  "-t",
				ExecFlag:   "-e",
				Wrapper:    []string{"winpty"},
			},
			container:    containers.Container{ID: "b2", Name: "db", Image: "postgres"},
			expectedName: execshell.CommandName("mintty"),
			expectedArguments: []string{
				"-t", "db", "-e", "winpty", "docker", "exec", "-it", "b2", "bash",
			},
		},
		{
			name: "terminal_without_title_flag",
			terminal: containers.TerminalConfiguration{
				Executable: "gnome-terminal",
				ExecFlag:   "--",
			},
			container:    containers.Container{ID: "c3", Name: "tools", Image: "alpine"},
			expectedName: execshell.CommandName("gnome-terminal"),
			expectedArguments: []string{
				"--", "docker", "exec", "-it", "c3", "bash",
			},
		},
		{
			name:         "name_with_spaces_and_quotes_is_a_single_argument",
			terminal:     containers.DefaultTerminalConfiguration(),
			container:    containers.Container{ID: "d4", Name: `my "odd" app`, Image: "node"},
			expectedName: execshell.CommandXterm,
			expectedArguments: []string{
				"-T", `my "odd" app`, "-e", "docker", "exec", "-it", "d4", "bash",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			launcher, launcherError := containers.NewLauncher(newFakeCommandExecutor(), zap.NewNop(), containers.DefaultEngineConfiguration(), testCase.terminal)
			require.NoError(testInstance, launcherError)

			command := launcher.Command(testCase.container)
			require.Equal(testInstance, testCase.expectedName, command.Name)
			require.Equal(testInstance, testCase.expectedArguments, command.Details.Arguments)
			require.False(testInstance, command.Details.AllocateTerminal)
		})
	}
}

func TestLauncherLaunchStartsWithoutWaiting(testInstance *testing.T) {
	executor := newFakeCommandExecutor()
	launcher, launcherError := containers.NewLauncher(executor, zap.NewNop(), containers.DefaultEngineConfiguration(), containers.DefaultTerminalConfiguration())
	require.NoError(testInstance, launcherError)

	container := containers.Container{ID: "a1", Name: "web", Image: "nginx"}
	require.NoError(testInstance, launcher.Launch(container))

	require.Empty(testInstance, executor.executedCommands)
	require.Len(testInstance, executor.startedCommands, 1)
	require.Equal(testInstance, launcher.Command(container), executor.startedCommands[0])
}

func TestLauncherLaunchWrapsStartFailure(testInstance *testing.T) {
	executor := newFakeCommandExecutor()
	executor.startError = execshell.ExecutableNotFoundError{Executable: execshell.CommandXterm}

	launcher, launcherError := containers.NewLauncher(executor, zap.NewNop(), containers.DefaultEngineConfiguration(), containers.DefaultTerminalConfiguration())
	require.NoError(testInstance, launcherError)

	launchError := launcher.Launch(containers.Container{ID: "a1", Name: "web", Image: "nginx"})
	require.Error(testInstance, launchError)
	require.True(testInstance, errors.Is(launchError, execshell.ErrExecutableNotFound))
	require.Contains(testInstance, launchError.Error(), "unable to open terminal for web")
}

func TestNewLauncherRequiresExecutor(testInstance *testing.T) {
	_, launcherError := containers.NewLauncher(nil, zap.NewNop(), containers.DefaultEngineConfiguration(), containers.DefaultTerminalConfiguration())
	require.ErrorIs(testInstance, launcherError, containers.ErrExecutorNotConfigured)
}
