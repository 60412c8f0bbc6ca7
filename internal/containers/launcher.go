package containers

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/dockbash/internal/execshell"
)

const (
	launchFailureTemplateConstant  = "unable to open terminal for %s: %w"
	launchRequestedMessageConstant = "terminal session requested"
	logFieldTerminalConstant       = "terminal"
)

// Launcher opens terminal windows attached to a shell inside a container.
type Launcher struct {
	executor CommandExecutor
	logger   *zap.Logger
	engine   string
	shell    string
	terminal TerminalConfiguration
}

// NewLauncher builds a Launcher from the engine and terminal configuration.
func NewLauncher(executor CommandExecutor, logger *zap.Logger, engineConfiguration EngineConfiguration, terminalConfiguration TerminalConfiguration) (*Launcher, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sanitizedEngine := engineConfiguration.Sanitize()
	return &Launcher{
		executor: executor,
		logger:   logger,
		engine:   sanitizedEngine.Executable,
		shell:    sanitizedEngine.Shell,
		terminal: terminalConfiguration.Sanitize(),
	}, nil
}

// Command builds the terminal invocation for container without running it.
func (launcher *Launcher) Command(container Container) execshell.ShellCommand {
	arguments := make([]string, 0, 8+len(launcher.terminal.Wrapper))
	if len(launcher.terminal.TitleFlag) > 0 {
		arguments = append(arguments, launcher.terminal.TitleFlag, container.Name)
	}
	if len(launcher.terminal.ExecFlag) > 0 {
		arguments = append(arguments, launcher.terminal.ExecFlag)
	}
	arguments = append(arguments, launcher.terminal.Wrapper...)
	arguments = append(arguments, launcher.engine, engineExecSubcommandConstant, engineInteractiveTTYFlag, container.ID, launcher.shell)

	return execshell.ShellCommand{
		Name:    execshell.CommandName(launcher.terminal.Executable),
		Details: execshell.CommandDetails{Arguments: arguments},
	}
}

// Launch spawns the terminal and returns without waiting for it. The session
// outlives the caller.
func (launcher *Launcher) Launch(container Container) error {
	command := launcher.Command(container)
	if startError := launcher.executor.Start(command); startError != nil {
		return fmt.Errorf(launchFailureTemplateConstant, container.Name, startError)
	}

	launcher.logger.Info(
		launchRequestedMessageConstant,
		zap.String(logFieldContainerIDConstant, container.ID),
		zap.String(logFieldContainerNameConstant, container.Name),
		zap.String(logFieldTerminalConstant, launcher.terminal.Executable),
	)
	return nil
}
