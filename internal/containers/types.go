package containers

import (
	"context"

	"github.com/temirov/dockbash/internal/execshell"
)

// Container is a running container as reported by the engine listing.
type Container struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

// CommandExecutor runs engine and terminal commands.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
	Start(command execshell.ShellCommand) error
}
