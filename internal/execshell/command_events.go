package execshell

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that a waited command finished and supplies the result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandSpawned notifies observers that a fire-and-forget command is running on its own.
	CommandSpawned(command ShellCommand)
	// CommandExecutionFailed reports failures prior to receiving an execution result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandSpawned(ShellCommand) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
