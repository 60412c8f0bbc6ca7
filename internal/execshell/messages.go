package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
	messageStageSpawned
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	genericSpawnedTemplateConstant          = "Started %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	engineListSubcommandNameConstant = "ps"
	engineExecSubcommandNameConstant = "exec"
)

const (
	engineListStartTemplateConstant            = "Listing running containers with %s"
	engineListSuccessTemplateConstant          = "Listed running containers with %s"
	engineListFailureTemplateConstant          = "Failed to list running containers with %s (exit code %d%s)"
	engineListExecutionFailureTemplateConstant = "Unable to list running containers with %s: %s"
	engineExecStartTemplateConstant            = "Running %s in container %s"
	engineExecSuccessTemplateConstant          = "%s ran in container %s"
	engineExecFailureTemplateConstant          = "%s failed in container %s (exit code %d%s)"
	engineExecExecutionFailureTemplateConstant = "Unable to run %s in container %s: %s"
	engineExecSpawnedTemplateConstant          = "Attached %s to container %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// BuildSpawnedMessage formats the message describing a command left running on its own.
func (formatter CommandMessageFormatter) BuildSpawnedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSpawned)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case engineListSubcommandNameConstant:
		return formatter.describeEngineListMessage(command, result, failure, stage)
	case engineExecSubcommandNameConstant:
		return formatter.describeEngineExecMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeEngineListMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	engine := string(command.Name)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(engineListStartTemplateConstant, engine)
	case messageStageSuccess:
		return fmt.Sprintf(engineListSuccessTemplateConstant, engine)
	case messageStageFailure:
		return fmt.Sprintf(engineListFailureTemplateConstant, engine, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(engineListExecutionFailureTemplateConstant, engine, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeEngineExecMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	containerIdentifier, program := formatter.extractExecTarget(command.Details.Arguments[1:])
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(engineExecStartTemplateConstant, program, containerIdentifier)
	case messageStageSuccess:
		return fmt.Sprintf(engineExecSuccessTemplateConstant, program, containerIdentifier)
	case messageStageFailure:
		return fmt.Sprintf(engineExecFailureTemplateConstant, program, containerIdentifier, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(engineExecExecutionFailureTemplateConstant, program, containerIdentifier, formatter.describeFailure(failure))
	case messageStageSpawned:
		return fmt.Sprintf(engineExecSpawnedTemplateConstant, program, containerIdentifier)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

// extractExecTarget returns the container identifier and the program line that
// follow the exec subcommand flags.
func (formatter CommandMessageFormatter) extractExecTarget(arguments []string) (string, string) {
	for index, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		program := strings.Join(arguments[index+1:], commandArgumentsJoinSeparatorConstant)
		if len(strings.TrimSpace(program)) == 0 {
			program = fallbackUnknownValueLabelConstant
		}
		return trimmed, program
	}
	return fallbackUnknownValueLabelConstant, fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	case messageStageSpawned:
		return fmt.Sprintf(genericSpawnedTemplateConstant, commandLabel)
	default:
		return commandLabel
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{describeCommandName(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
