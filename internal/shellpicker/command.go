package shellpicker

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dockbash/internal/containers"
	"github.com/temirov/dockbash/internal/execshell"
	"github.com/temirov/dockbash/internal/selection"
	"github.com/temirov/dockbash/internal/ui"
	"github.com/temirov/dockbash/internal/utils/flags"
)

const (
	listCommandUseConstant              = "list"
	listCommandShortDescriptionConstant = "Print running containers that can run the shell"
	listCommandLongDescriptionConstant  = "list runs the same listing and shell probes as the picker and prints the result instead of presenting it."
	flagOutputNameConstant              = "output"
	flagOutputShorthandConstant         = "o"
	flagOutputDescriptionConstant       = "Output format."
	unexpectedArgumentsMessageConstant  = "dockbash does not accept positional arguments"
	pickerFinishedMessageConstant       = "picker finished"
	logFieldOutcomeConstant             = "outcome"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current picker configuration.
type ConfigurationProvider func() Configuration

// HumanReadableLoggingProvider reports whether command events should be logged for people.
type HumanReadableLoggingProvider func() bool

// CommandBuilder runs the picker for the root command and builds the list subcommand.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	Executor                     containers.CommandExecutor
	Presenter                    EntryPresenter
}

// Run is the root command action: list, probe, present and launch.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()
	executor, executorError := builder.resolveExecutor(logger, configuration)
	if executorError != nil {
		return executorError
	}

	lister, prober, listingError := buildListing(executor, logger, configuration)
	if listingError != nil {
		return listingError
	}
	launcher, launcherError := containers.NewLauncher(executor, logger, configuration.Engine, configuration.Terminal)
	if launcherError != nil {
		return launcherError
	}

	service, serviceError := NewService(logger, lister, prober, builder.resolvePresenter(command), launcher)
	if serviceError != nil {
		return serviceError
	}

	outcome, runError := service.Run(commandContext(command))
	logger.Debug(pickerFinishedMessageConstant, zap.Stringer(logFieldOutcomeConstant, outcome))
	return runError
}

// BuildListCommand constructs the list subcommand.
func (builder *CommandBuilder) BuildListCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		Long:  listCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runList,
	}

	command.Flags().StringP(
		flagOutputNameConstant,
		flagOutputShorthandConstant,
		OutputFormatTable,
		flags.FormatChoiceUsage(OutputFormatTable, OutputFormats, flagOutputDescriptionConstant),
	)

	return command, nil
}

func (builder *CommandBuilder) runList(command *cobra.Command, arguments []string) error {
	outputValue, _ := command.Flags().GetString(flagOutputNameConstant)
	outputFormat, formatError := flags.ParseChoice(outputValue, OutputFormatTable, OutputFormats)
	if formatError != nil {
		return formatError
	}

	logger := builder.resolveLogger()
	configuration := builder.resolveConfiguration()
	executor, executorError := builder.resolveExecutor(logger, configuration)
	if executorError != nil {
		return executorError
	}

	lister, prober, listingError := buildListing(executor, logger, configuration)
	if listingError != nil {
		return listingError
	}

	_, shellContainers, collectError := collectShellContainers(commandContext(command), logger, lister, prober)
	if collectError != nil {
		return collectError
	}

	output := command.OutOrStdout()
	if outputFormat == OutputFormatYAML {
		return RenderYAML(output, shellContainers)
	}
	return RenderTable(output, shellContainers, selection.IsTerminal(output))
}

func commandContext(command *cobra.Command) context.Context {
	if executionContext := command.Context(); executionContext != nil {
		return executionContext
	}
	return context.Background()
}

func buildListing(executor containers.CommandExecutor, logger *zap.Logger, configuration Configuration) (*containers.Lister, *containers.Prober, error) {
	lister, listerError := containers.NewLister(executor, configuration.Engine)
	if listerError != nil {
		return nil, nil, listerError
	}
	prober, proberError := containers.NewProber(executor, logger, configuration.Engine)
	if proberError != nil {
		return nil, nil, proberError
	}
	return lister, prober, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger, configuration Configuration) (containers.CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	executorOptions := []execshell.ExecutorOption{
		execshell.WithCommandTimeout(configuration.Engine.Sanitize().CommandTimeout),
	}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), executorOptions...)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolvePresenter(command *cobra.Command) EntryPresenter {
	if builder.Presenter != nil {
		return builder.Presenter
	}
	return selection.NewConsolePresenter(command.InOrStdin(), command.OutOrStdout())
}
