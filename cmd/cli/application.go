package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/dockbash/internal/containers"
	"github.com/temirov/dockbash/internal/shellpicker"
	"github.com/temirov/dockbash/internal/utils"
	"github.com/temirov/dockbash/internal/utils/flags"
)

const (
	applicationNameConstant                 = "dockbash"
	applicationShortDescriptionConstant     = "Open a terminal with a shell inside a running container"
	applicationLongDescriptionConstant      = "dockbash lists running containers, keeps those that can run the shell, and opens a terminal window attached to the one you pick."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	engineFlagNameConstant                  = "engine"
	engineFlagUsageConstant                 = "Container engine executable (docker or a CLI-compatible engine)."
	shellFlagNameConstant                   = "shell"
	shellFlagUsageConstant                  = "Shell to probe for and open inside the container."
	probeConcurrencyFlagNameConstant        = "probe-concurrency"
	probeConcurrencyFlagUsageConstant       = "Maximum number of shell probes running at once."
	timeoutFlagNameConstant                 = "timeout"
	timeoutFlagUsageConstant                = "Timeout for each engine command; 0 disables it."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "DOCKBASH"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	userConfigurationDirectoryNameConstant  = ".dockbash"
	defaultConfigurationSearchPathConstant  = "."
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationEngineFieldConstant        = "engine"
	configurationTerminalFieldConstant      = "terminal"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration   `mapstructure:"common"`
	Engine   containers.EngineConfiguration   `mapstructure:"engine"`
	Terminal containers.TerminalConfiguration `mapstructure:"terminal"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand               *cobra.Command
	configurationLoader       *utils.ConfigurationLoader
	loggerFactory             *utils.LoggerFactory
	homeExpander              *utils.HomeExpander
	logger                    *zap.Logger
	configuration             ApplicationConfiguration
	configurationMetadata     utils.LoadedConfiguration
	shellPickerBuilder        *shellpicker.CommandBuilder
	configurationFilePath     string
	logLevelFlagValue         string
	logFormatFlagValue        string
	engineFlagValue           string
	shellFlagValue            string
	probeConcurrencyFlagValue int
	timeoutFlagValue          time.Duration
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	homeExpander := utils.NewHomeExpander()
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		homeExpander.SearchPaths(defaultConfigurationSearchPathConstant, userConfigurationDirectoryNameConstant),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		homeExpander:        homeExpander,
		logger:              zap.NewNop(),
	}

	application.shellPickerBuilder = &shellpicker.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider:        application.shellPickerConfiguration,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       resolveVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: application.shellPickerBuilder.Run,
	}
	cobraCommand.SetVersionTemplate(versionTemplateConstant)

	defaultEngineConfiguration := containers.DefaultEngineConfiguration()
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(utils.LogLevelError), utils.LogLevels, logLevelFlagUsageConstant),
	)
	persistentFlags.StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flags.FormatChoiceUsage(string(utils.LogFormatConsole), utils.LogFormats, logFormatFlagUsageConstant),
	)
	persistentFlags.StringVar(&application.engineFlagValue, engineFlagNameConstant, defaultEngineConfiguration.Executable, engineFlagUsageConstant)
	persistentFlags.StringVar(&application.shellFlagValue, shellFlagNameConstant, defaultEngineConfiguration.Shell, shellFlagUsageConstant)
	persistentFlags.IntVar(&application.probeConcurrencyFlagValue, probeConcurrencyFlagNameConstant, defaultEngineConfiguration.ProbeConcurrency, probeConcurrencyFlagUsageConstant)
	persistentFlags.DurationVar(&application.timeoutFlagValue, timeoutFlagNameConstant, defaultEngineConfiguration.CommandTimeout, timeoutFlagUsageConstant)

	listCommand, listBuildError := application.shellPickerBuilder.BuildListCommand()
	if listBuildError == nil {
		cobraCommand.AddCommand(listCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
// An interrupt cancels engine commands that are still running.
func (application *Application) Execute() error {
	executionContext, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	executionError := application.rootCommand.ExecuteContext(executionContext)
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range shellpicker.DefaultConfigurationValues() {
		defaultValues[configurationKey] = configurationValue
	}

	configurationFilePath := application.homeExpander.Expand(strings.TrimSpace(application.configurationFilePath))
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration
	application.applyFlagOverrides(command)

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationEngineFieldConstant, application.configuration.Engine.Executable),
		zap.String(configurationTerminalFieldConstant, application.configuration.Terminal.Executable),
	)

	return nil
}

// applyFlagOverrides gives explicitly set flags precedence over every configuration source.
func (application *Application) applyFlagOverrides(command *cobra.Command) {
	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, engineFlagNameConstant) {
		application.configuration.Engine.Executable = application.engineFlagValue
	}
	if application.persistentFlagChanged(command, shellFlagNameConstant) {
		application.configuration.Engine.Shell = application.shellFlagValue
	}
	if application.persistentFlagChanged(command, probeConcurrencyFlagNameConstant) {
		application.configuration.Engine.ProbeConcurrency = application.probeConcurrencyFlagValue
	}
	if application.persistentFlagChanged(command, timeoutFlagNameConstant) {
		application.configuration.Engine.CommandTimeout = application.timeoutFlagValue
	}
}

func (application *Application) shellPickerConfiguration() shellpicker.Configuration {
	return shellpicker.Configuration{
		Engine:   application.configuration.Engine,
		Terminal: application.configuration.Terminal,
	}
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
