package containers

import (
	"strings"
	"time"

	"github.com/temirov/dockbash/internal/execshell"
)

const (
	defaultShellNameConstant        = "bash"
	defaultProbeConcurrencyConstant = 4
	defaultCommandTimeoutConstant   = 30 * time.Second
	defaultTerminalTitleFlag        = "-T"
	defaultTerminalExecFlag         = "-e"
	configurationKeySeparator       = "."
)

// EngineConfiguration selects the container engine CLI and how it is probed.
type EngineConfiguration struct {
	Executable       string        `mapstructure:"executable"`
	Shell            string        `mapstructure:"shell"`
	ProbeConcurrency int           `mapstructure:"probe_concurrency"`
	CommandTimeout   time.Duration `mapstructure:"command_timeout"`
}

// TerminalConfiguration describes the terminal emulator invocation used for sessions.
type TerminalConfiguration struct {
	Executable string   `mapstructure:"executable"`
	TitleFlag  string   `mapstructure:"title_flag"`
	ExecFlag   string   `mapstructure:"exec_flag"`
	Wrapper    []string `mapstructure:"wrapper"`
}

// DefaultEngineConfiguration returns the docker/bash defaults.
func DefaultEngineConfiguration() EngineConfiguration {
	return EngineConfiguration{
		Executable:       string(execshell.CommandDocker),
		Shell:            defaultShellNameConstant,
		ProbeConcurrency: defaultProbeConcurrencyConstant,
		CommandTimeout:   defaultCommandTimeoutConstant,
	}
}

// DefaultTerminalConfiguration returns an xterm invocation.
func DefaultTerminalConfiguration() TerminalConfiguration {
	return TerminalConfiguration{
		Executable: string(execshell.CommandXterm),
		TitleFlag:  defaultTerminalTitleFlag,
		ExecFlag:   defaultTerminalExecFlag,
		Wrapper:    []string{},
	}
}

// DefaultEngineConfigurationValues exposes engine defaults keyed for the configuration loader.
func DefaultEngineConfigurationValues(prefix string) map[string]any {
	defaults := DefaultEngineConfiguration()
	return map[string]any{
		joinConfigurationKey(prefix, "executable"):        defaults.Executable,
		joinConfigurationKey(prefix, "shell"):             defaults.Shell,
		joinConfigurationKey(prefix, "probe_concurrency"): defaults.ProbeConcurrency,
		joinConfigurationKey(prefix, "command_timeout"):   defaults.CommandTimeout.String(),
	}
}

// DefaultTerminalConfigurationValues exposes terminal defaults keyed for the configuration loader.
func DefaultTerminalConfigurationValues(prefix string) map[string]any {
	defaults := DefaultTerminalConfiguration()
	return map[string]any{
		joinConfigurationKey(prefix, "executable"): defaults.Executable,
		joinConfigurationKey(prefix, "title_flag"): defaults.TitleFlag,
		joinConfigurationKey(prefix, "exec_flag"):  defaults.ExecFlag,
		joinConfigurationKey(prefix, "wrapper"):    defaults.Wrapper,
	}
}

// Sanitize trims values and falls back to defaults for empty required fields.
func (configuration EngineConfiguration) Sanitize() EngineConfiguration {
	defaults := DefaultEngineConfiguration()
	sanitized := configuration

	sanitized.Executable = strings.TrimSpace(configuration.Executable)
	if len(sanitized.Executable) == 0 {
		sanitized.Executable = defaults.Executable
	}
	sanitized.Shell = strings.TrimSpace(configuration.Shell)
	if len(sanitized.Shell) == 0 {
		sanitized.Shell = defaults.Shell
	}
	if sanitized.ProbeConcurrency < 1 {
		sanitized.ProbeConcurrency = 1
	}
	if sanitized.CommandTimeout < 0 {
		sanitized.CommandTimeout = 0
	}
	return sanitized
}

// Sanitize trims values and falls back to defaults for an empty executable.
// Empty flags are kept empty so terminals without a title option can be used.
func (configuration TerminalConfiguration) Sanitize() TerminalConfiguration {
	sanitized := configuration

	sanitized.Executable = strings.TrimSpace(configuration.Executable)
	if len(sanitized.Executable) == 0 {
		sanitized.Executable = DefaultTerminalConfiguration().Executable
	}
	sanitized.TitleFlag = strings.TrimSpace(configuration.TitleFlag)
	sanitized.ExecFlag = strings.TrimSpace(configuration.ExecFlag)

	wrapper := make([]string, 0, len(configuration.Wrapper))
	for _, wrapperArgument := range configuration.Wrapper {
		trimmedArgument := strings.TrimSpace(wrapperArgument)
		if len(trimmedArgument) == 0 {
			continue
		}
		wrapper = append(wrapper, trimmedArgument)
	}
	sanitized.Wrapper = wrapper
	return sanitized
}

func joinConfigurationKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparator + key
}
