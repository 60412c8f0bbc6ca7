package shellpicker

import (
	"github.com/temirov/dockbash/internal/containers"
)

const (
	engineConfigurationKeyConstant   = "engine"
	terminalConfigurationKeyConstant = "terminal"
)

// Configuration groups the engine and terminal settings of the picker.
type Configuration struct {
	Engine   containers.EngineConfiguration   `mapstructure:"engine"`
	Terminal containers.TerminalConfiguration `mapstructure:"terminal"`
}

// DefaultConfiguration returns docker, bash and xterm defaults.
func DefaultConfiguration() Configuration {
	return Configuration{
		Engine:   containers.DefaultEngineConfiguration(),
		Terminal: containers.DefaultTerminalConfiguration(),
	}
}

// DefaultConfigurationValues exposes the defaults keyed for the configuration loader.
func DefaultConfigurationValues() map[string]any {
	values := containers.DefaultEngineConfigurationValues(engineConfigurationKeyConstant)
	for key, value := range containers.DefaultTerminalConfigurationValues(terminalConfigurationKeyConstant) {
		values[key] = value
	}
	return values
}
