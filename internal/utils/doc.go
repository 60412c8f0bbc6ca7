// Package utils exposes reusable helpers consumed by the CLI.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// environment variables through Viper, LoggerFactory builds zap loggers, and
// HomeExpander resolves home-relative configuration paths.
package utils
