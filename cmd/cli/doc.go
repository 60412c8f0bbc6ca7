// Package cli constructs the dockbash command-line interface. The root command
// runs the container shell picker and the list subcommand prints the
// containers the picker would offer. Configuration comes from embedded
// defaults, an optional config.yaml, DOCKBASH_ environment variables and flags.
package cli
