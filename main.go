package main

import (
	"os"

	"github.com/temirov/dockbash/cmd/cli"
	"github.com/temirov/dockbash/internal/ui"
)

const failureExitCodeConstant = 1

// main runs the dockbash picker and exits non-zero after reporting a fatal error.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		ui.NewErrorNotifier(os.Stderr).Notify(executionError)
		os.Exit(failureExitCodeConstant)
	}
}
