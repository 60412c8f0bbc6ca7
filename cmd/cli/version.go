package cli

import "runtime/debug"

const (
	developmentVersionConstant = "(devel)"
	versionTemplateConstant    = "{{.Name}} version: {{.Version}}\n"
)

// Version is set at build time with -ldflags "-X github.com/temirov/dockbash/cmd/cli.Version=<tag>".
var Version string

func resolveVersion() string {
	if len(Version) > 0 {
		return Version
	}
	buildInformation, available := debug.ReadBuildInfo()
	if !available || len(buildInformation.Main.Version) == 0 {
		return developmentVersionConstant
	}
	return buildInformation.Main.Version
}
