package containers

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/dockbash/internal/execshell"
)

const (
	engineListSubcommandConstant  = "ps"
	engineFormatFlagConstant      = "--format"
	listingFormatTemplateConstant = "{{.ID}};{{.Names}};{{.Image}}"
	listingFieldSeparatorConstant = ";"
	listingFieldCountConstant     = 3
	listingLineSeparatorConstant  = "\n"
	carriageReturnConstant        = "\r"
)

// Lister enumerates running containers through the engine CLI.
type Lister struct {
	executor CommandExecutor
	engine   execshell.CommandName
}

// NewLister builds a Lister that runs engine through executor.
func NewLister(executor CommandExecutor, configuration EngineConfiguration) (*Lister, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	sanitized := configuration.Sanitize()
	return &Lister{executor: executor, engine: execshell.CommandName(sanitized.Executable)}, nil
}

// ListContainers returns the running containers in the engine's listing order.
// All failures are reported as ListError.
func (lister *Lister) ListContainers(executionContext context.Context) ([]Container, error) {
	command := execshell.ShellCommand{
		Name: lister.engine,
		Details: execshell.CommandDetails{
			Arguments: []string{engineListSubcommandConstant, engineFormatFlagConstant, listingFormatTemplateConstant},
		},
	}

	result, executionError := lister.executor.Execute(executionContext, command)
	if executionError != nil {
		if errors.Is(executionError, execshell.ErrExecutableNotFound) {
			return nil, ListError{Kind: ListErrorEngineNotFound, Engine: string(lister.engine), Cause: executionError}
		}
		return nil, ListError{Kind: ListErrorSpawn, Engine: string(lister.engine), Cause: executionError}
	}

	// The engine reports problems such as an unreachable daemon on standard
	// error, sometimes with a zero exit code.
	if len(result.StandardError) > 0 {
		return nil, ListError{Kind: ListErrorEngineReported, Engine: string(lister.engine), Message: result.StandardError}
	}
	if result.ExitCode != 0 {
		return nil, ListError{
			Kind:    ListErrorEngineReported,
			Engine:  string(lister.engine),
			Message: describeExitCode(string(lister.engine), result.ExitCode),
		}
	}

	return ParseListing(string(lister.engine), result.StandardOutput)
}

// ParseListing converts "id;name;image" lines into containers. Any line that
// does not hold exactly three non-empty fields fails the whole listing.
func ParseListing(engine string, output string) ([]Container, error) {
	trimmedOutput := strings.TrimSpace(output)
	if len(trimmedOutput) == 0 {
		return []Container{}, nil
	}

	lines := strings.Split(trimmedOutput, listingLineSeparatorConstant)
	parsedContainers := make([]Container, 0, len(lines))
	for _, line := range lines {
		rawLine := strings.TrimSuffix(line, carriageReturnConstant)
		fields := strings.Split(rawLine, listingFieldSeparatorConstant)
		if len(fields) != listingFieldCountConstant {
			return nil, ListError{Kind: ListErrorMalformedLine, Engine: engine, Line: rawLine}
		}
		for _, field := range fields {
			if len(field) == 0 {
				return nil, ListError{Kind: ListErrorMalformedLine, Engine: engine, Line: rawLine}
			}
		}
		parsedContainers = append(parsedContainers, Container{ID: fields[0], Name: fields[1], Image: fields[2]})
	}
	return parsedContainers, nil
}
