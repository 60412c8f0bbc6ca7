package containers

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	engineNotFoundTemplateConstant       = "%s not found."
	engineReportedTemplateConstant       = "%s reported an error: %s"
	engineExitCodeTemplateConstant       = "%s exited with code %d"
	malformedLineTemplateConstant        = "unexpected %s listing line %q: want %d fields separated by %q"
	spawnFailureTemplateConstant         = "unable to list containers: %v"
	unknownListErrorTemplateConstant     = "container listing failed: %s"
	defaultEngineDisplayNameConstant     = "Container engine"
	executorNotConfiguredMessageConstant = "command executor not configured"
)

// ErrExecutorNotConfigured indicates a component was built without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ListErrorKind classifies container listing failures.
type ListErrorKind int

// Listing failure kinds.
const (
	// ListErrorEngineNotFound means the engine executable is not on the search path.
	ListErrorEngineNotFound ListErrorKind = iota + 1
	// ListErrorEngineReported means the engine ran but wrote to standard error or exited non-zero.
	ListErrorEngineReported
	// ListErrorMalformedLine means a listing line did not split into the expected fields.
	ListErrorMalformedLine
	// ListErrorSpawn means the engine could not be run for another reason.
	ListErrorSpawn
)

// ListError is the single error type returned by Lister.ListContainers.
type ListError struct {
	Kind   ListErrorKind
	Engine string
	// Message holds the engine's standard error verbatim for ListErrorEngineReported.
	Message string
	// Line holds the offending raw line for ListErrorMalformedLine.
	Line  string
	Cause error
}

// Error describes the failure for logs.
func (listError ListError) Error() string {
	switch listError.Kind {
	case ListErrorEngineNotFound:
		return listError.UserMessage()
	case ListErrorEngineReported:
		return fmt.Sprintf(engineReportedTemplateConstant, listError.Engine, strings.TrimSpace(listError.Message))
	case ListErrorMalformedLine:
		return fmt.Sprintf(malformedLineTemplateConstant, listError.Engine, listError.Line, listingFieldCountConstant, listingFieldSeparatorConstant)
	case ListErrorSpawn:
		return fmt.Sprintf(spawnFailureTemplateConstant, listError.Cause)
	default:
		return fmt.Sprintf(unknownListErrorTemplateConstant, listError.Message)
	}
}

// UserMessage is the text shown to the user when the failure is fatal.
// Engine-reported errors are surfaced verbatim.
func (listError ListError) UserMessage() string {
	switch listError.Kind {
	case ListErrorEngineNotFound:
		return fmt.Sprintf(engineNotFoundTemplateConstant, displayEngineName(listError.Engine))
	case ListErrorEngineReported:
		return listError.Message
	default:
		return listError.Error()
	}
}

// Unwrap exposes the underlying runner failure, when there is one.
func (listError ListError) Unwrap() error {
	return listError.Cause
}

// displayEngineName capitalizes the executable name: docker becomes Docker.
func displayEngineName(engine string) string {
	trimmedEngine := strings.TrimSpace(engine)
	if len(trimmedEngine) == 0 {
		return defaultEngineDisplayNameConstant
	}
	firstRune, runeSize := utf8.DecodeRuneInString(trimmedEngine)
	return string(unicode.ToUpper(firstRune)) + trimmedEngine[runeSize:]
}

func describeExitCode(engine string, exitCode int) string {
	return fmt.Sprintf(engineExitCodeTemplateConstant, engine, exitCode)
}
