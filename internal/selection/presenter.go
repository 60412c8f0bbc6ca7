package selection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	defaultMaximumAttemptsConstant    = 3
	entryLineTemplateConstant         = "%s %s\n"
	entryNumberTemplateConstant       = "%*d)"
	promptTemplateConstant            = "Select a container [1-%d], Enter or q to cancel: "
	invalidChoiceTemplateConstant     = "%q is not a number between 1 and %d\n"
	noEntriesMessageConstant          = "No running containers with a shell were found.\n"
	dismissKeywordConstant            = "q"
	promptWriteFailureTemplate        = "unable to write selection prompt: %w"
	promptReadFailureTemplate         = "unable to read selection: %w"
	readerNotConfiguredMessage        = "selection input not configured"
	selectionDecimalWidthBaseConstant = 10
)

// ErrInputNotConfigured indicates the presenter has nothing to read answers from.
var ErrInputNotConfigured = errors.New(readerNotConfiguredMessage)

// Entry is one selectable line.
type Entry struct {
	Label      string
	Identifier string
}

// PresenterOption customizes a ConsolePresenter.
type PresenterOption func(*ConsolePresenter)

// WithColor forces colored output on or off instead of detecting a terminal.
func WithColor(enabled bool) PresenterOption {
	return func(presenter *ConsolePresenter) {
		presenter.colorEnabled = enabled
	}
}

// WithMaximumAttempts bounds how many invalid answers are tolerated before dismissing.
func WithMaximumAttempts(attempts int) PresenterOption {
	return func(presenter *ConsolePresenter) {
		if attempts > 0 {
			presenter.maximumAttempts = attempts
		}
	}
}

// ConsolePresenter renders entries to a writer and reads the answer from a reader.
type ConsolePresenter struct {
	reader          *bufio.Reader
	writer          io.Writer
	colorEnabled    bool
	maximumAttempts int
	numberColor     *color.Color
	labelColor      *color.Color
	noticeColor     *color.Color
}

// NewConsolePresenter builds a presenter. Colors are enabled when output is a terminal.
func NewConsolePresenter(input io.Reader, output io.Writer, options ...PresenterOption) *ConsolePresenter {
	if output == nil {
		output = io.Discard
	}
	presenter := &ConsolePresenter{
		writer:          output,
		colorEnabled:    IsTerminal(output),
		maximumAttempts: defaultMaximumAttemptsConstant,
		numberColor:     color.New(color.FgYellow),
		labelColor:      color.New(color.FgCyan),
		noticeColor:     color.New(color.FgRed),
	}
	if input != nil {
		presenter.reader = bufio.NewReader(input)
	}
	for _, option := range options {
		if option != nil {
			option(presenter)
		}
	}
	for _, painter := range []*color.Color{presenter.numberColor, presenter.labelColor, presenter.noticeColor} {
		if presenter.colorEnabled {
			painter.EnableColor()
		} else {
			painter.DisableColor()
		}
	}
	return presenter
}

// Choose shows entries and returns the selected one. The boolean is false when
// the user dismissed the list, the input ended, or too many invalid answers were given.
func (presenter *ConsolePresenter) Choose(executionContext context.Context, entries []Entry) (Entry, bool, error) {
	if len(entries) == 0 {
		if _, writeError := io.WriteString(presenter.writer, presenter.noticeColor.Sprint(noEntriesMessageConstant)); writeError != nil {
			return Entry{}, false, fmt.Errorf(promptWriteFailureTemplate, writeError)
		}
		return Entry{}, false, nil
	}
	if presenter.reader == nil {
		return Entry{}, false, ErrInputNotConfigured
	}

	if renderError := presenter.render(entries); renderError != nil {
		return Entry{}, false, renderError
	}

	for attempt := 0; attempt < presenter.maximumAttempts; attempt++ {
		if contextError := executionContext.Err(); contextError != nil {
			return Entry{}, false, contextError
		}
		if _, writeError := fmt.Fprintf(presenter.writer, promptTemplateConstant, len(entries)); writeError != nil {
			return Entry{}, false, fmt.Errorf(promptWriteFailureTemplate, writeError)
		}

		response, readError := presenter.reader.ReadString('\n')
		if readError != nil && !errors.Is(readError, io.EOF) {
			return Entry{}, false, fmt.Errorf(promptReadFailureTemplate, readError)
		}
		trimmedResponse := strings.TrimSpace(response)
		if len(trimmedResponse) == 0 || strings.EqualFold(trimmedResponse, dismissKeywordConstant) {
			return Entry{}, false, nil
		}

		chosenNumber, parseError := strconv.Atoi(trimmedResponse)
		if parseError == nil && chosenNumber >= 1 && chosenNumber <= len(entries) {
			return entries[chosenNumber-1], true, nil
		}
		if _, writeError := io.WriteString(presenter.writer, presenter.noticeColor.Sprintf(invalidChoiceTemplateConstant, trimmedResponse, len(entries))); writeError != nil {
			return Entry{}, false, fmt.Errorf(promptWriteFailureTemplate, writeError)
		}
		if errors.Is(readError, io.EOF) {
			return Entry{}, false, nil
		}
	}
	return Entry{}, false, nil
}

func (presenter *ConsolePresenter) render(entries []Entry) error {
	numberWidth := len(strconv.FormatInt(int64(len(entries)), selectionDecimalWidthBaseConstant))
	for entryIndex, entry := range entries {
		number := presenter.numberColor.Sprintf(entryNumberTemplateConstant, numberWidth, entryIndex+1)
		if _, writeError := fmt.Fprintf(presenter.writer, entryLineTemplateConstant, number, presenter.labelColor.Sprint(entry.Label)); writeError != nil {
			return fmt.Errorf(promptWriteFailureTemplate, writeError)
		}
	}
	return nil
}

// IsTerminal reports whether output is a file attached to a terminal.
func IsTerminal(output io.Writer) bool {
	file, isFile := output.(*os.File)
	if !isFile {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
