package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	errorNotificationTemplateConstant = "Error: %s\n"
	unknownErrorMessageConstant       = "unknown error"
)

// userFacingError is implemented by errors that carry a message meant for the person at the terminal.
type userFacingError interface {
	UserMessage() string
}

// ErrorNotifier reports fatal errors to the user.
type ErrorNotifier struct {
	writer io.Writer
}

// NewErrorNotifier writes notifications to writer, typically standard error.
func NewErrorNotifier(writer io.Writer) ErrorNotifier {
	if writer == nil {
		writer = io.Discard
	}
	return ErrorNotifier{writer: writer}
}

// Notify prints the user message of failure, preferring a wrapped
// UserMessage over the full error chain.
func (notifier ErrorNotifier) Notify(failure error) {
	if failure == nil {
		return
	}
	_, _ = fmt.Fprintf(notifier.writer, errorNotificationTemplateConstant, Describe(failure))
}

// Describe returns the text shown to the user for failure.
func Describe(failure error) string {
	if failure == nil {
		return unknownErrorMessageConstant
	}
	var userFacing userFacingError
	if errors.As(failure, &userFacing) {
		message := strings.TrimRight(userFacing.UserMessage(), "\r\n")
		if len(strings.TrimSpace(message)) > 0 {
			return message
		}
	}
	return failure.Error()
}
