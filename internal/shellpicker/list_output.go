package shellpicker

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/temirov/dockbash/internal/containers"
)

const (
	// OutputFormatTable renders aligned columns.
	OutputFormatTable = "table"
	// OutputFormatYAML renders a YAML sequence of containers.
	OutputFormatYAML = "yaml"

	tableHeaderIDConstant       = "CONTAINER ID"
	tableHeaderNameConstant     = "NAME"
	tableHeaderImageConstant    = "IMAGE"
	tableColumnGapConstant      = 2
	yamlIndentConstant          = 2
	listWriteFailureTemplate    = "unable to write container list: %w"
	yamlEncodeFailureTemplate   = "unable to encode container list: %w"
	tableLineTerminatorConstant = "\n"
)

// OutputFormats lists the formats accepted by the list command.
var OutputFormats = []string{OutputFormatTable, OutputFormatYAML}

// RenderTable writes one row per container under a header, columns padded
// the same way picker labels are.
func RenderTable(writer io.Writer, shellContainers []containers.Container, colorEnabled bool) error {
	headerColor := color.New(color.Bold)
	if colorEnabled {
		headerColor.EnableColor()
	} else {
		headerColor.DisableColor()
	}

	rows := [][]string{{tableHeaderIDConstant, tableHeaderNameConstant, tableHeaderImageConstant}}
	for _, container := range shellContainers {
		rows = append(rows, []string{container.ID, container.Name, container.Image})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for columnIndex, cell := range row {
			if width := utf8.RuneCountInString(cell); width > widths[columnIndex] {
				widths[columnIndex] = width
			}
		}
	}

	for rowIndex, row := range rows {
		var line strings.Builder
		for columnIndex, cell := range row {
			line.WriteString(cell)
			if columnIndex < len(row)-1 {
				line.WriteString(strings.Repeat(" ", widths[columnIndex]-utf8.RuneCountInString(cell)+tableColumnGapConstant))
			}
		}
		renderedLine := line.String()
		if rowIndex == 0 {
			renderedLine = headerColor.Sprint(renderedLine)
		}
		if _, writeError := io.WriteString(writer, renderedLine+tableLineTerminatorConstant); writeError != nil {
			return fmt.Errorf(listWriteFailureTemplate, writeError)
		}
	}
	return nil
}

// RenderYAML writes the containers as a YAML sequence of id/name/image mappings.
func RenderYAML(writer io.Writer, shellContainers []containers.Container) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if shellContainers == nil {
		shellContainers = []containers.Container{}
	}
	if encodeError := encoder.Encode(shellContainers); encodeError != nil {
		return fmt.Errorf(yamlEncodeFailureTemplate, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(yamlEncodeFailureTemplate, closeError)
	}
	return nil
}
