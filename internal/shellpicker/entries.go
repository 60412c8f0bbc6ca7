package shellpicker

import (
	"strings"
	"unicode/utf8"

	"github.com/temirov/dockbash/internal/containers"
	"github.com/temirov/dockbash/internal/selection"
)

const labelColumnGapConstant = 2

// NameWidth returns the length in runes of the longest container name.
func NameWidth(listedContainers []containers.Container) int {
	nameWidth := 0
	for _, listedContainer := range listedContainers {
		if width := utf8.RuneCountInString(listedContainer.Name); width > nameWidth {
			nameWidth = width
		}
	}
	return nameWidth
}

// BuildEntries turns containers into picker entries in the same order. Each
// label is the name padded to nameWidth plus two spaces, then the image. The
// picker measures nameWidth over every listed container, including those the
// probe excluded.
func BuildEntries(candidates []containers.Container, nameWidth int) []selection.Entry {
	entries := make([]selection.Entry, 0, len(candidates))
	for _, candidate := range candidates {
		padding := max(nameWidth-utf8.RuneCountInString(candidate.Name), 0) + labelColumnGapConstant
		entries = append(entries, selection.Entry{
			Label:      candidate.Name + strings.Repeat(" ", padding) + candidate.Image,
			Identifier: candidate.ID,
		})
	}
	return entries
}
