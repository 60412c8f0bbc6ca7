package shellpicker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/dockbash/internal/containers"
	"github.com/temirov/dockbash/internal/selection"
	"github.com/temirov/dockbash/internal/shellpicker"
)

func TestBuildEntriesPadsNames(testInstance *testing.T) {
	candidates := []containers.Container{
		{ID: "a1", Name: "web", Image: "nginx"},
		{ID: "b2", Name: "database", Image: "postgres:16"},
		{ID: "c3", Name: "tools", Image: "alpine"},
	}
	entries := shellpicker.BuildEntries(candidates, shellpicker.NameWidth(candidates))

	require.Equal(testInstance, []selection.Entry{
		{Label: "web       nginx", Identifier: "a1"},
		{Label: "database  postgres:16", Identifier: "b2"},
		{Label: "tools     alpine", Identifier: "c3"},
	}, entries)
}

func TestNameWidth(testInstance *testing.T) {
	testCases := []struct {
		name          string
		containers    []containers.Container
		expectedWidth int
	}{
		{name: "empty", containers: nil, expectedWidth: 0},
		{
			name:          "counts_runes",
			containers:    []containers.Container{{Name: "web"}, {Name: "café-backend"}},
			expectedWidth: 12,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedWidth, shellpicker.NameWidth(testCase.containers))
		})
	}
}

func TestBuildEntriesUsesGivenWidth(testInstance *testing.T) {
	entries := shellpicker.BuildEntries([]containers.Container{{ID: "a1", Name: "web", Image: "nginx"}}, 10)
	require.Equal(testInstance, []selection.Entry{{Label: "web         nginx", Identifier: "a1"}}, entries)
}

func TestBuildEntriesEmpty(testInstance *testing.T) {
	require.Empty(testInstance, shellpicker.BuildEntries(nil, 0))
}
