package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/dockbash/cmd/cli"
	"github.com/temirov/dockbash/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "config.yaml"
	parentDirectoryReferenceConstant = ".."
	testEnvironmentPrefixConstant    = "TESTDOCKBASHDOCS"
	configurationNameConstant        = "config"
	configurationTypeConstant        = "yaml"
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

func readReadmeSnippet(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	contentBytes, readError := os.ReadFile(filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant))
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	fenceEndRelativeIndex := strings.Index(contentText[headerIndex:], yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : headerIndex+fenceEndRelativeIndex])
}

func TestReadmeConfigurationMatchesEmbeddedDefaults(testInstance *testing.T) {
	snippetContent := readReadmeSnippet(testInstance)

	var snippetDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &snippetDocument))
	embeddedContent, _ := cli.EmbeddedDefaultConfiguration()
	var embeddedDocument map[string]any
	require.NoError(testInstance, yaml.Unmarshal(embeddedContent, &embeddedDocument))
	require.Equal(testInstance, embeddedDocument, snippetDocument)

	snippetPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(snippetContent), 0o600))

	snippetLoader := utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, testEnvironmentPrefixConstant, nil)
	var snippetConfiguration cli.ApplicationConfiguration
	_, snippetLoadError := snippetLoader.LoadConfiguration(snippetPath, nil, &snippetConfiguration)
	require.NoError(testInstance, snippetLoadError)

	embeddedLoader := utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, testEnvironmentPrefixConstant, []string{testInstance.TempDir()})
	embeddedLoader.SetEmbeddedConfiguration(cli.EmbeddedDefaultConfiguration())
	var embeddedConfiguration cli.ApplicationConfiguration
	_, embeddedLoadError := embeddedLoader.LoadConfiguration("", nil, &embeddedConfiguration)
	require.NoError(testInstance, embeddedLoadError)

	require.Equal(testInstance, embeddedConfiguration, snippetConfiguration)
	require.Equal(testInstance, "docker", snippetConfiguration.Engine.Executable)
	require.Equal(testInstance, "xterm", snippetConfiguration.Terminal.Executable)
}
