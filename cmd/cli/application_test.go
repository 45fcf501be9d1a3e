package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/repometa/cmd/cli"
	"github.com/temirov/repometa/internal/repometa"
)

const (
	embeddedConfigurationTypeConstant = "yaml"
	renderedRemoteURLConstant         = "git@example.com:team/service.git"
)

type embeddedConfigurationFixture struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Extract struct {
		OutputFormat   string `yaml:"output_format"`
		CommandTimeout string `yaml:"command_timeout"`
	} `yaml:"extract"`
}

func renderedMetadata() repometa.RepositoryMetadata {
	return repometa.RepositoryMetadata{
		Head: repometa.Head{
			ID:             "d3adb33f",
			AuthorName:     "Margaret Hamilton",
			AuthorEmail:    "margaret@example.com",
			CommitterName:  "Margaret Hamilton",
			CommitterEmail: "margaret@example.com",
			Message:        "Guard against overflow",
		},
		Branch:  "release",
		Remotes: []repometa.Remote{{Name: "origin", URL: renderedRemoteURLConstant}},
	}
}

func TestEmbeddedDefaultConfiguration(testInstance *testing.T) {
	configurationContent, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, embeddedConfigurationTypeConstant, configurationType)

	var configuration embeddedConfigurationFixture
	require.NoError(testInstance, yaml.Unmarshal(configurationContent, &configuration))
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
	require.Equal(testInstance, string(cli.OutputFormatJSON), configuration.Extract.OutputFormat)

	parsedTimeout, parseError := time.ParseDuration(configuration.Extract.CommandTimeout)
	require.NoError(testInstance, parseError)
	require.Zero(testInstance, parsedTimeout)

	configurationContent[0] = '#'
	pristineContent, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, configurationContent[0], pristineContent[0])
}

func TestParseOutputFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		value          string
		expectedFormat cli.OutputFormat
		expectError    bool
	}{
		{name: "json", value: "json", expectedFormat: cli.OutputFormatJSON},
		{name: "yaml_mixed_case", value: " YAML ", expectedFormat: cli.OutputFormatYAML},
		{name: "empty", value: "", expectError: true},
		{name: "unknown", value: "xml", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			format, parseError := cli.ParseOutputFormat(testCase.value)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedFormat, format)
		})
	}
}

func TestRenderMetadataUsesRecordKeys(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, cli.RenderMetadata(outputBuffer, cli.OutputFormatJSON, renderedMetadata()))

	var rendered map[string]any
	require.NoError(testInstance, json.Unmarshal(outputBuffer.Bytes(), &rendered))
	require.ElementsMatch(testInstance, []string{"head", "branch", "remotes"}, mapKeys(rendered))

	renderedHead, isMapping := rendered["head"].(map[string]any)
	require.True(testInstance, isMapping)
	require.ElementsMatch(testInstance, []string{"id", "author_name", "author_email", "committer_name", "committer_email", "message"}, mapKeys(renderedHead))

	renderedRemotes, isSequence := rendered["remotes"].([]any)
	require.True(testInstance, isSequence)
	require.Equal(testInstance, []any{map[string]any{"name": "origin", "url": renderedRemoteURLConstant}}, renderedRemotes)
}

func TestRenderMetadataYAMLRoundTrip(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, cli.RenderMetadata(outputBuffer, cli.OutputFormatYAML, renderedMetadata()))
	require.Contains(testInstance, outputBuffer.String(), "committer_email: margaret@example.com")

	var decoded repometa.RepositoryMetadata
	require.NoError(testInstance, yaml.Unmarshal(outputBuffer.Bytes(), &decoded))
	require.Equal(testInstance, renderedMetadata(), decoded)
}

func TestRenderMetadataRejectsUnknownFormat(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	renderError := cli.RenderMetadata(outputBuffer, cli.OutputFormat("toml"), renderedMetadata())
	require.Error(testInstance, renderError)
	require.Empty(testInstance, outputBuffer.String())
}

func mapKeys(mapping map[string]any) []string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	return keys
}
