package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repometa/internal/utils"
)

const (
	testEnvironmentPrefixConstant                     = "TESTREPOMETA"
	testCommonSectionKeyConstant                      = "common"
	testExtractSectionKeyConstant                     = "extract"
	testLogLevelKeyConstant                           = testCommonSectionKeyConstant + ".log_level"
	testCommandTimeoutKeyConstant                     = testExtractSectionKeyConstant + ".command_timeout"
	testDefaultLogLevelConstant                       = "info"
	testConfiguredLogLevelConstant                    = "debug"
	testOverriddenLogLevelConstant                    = "error"
	testFileLogLevelConstant                          = "warn"
	testConfigFileNameConstant                        = "config.yaml"
	testConfigContentTemplateConstant                 = "common:\n  log_level: %s\n"
	testTimeoutConfigContentTemplateConstant          = "extract:\n  command_timeout: %s\n"
	testCaseEmbeddedMessageConstant                   = "embedded configuration merges"
	testCaseDefaultsMessageConstant                   = "defaults are applied"
	testCaseFileMessageConstant                       = "config file overrides defaults"
	testCaseEnvironmentMessageConstant                = "environment overrides file"
	testConfigurationNameConstant                     = "config"
	testConfigurationTypeConstant                     = "yaml"
	configurationLoaderSubtestNameTemplateConstant    = "%d_%s"
	testEmbeddedLogLevelConstant                      = "debug"
	testUserConfigurationDirectoryNameConstant        = ".repometa"
	testXDGConfigHomeDirectoryNameConstant            = "config"
	testCaseSearchPathWorkingDirectoryMessageConstant = "searches working directory"
	testCaseSearchPathHomeDirectoryMessageConstant    = "searches home configuration directory"
)

type configurationFixture struct {
	Common  configurationCommonFixture  `mapstructure:"common"`
	Extract configurationExtractFixture `mapstructure:"extract"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type configurationExtractFixture struct {
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

func environmentVariableNameForKey(configurationKey string) string {
	return fmt.Sprintf("%s_%s", testEnvironmentPrefixConstant, strings.ToUpper(strings.ReplaceAll(configurationKey, ".", "_")))
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                string
		embeddedLogLevel    string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
	}{
		{
			name:             testCaseEmbeddedMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			expectedLogLevel: testEmbeddedLogLevelConstant,
		},
		{
			name:             testCaseDefaultsMessageConstant,
			embeddedLogLevel: testDefaultLogLevelConstant,
			expectedLogLevel: testDefaultLogLevelConstant,
		},
		{
			name:             testCaseFileMessageConstant,
			embeddedLogLevel: testDefaultLogLevelConstant,
			fileLogLevel:     testConfiguredLogLevelConstant,
			expectedLogLevel: testConfiguredLogLevelConstant,
		},
		{
			name:                testCaseEnvironmentMessageConstant,
			embeddedLogLevel:    testDefaultLogLevelConstant,
			fileLogLevel:        testFileLogLevelConstant,
			environmentLogLevel: testOverriddenLogLevelConstant,
			expectedLogLevel:    testOverriddenLogLevelConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileLogLevel)
				writeError := os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600)
				require.NoError(testInstance, writeError)
			}

			if len(testCase.environmentLogLevel) > 0 {
				testInstance.Setenv(environmentVariableNameForKey(testLogLevelKeyConstant), testCase.environmentLogLevel)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})
			configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedLogLevel)), testConfigurationTypeConstant)

			defaultValues := map[string]any{
				testLogLevelKeyConstant: testDefaultLogLevelConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderDecodesDurations(testInstance *testing.T) {
	testCases := []struct {
		name             string
		fileTimeout      string
		environmentValue string
		expectedTimeout  time.Duration
	}{
		{
			name:            "default_zero",
			expectedTimeout: 0,
		},
		{
			name:            "file_duration",
			fileTimeout:     "45s",
			expectedTimeout: 45 * time.Second,
		},
		{
			name:             "environment_duration",
			fileTimeout:      "45s",
			environmentValue: "2m",
			expectedTimeout:  2 * time.Minute,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileTimeout) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testTimeoutConfigContentTemplateConstant, testCase.fileTimeout)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentValue) > 0 {
				testInstance.Setenv(environmentVariableNameForKey(testCommandTimeoutKeyConstant), testCase.environmentValue)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})

			defaultValues := map[string]any{
				testCommandTimeoutKeyConstant: "0s",
			}

			loadedConfiguration := configurationFixture{}
			_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedTimeout, loadedConfiguration.Extract.CommandTimeout)
		})
	}
}

func TestConfigurationLoaderRejectsUnreadableConfiguration(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("common: [unterminated\n"), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, nil, &loadedConfiguration)
	require.Error(testInstance, loadError)
	require.Contains(testInstance, loadError.Error(), "failed to read configuration")
}

func TestConfigurationLoaderSearchPaths(testInstance *testing.T) {
	testCases := []struct {
		name                         string
		configurationDirectorySelect func(workingDirectoryPath string, userConfigurationDirectoryPath string) string
	}{
		{
			name: testCaseSearchPathWorkingDirectoryMessageConstant,
			configurationDirectorySelect: func(workingDirectoryPath string, userConfigurationDirectoryPath string) string {
				return workingDirectoryPath
			},
		},
		{
			name: testCaseSearchPathHomeDirectoryMessageConstant,
			configurationDirectorySelect: func(workingDirectoryPath string, userConfigurationDirectoryPath string) string {
				return userConfigurationDirectoryPath
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			workingDirectoryPath := testInstance.TempDir()
			homeDirectoryPath := testInstance.TempDir()
			xdgConfigHomeDirectoryPath := filepath.Join(homeDirectoryPath, testXDGConfigHomeDirectoryNameConstant)

			testInstance.Setenv("HOME", homeDirectoryPath)
			testInstance.Setenv("XDG_CONFIG_HOME", xdgConfigHomeDirectoryPath)

			userConfigurationBaseDirectoryPath, userConfigurationDirectoryError := os.UserConfigDir()
			require.NoError(testInstance, userConfigurationDirectoryError)

			userConfigurationDirectoryPath := filepath.Join(userConfigurationBaseDirectoryPath, testUserConfigurationDirectoryNameConstant)
			require.NoError(testInstance, os.MkdirAll(userConfigurationDirectoryPath, 0o755))

			selectedConfigurationDirectoryPath := testCase.configurationDirectorySelect(workingDirectoryPath, userConfigurationDirectoryPath)
			configurationFilePath := filepath.Join(selectedConfigurationDirectoryPath, testConfigFileNameConstant)
			configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testConfiguredLogLevelConstant)
			require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

			configurationLoader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				[]string{workingDirectoryPath, userConfigurationDirectoryPath},
			)

			defaultValues := map[string]any{
				testLogLevelKeyConstant: testDefaultLogLevelConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration("", defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testConfiguredLogLevelConstant, loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}
