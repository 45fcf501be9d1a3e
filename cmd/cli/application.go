package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/repometa/internal/execshell"
	"github.com/temirov/repometa/internal/repometa"
	"github.com/temirov/repometa/internal/ui"
	"github.com/temirov/repometa/internal/utils"
)

const (
	applicationNameConstant                 = "repometa [root]"
	applicationShortDescriptionConstant     = "Print provenance metadata of a git or mercurial checkout"
	applicationLongDescriptionConstant      = "repometa reports the head commit, current branch, and fetch remotes of the repository at root (default: the current directory). CIRCLE_BRANCH and TRAVIS_BRANCH override the detected branch."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	outputFormatFlagNameConstant            = "output"
	outputFormatFlagUsageConstant           = "Override the configured output format (json or yaml)."
	commandTimeoutFlagNameConstant          = "timeout"
	commandTimeoutFlagUsageConstant         = "Override the per-command timeout (0 disables it)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	extractConfigurationKeyConstant         = "extract"
	extractOutputFormatConfigKeyConstant    = extractConfigurationKeyConstant + ".output_format"
	extractCommandTimeoutConfigKeyConstant  = extractConfigurationKeyConstant + ".command_timeout"
	defaultCommandTimeoutValueConstant      = "0s"
	environmentPrefixConstant               = "REPOMETA"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationOutputFormatFieldConstant  = "output_format"
	configurationTimeoutFieldConstant       = "command_timeout"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	executorCreationErrorTemplateConstant   = "unable to create command executor: %w"
	extractorCreationErrorTemplateConstant  = "unable to create metadata extractor: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	defaultRepositoryRootConstant           = "."
	maximumPositionalArgumentsConstant      = 1
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration  `mapstructure:"common"`
	Extract ApplicationExtractConfiguration `mapstructure:"extract"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationExtractConfiguration controls how metadata is gathered and printed.
type ApplicationExtractConfiguration struct {
	OutputFormat   string        `mapstructure:"output_format"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// Application wires the Cobra root command, configuration loader, structured
// logger, and metadata extractor.
type Application struct {
	rootCommand               *cobra.Command
	configurationLoader       *utils.ConfigurationLoader
	loggerFactory             *utils.LoggerFactory
	logger                    *zap.Logger
	configuration             ApplicationConfiguration
	configurationMetadata     utils.LoadedConfiguration
	configurationFilePath     string
	logLevelFlagValue         string
	logFormatFlagValue        string
	outputFormatFlagValue     string
	commandTimeoutFlagValue   time.Duration
	commandRunner             execshell.CommandRunner
	environmentLookup         repometa.EnvironmentLookup
	repositoryDirectoryReader repometa.DirectoryReader
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		commandRunner:       execshell.NewOSCommandRunner(),
		environmentLookup:   os.LookupEnv,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.MaximumNArgs(maximumPositionalArgumentsConstant),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.outputFormatFlagValue, outputFormatFlagNameConstant, "", outputFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().DurationVar(&application.commandTimeoutFlagValue, commandTimeoutFlagNameConstant, 0, commandTimeoutFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:        string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant:       string(utils.LogFormatStructured),
		extractOutputFormatConfigKeyConstant:   string(OutputFormatJSON),
		extractCommandTimeoutConfigKeyConstant: defaultCommandTimeoutValueConstant,
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, outputFormatFlagNameConstant) {
		application.configuration.Extract.OutputFormat = application.outputFormatFlagValue
	}

	if application.persistentFlagChanged(command, commandTimeoutFlagNameConstant) {
		application.configuration.Extract.CommandTimeout = application.commandTimeoutFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationOutputFormatFieldConstant, application.configuration.Extract.OutputFormat),
		zap.Duration(configurationTimeoutFieldConstant, application.configuration.Extract.CommandTimeout),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	outputFormat, outputFormatError := ParseOutputFormat(application.configuration.Extract.OutputFormat)
	if outputFormatError != nil {
		return outputFormatError
	}

	repositoryRoot := defaultRepositoryRootConstant
	if len(arguments) > 0 {
		repositoryRoot = arguments[0]
	}

	extractor, extractorError := application.buildExtractor()
	if extractorError != nil {
		return extractorError
	}

	metadata, extractError := extractor.Extract(command.Context(), repositoryRoot)
	if extractError != nil {
		return extractError
	}

	return RenderMetadata(command.OutOrStdout(), outputFormat, metadata)
}

func (application *Application) buildExtractor() (*repometa.Extractor, error) {
	executorOptions := []execshell.ShellExecutorOption{
		execshell.WithCommandTimeout(application.configuration.Extract.CommandTimeout),
	}
	if application.humanReadableLoggingEnabled() {
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(application.logger)))
	}

	shellExecutor, executorError := execshell.NewShellExecutor(application.logger, application.commandRunner, executorOptions...)
	if executorError != nil {
		return nil, fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
	}

	extractor, extractorError := repometa.NewExtractor(repometa.Dependencies{
		CommandExecutor:   shellExecutor,
		DirectoryReader:   application.repositoryDirectoryReader,
		EnvironmentLookup: application.environmentLookup,
		Logger:            application.logger,
	})
	if extractorError != nil {
		return nil, fmt.Errorf(extractorCreationErrorTemplateConstant, extractorError)
	}

	return extractor, nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
