package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	commandGitNameConstant                 = "git"
	commandMercurialNameConstant           = "hg"
	loggerNotConfiguredMessageConstant     = "logger not configured"
	runnerNotConfiguredMessageConstant     = "command runner not configured"
	commandFailedErrorTemplateConstant     = "%s exited with code %d%s"
	commandExecutionErrorTemplateConstant  = "%s could not be executed: %v"
	logFieldCommandConstant                = "command"
	logFieldArgumentsConstant              = "arguments"
	logFieldWorkingDirectoryConstant       = "working_directory"
	logFieldExitCodeConstant               = "exit_code"
	logFieldStandardErrorConstant          = "standard_error"
	errorLabelArgumentsSeparatorConstant   = " "
	errorStandardErrorSuffixFormatConstant = ": %s"
)

// CommandName identifies an executable supported by the executor.
type CommandName string

// Supported command names.
const (
	CommandGit       CommandName = CommandName(commandGitNameConstant)
	CommandMercurial CommandName = CommandName(commandMercurialNameConstant)
)

// ErrLoggerNotConfigured indicates NewShellExecutor received a nil logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates NewShellExecutor received a nil runner.
var ErrCommandRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs a ShellCommand to completion.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted reports a finished process together with its result, whatever the exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports failures that prevented a result from being produced.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// CommandFailedError reports a process that ran and exited with a non-zero status.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	if trimmedStandardError := strings.TrimSpace(failure.Result.StandardError); len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(errorStandardErrorSuffixFormatConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, describeCommand(failure.Command), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a process that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, describeCommand(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause, such as exec.ErrNotFound.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutorOption customizes a ShellExecutor.
type ShellExecutorOption func(executor *ShellExecutor)

// WithCommandEventObserver routes lifecycle events to the observer instead of structured logs.
func WithCommandEventObserver(observer CommandEventObserver) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		executor.observer = observer
	}
}

// WithCommandTimeout bounds every command by the provided duration. Zero disables the bound.
func WithCommandTimeout(timeout time.Duration) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		if timeout < 0 {
			timeout = 0
		}
		executor.commandTimeout = timeout
	}
}

// ShellExecutor runs external tools and converts their outcomes into typed errors.
type ShellExecutor struct {
	logger           *zap.Logger
	runner           CommandRunner
	observer         CommandEventObserver
	messageFormatter CommandMessageFormatter
	commandTimeout   time.Duration
}

// NewShellExecutor constructs a ShellExecutor around the logger and runner.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, options ...ShellExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		logger:           logger,
		runner:           runner,
		messageFormatter: CommandMessageFormatter{},
	}
	for _, option := range options {
		if option != nil {
			option(executor)
		}
	}
	return executor, nil
}

// Execute runs the command. A non-zero exit yields CommandFailedError and an empty result.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if executor.commandTimeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, executor.commandTimeout)
		defer cancel()
	}

	executor.reportStarted(command)

	result, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.reportExecutionFailure(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.reportCompleted(command, result)

	if result.ExitCode != 0 {
		return ExecutionResult{}, CommandFailedError{Command: command, Result: result}
	}
	return result, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteMercurial runs hg with the provided details.
func (executor *ShellExecutor) ExecuteMercurial(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandMercurial, Details: details})
}

func (executor *ShellExecutor) reportStarted(command ShellCommand) {
	if executor.observer != nil {
		executor.observer.CommandStarted(command)
		return
	}
	executor.logger.Debug(executor.messageFormatter.BuildStartedMessage(command), commandFields(command)...)
}

func (executor *ShellExecutor) reportCompleted(command ShellCommand, result ExecutionResult) {
	if executor.observer != nil {
		executor.observer.CommandCompleted(command, result)
		return
	}
	if result.ExitCode == 0 {
		executor.logger.Debug(executor.messageFormatter.BuildSuccessMessage(command, result), commandFields(command)...)
		return
	}
	fields := append(commandFields(command),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
		zap.String(logFieldStandardErrorConstant, strings.TrimSpace(result.StandardError)),
	)
	executor.logger.Warn(executor.messageFormatter.BuildFailureMessage(command, result), fields...)
}

func (executor *ShellExecutor) reportExecutionFailure(command ShellCommand, failure error) {
	if executor.observer != nil {
		executor.observer.CommandExecutionFailed(command, failure)
		return
	}
	fields := append(commandFields(command), zap.Error(failure))
	executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, failure), fields...)
}

func commandFields(command ShellCommand) []zap.Field {
	return []zap.Field{
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}
}

func describeCommand(command ShellCommand) string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, errorLabelArgumentsSeparatorConstant)
}
