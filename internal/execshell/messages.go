package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

type commandOperation int

const (
	commandOperationGeneric commandOperation = iota
	commandOperationHeadCommit
	commandOperationCurrentBranch
	commandOperationRemotes
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
	lineSeparatorConstant                   = "\n"
)

const (
	gitLogSubcommandNameConstant       = "log"
	gitRevParseSubcommandNameConstant  = "rev-parse"
	gitAbbrevRefFlagConstant           = "--abbrev-ref"
	gitRemoteSubcommandNameConstant    = "remote"
	gitVerboseFlagConstant             = "-v"
	mercurialLogSubcommandNameConstant = "log"
	mercurialBranchSubcommandConstant  = "branch"
	mercurialPathsSubcommandConstant   = "paths"
)

const (
	headCommitStartTemplateConstant               = "Reading head commit in %s"
	headCommitSuccessTemplateConstant             = "Head commit in %s is %s"
	headCommitFailureTemplateConstant             = "Failed to read head commit in %s (exit code %d%s)"
	headCommitExecutionFailureTemplateConstant    = "Unable to read head commit in %s: %s"
	currentBranchStartTemplateConstant            = "Identifying current branch in %s"
	currentBranchSuccessTemplateConstant          = "Current branch in %s is %s"
	currentBranchFailureTemplateConstant          = "Failed to identify current branch in %s (exit code %d%s)"
	currentBranchExecutionFailureTemplateConstant = "Unable to identify current branch in %s: %s"
	remotesStartTemplateConstant                  = "Listing remotes in %s"
	remotesSuccessTemplateConstant                = "Listed %d remote entries in %s"
	remotesFailureTemplateConstant                = "Failed to list remotes in %s (exit code %d%s)"
	remotesExecutionFailureTemplateConstant       = "Unable to list remotes in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)

	switch formatter.classifyOperation(command) {
	case commandOperationHeadCommit:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(headCommitStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(headCommitSuccessTemplateConstant, workingDirectory, formatter.firstLine(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(headCommitFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix)
		case messageStageExecutionFailure:
			return fmt.Sprintf(headCommitExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case commandOperationCurrentBranch:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(currentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(currentBranchSuccessTemplateConstant, workingDirectory, formatter.firstLine(result.StandardOutput))
		case messageStageFailure:
			return fmt.Sprintf(currentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix)
		case messageStageExecutionFailure:
			return fmt.Sprintf(currentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case commandOperationRemotes:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(remotesStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(remotesSuccessTemplateConstant, formatter.countLines(result.StandardOutput), workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(remotesFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix)
		case messageStageExecutionFailure:
			return fmt.Sprintf(remotesExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) classifyOperation(command ShellCommand) commandOperation {
	arguments := command.Details.Arguments
	subcommand := formatter.extractFirstNonFlagArgument(arguments)

	switch command.Name {
	case CommandGit:
		switch subcommand {
		case gitLogSubcommandNameConstant:
			return commandOperationHeadCommit
		case gitRevParseSubcommandNameConstant:
			if containsArgument(arguments, gitAbbrevRefFlagConstant) {
				return commandOperationCurrentBranch
			}
		case gitRemoteSubcommandNameConstant:
			if containsArgument(arguments, gitVerboseFlagConstant) {
				return commandOperationRemotes
			}
		}
	case CommandMercurial:
		switch subcommand {
		case mercurialLogSubcommandNameConstant:
			return commandOperationHeadCommit
		case mercurialBranchSubcommandConstant:
			return commandOperationCurrentBranch
		case mercurialPathsSubcommandConstant:
			return commandOperationRemotes
		}
	}
	return commandOperationGeneric
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = strings.Join(append([]string{commandLabel}, command.Details.Arguments...), commandArgumentsJoinSeparatorConstant)
	}
	workingDirectorySuffix := emptyStringConstant
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		workingDirectorySuffix = fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) firstLine(output string) string {
	trimmedOutput := strings.TrimSpace(output)
	if len(trimmedOutput) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	firstLine, _, _ := strings.Cut(trimmedOutput, lineSeparatorConstant)
	return strings.TrimSpace(firstLine)
}

func (formatter CommandMessageFormatter) countLines(output string) int {
	trimmedOutput := strings.TrimSpace(output)
	if len(trimmedOutput) == 0 {
		return 0
	}
	return len(strings.Split(trimmedOutput, lineSeparatorConstant))
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
