package repometa

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/temirov/repometa/internal/execshell"
)

const (
	unrecognizedRepositoryMessageConstant  = "no git or mercurial control directory found"
	toolNotFoundMessageConstant            = "version control tool not found"
	repositoryRootRequiredMessageConstant  = "repository root must be provided"
	commandExecutorMissingMessageConstant  = "command executor not configured"
	malformedOutputErrorTemplateConstant   = "malformed %s output: expected %d fields, found %d"
	malformedLineErrorTemplateConstant     = "malformed %s output line %q"
	toolExecutionErrorTemplateConstant     = "%s failed: %v"
	toolNotFoundErrorTemplateConstant      = "%w: %s: %w"
	unrecognizedRepositoryTemplateConstant = "%w: %s"
	directoryListingErrorTemplateConstant  = "unable to list %s: %w"
)

// ErrUnrecognizedRepository indicates the root holds neither a .git nor a .hg entry.
var ErrUnrecognizedRepository = errors.New(unrecognizedRepositoryMessageConstant)

// ErrToolNotFound indicates the git or hg executable is not installed.
var ErrToolNotFound = errors.New(toolNotFoundMessageConstant)

// ErrRepositoryRootRequired indicates an empty root path.
var ErrRepositoryRootRequired = errors.New(repositoryRootRequiredMessageConstant)

// ErrCommandExecutorNotConfigured indicates the command executor dependency was missing.
var ErrCommandExecutorNotConfigured = errors.New(commandExecutorMissingMessageConstant)

// MalformedOutputError reports tool output that does not carry the expected fields.
type MalformedOutputError struct {
	Operation      string
	Line           string
	ExpectedFields int
	ActualFields   int
}

// Error describes the malformed output.
func (failure MalformedOutputError) Error() string {
	if len(failure.Line) > 0 {
		return fmt.Sprintf(malformedLineErrorTemplateConstant, failure.Operation, failure.Line)
	}
	return fmt.Sprintf(malformedOutputErrorTemplateConstant, failure.Operation, failure.ExpectedFields, failure.ActualFields)
}

// ToolExecutionError reports a tool that ran and exited with a non-zero status.
type ToolExecutionError struct {
	Operation string
	Cause     error
}

// Error describes the failed query.
func (failure ToolExecutionError) Error() string {
	return fmt.Sprintf(toolExecutionErrorTemplateConstant, failure.Operation, failure.Cause)
}

// Unwrap exposes the underlying execshell error.
func (failure ToolExecutionError) Unwrap() error {
	return failure.Cause
}

// classifyCommandError maps execshell failures onto the package error taxonomy.
func classifyCommandError(operation string, commandError error) error {
	if commandError == nil {
		return nil
	}
	if errors.Is(commandError, exec.ErrNotFound) {
		return fmt.Errorf(toolNotFoundErrorTemplateConstant, ErrToolNotFound, operation, commandError)
	}
	var commandFailure execshell.CommandFailedError
	if errors.As(commandError, &commandFailure) {
		return ToolExecutionError{Operation: operation, Cause: commandError}
	}
	return commandError
}
