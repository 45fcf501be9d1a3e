package repometa

import (
	"context"
	"strings"

	"github.com/temirov/repometa/internal/execshell"
)

const (
	gitNoPagerFlagConstant                = "--no-pager"
	gitLogSubcommandConstant              = "log"
	gitSingleCommitFlagConstant           = "-1"
	gitPrettyFormatFlagPrefixConstant     = "--pretty=format:"
	gitRevParseSubcommandConstant         = "rev-parse"
	gitAbbrevRefFlagConstant              = "--abbrev-ref"
	gitHeadReferenceConstant              = "HEAD"
	gitRemoteSubcommandConstant           = "remote"
	gitVerboseFlagConstant                = "-v"
	gitFormatFieldSeparatorConstant       = "%n"
	gitCurrentBranchOperationNameConstant = "git current branch"
	gitHeadCommitOperationNameConstant    = "git log"
	gitRemotesOperationNameConstant       = "git remote"
)

// gitCommitFormatFields emits hash, author name, author email, committer name,
// committer email, and subject in that order.
var gitCommitFormatFields = []string{"%H", "%aN", "%ae", "%cN", "%ce", "%s"}

// GitReader reads metadata from a git checkout.
type GitReader struct {
	executor       CommandExecutor
	branchResolver branchResolver
}

// NewGitReader constructs a GitReader.
func NewGitReader(executor CommandExecutor, lookup EnvironmentLookup) (*GitReader, error) {
	if executor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}
	return &GitReader{executor: executor, branchResolver: newBranchResolver(lookup)}, nil
}

// Read queries the head commit, branch, and fetch remotes of the checkout at repositoryRoot.
func (reader *GitReader) Read(executionContext context.Context, repositoryRoot string) (RepositoryMetadata, error) {
	commitInfo, commitError := reader.readHeadCommit(executionContext, repositoryRoot)
	if commitError != nil {
		return RepositoryMetadata{}, commitError
	}

	branchName, branchError := reader.branchResolver.resolve(executionContext, func(queryContext context.Context) (string, error) {
		return reader.readCurrentBranch(queryContext, repositoryRoot)
	})
	if branchError != nil {
		return RepositoryMetadata{}, branchError
	}

	remotes, remotesError := reader.readFetchRemotes(executionContext, repositoryRoot)
	if remotesError != nil {
		return RepositoryMetadata{}, remotesError
	}

	return RepositoryMetadata{
		Head:    commitInfo.Head(),
		Branch:  branchName,
		Remotes: remotes,
	}, nil
}

func (reader *GitReader) readHeadCommit(executionContext context.Context, repositoryRoot string) (CommitInfo, error) {
	prettyFormat := gitPrettyFormatFlagPrefixConstant + strings.Join(gitCommitFormatFields, gitFormatFieldSeparatorConstant)
	executionResult, executionError := reader.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitNoPagerFlagConstant, gitLogSubcommandConstant, gitSingleCommitFlagConstant, prettyFormat},
		WorkingDirectory: repositoryRoot,
	})
	if executionError != nil {
		return CommitInfo{}, classifyCommandError(gitHeadCommitOperationNameConstant, executionError)
	}
	return parseCommitInfo(executionResult.StandardOutput)
}

func (reader *GitReader) readCurrentBranch(executionContext context.Context, repositoryRoot string) (string, error) {
	executionResult, executionError := reader.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryRoot,
	})
	if executionError != nil {
		return "", classifyCommandError(gitCurrentBranchOperationNameConstant, executionError)
	}
	return executionResult.StandardOutput, nil
}

func (reader *GitReader) readFetchRemotes(executionContext context.Context, repositoryRoot string) ([]Remote, error) {
	executionResult, executionError := reader.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitVerboseFlagConstant},
		WorkingDirectory: repositoryRoot,
	})
	if executionError != nil {
		return nil, classifyCommandError(gitRemotesOperationNameConstant, executionError)
	}
	return parseGitFetchRemotes(executionResult.StandardOutput)
}
