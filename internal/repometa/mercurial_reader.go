package repometa

import (
	"context"

	"github.com/temirov/repometa/internal/execshell"
)

const (
	mercurialLogSubcommandConstant              = "log"
	mercurialLimitFlagConstant                  = "-l"
	mercurialSingleChangesetConstant            = "1"
	mercurialTemplateFlagConstant               = "--template"
	mercurialBranchSubcommandConstant           = "branch"
	mercurialPathsSubcommandConstant            = "paths"
	mercurialHeadCommitOperationNameConstant    = "hg log"
	mercurialCurrentBranchOperationNameConstant = "hg branch"
	mercurialRemotesOperationNameConstant       = "hg paths"
	mercurialPlainEnvironmentVariableConstant   = "HGPLAIN"
	mercurialPlainEnabledValueConstant          = "1"
)

// mercurialCommitTemplate mirrors the git format. Changesets record a single
// user, so the committer lines repeat the author.
const mercurialCommitTemplate = "{node}\n{author|person}\n{author|email}\n{author|person}\n{author|email}\n{desc}"

// MercurialReader reads metadata from a mercurial checkout.
type MercurialReader struct {
	executor       CommandExecutor
	branchResolver branchResolver
}

// NewMercurialReader constructs a MercurialReader.
func NewMercurialReader(executor CommandExecutor, lookup EnvironmentLookup) (*MercurialReader, error) {
	if executor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}
	return &MercurialReader{executor: executor, branchResolver: newBranchResolver(lookup)}, nil
}

// Read queries the most recent changeset, branch, and configured paths of the checkout at repositoryRoot.
func (reader *MercurialReader) Read(executionContext context.Context, repositoryRoot string) (RepositoryMetadata, error) {
	logResult, logError := reader.executor.ExecuteMercurial(executionContext, mercurialCommandDetails(repositoryRoot, mercurialLogSubcommandConstant, mercurialLimitFlagConstant, mercurialSingleChangesetConstant, mercurialTemplateFlagConstant, mercurialCommitTemplate))
	if logError != nil {
		return RepositoryMetadata{}, classifyCommandError(mercurialHeadCommitOperationNameConstant, logError)
	}
	commitInfo, parseError := parseCommitInfo(logResult.StandardOutput)
	if parseError != nil {
		return RepositoryMetadata{}, parseError
	}

	branchName, branchError := reader.branchResolver.resolve(executionContext, func(queryContext context.Context) (string, error) {
		branchResult, branchQueryError := reader.executor.ExecuteMercurial(queryContext, mercurialCommandDetails(repositoryRoot, mercurialBranchSubcommandConstant))
		if branchQueryError != nil {
			return "", classifyCommandError(mercurialCurrentBranchOperationNameConstant, branchQueryError)
		}
		return branchResult.StandardOutput, nil
	})
	if branchError != nil {
		return RepositoryMetadata{}, branchError
	}

	pathsResult, pathsError := reader.executor.ExecuteMercurial(executionContext, mercurialCommandDetails(repositoryRoot, mercurialPathsSubcommandConstant))
	if pathsError != nil {
		return RepositoryMetadata{}, classifyCommandError(mercurialRemotesOperationNameConstant, pathsError)
	}
	remotes, remotesError := parseMercurialPaths(pathsResult.StandardOutput)
	if remotesError != nil {
		return RepositoryMetadata{}, remotesError
	}

	return RepositoryMetadata{
		Head:    commitInfo.Head(),
		Branch:  branchName,
		Remotes: remotes,
	}, nil
}

// mercurialCommandDetails sets HGPLAIN so user configuration cannot alter the parsed output.
func mercurialCommandDetails(repositoryRoot string, arguments ...string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryRoot,
		EnvironmentVariables: map[string]string{mercurialPlainEnvironmentVariableConstant: mercurialPlainEnabledValueConstant},
	}
}
