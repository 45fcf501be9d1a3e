package repometa

import (
	"context"
	"io/fs"

	"github.com/temirov/repometa/internal/execshell"
)

const (
	versionControlSystemGitConstant          = "git"
	versionControlSystemMercurialConstant    = "mercurial"
	versionControlSystemUnrecognizedConstant = "unrecognized"
)

// VersionControlSystem enumerates the backends Extractor can recognize.
type VersionControlSystem string

// Recognized version control systems.
const (
	VersionControlSystemGit          VersionControlSystem = VersionControlSystem(versionControlSystemGitConstant)
	VersionControlSystemMercurial    VersionControlSystem = VersionControlSystem(versionControlSystemMercurialConstant)
	VersionControlSystemUnrecognized VersionControlSystem = VersionControlSystem(versionControlSystemUnrecognizedConstant)
)

// CommitInfo describes one commit as reported by the version control tool.
type CommitInfo struct {
	Hash           string
	AuthorName     string
	AuthorEmail    string
	CommitterName  string
	CommitterEmail string
	Subject        string
}

// Head converts the commit into the payload shape expected by coverage services.
func (commit CommitInfo) Head() Head {
	return Head{
		ID:             commit.Hash,
		AuthorName:     commit.AuthorName,
		AuthorEmail:    commit.AuthorEmail,
		CommitterName:  commit.CommitterName,
		CommitterEmail: commit.CommitterEmail,
		Message:        commit.Subject,
	}
}

// Head is the serialized form of the head commit.
type Head struct {
	ID             string `json:"id" yaml:"id"`
	AuthorName     string `json:"author_name" yaml:"author_name"`
	AuthorEmail    string `json:"author_email" yaml:"author_email"`
	CommitterName  string `json:"committer_name" yaml:"committer_name"`
	CommitterEmail string `json:"committer_email" yaml:"committer_email"`
	Message        string `json:"message" yaml:"message"`
}

// Remote is a named fetch location.
type Remote struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// RepositoryMetadata is the normalized provenance record for one checkout.
type RepositoryMetadata struct {
	Head    Head     `json:"head" yaml:"head"`
	Branch  string   `json:"branch" yaml:"branch"`
	Remotes []Remote `json:"remotes" yaml:"remotes"`
}

// CommandExecutor exposes the subset of shell execution used by the readers.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteMercurial(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// DirectoryReader lists the immediate entries of a directory.
type DirectoryReader interface {
	ReadDir(path string) ([]fs.DirEntry, error)
}

// EnvironmentLookup resolves an environment variable, reporting whether it was set.
type EnvironmentLookup func(name string) (string, bool)

// MetadataReader extracts metadata from a checkout managed by one version control system.
type MetadataReader interface {
	Read(executionContext context.Context, repositoryRoot string) (RepositoryMetadata, error)
}
