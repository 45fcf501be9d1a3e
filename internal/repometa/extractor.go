package repometa

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repometa/internal/filesystem"
)

const (
	repositoryDetectedMessageConstant = "repository detected"
	metadataExtractedMessageConstant  = "repository metadata extracted"
	logFieldRepositoryRootConstant    = "repository_root"
	logFieldVersionControlConstant    = "version_control_system"
	logFieldHeadConstant              = "head"
	logFieldBranchConstant            = "branch"
	logFieldRemoteCountConstant       = "remote_count"
)

// Dependencies enumerates collaborators required by the Extractor.
type Dependencies struct {
	CommandExecutor   CommandExecutor
	DirectoryReader   DirectoryReader
	EnvironmentLookup EnvironmentLookup
	Logger            *zap.Logger
}

// Extractor selects a reader by inspecting the checkout root and returns its metadata.
type Extractor struct {
	detector *Detector
	readers  map[VersionControlSystem]MetadataReader
	logger   *zap.Logger
}

// NewExtractor wires the git and mercurial readers around the provided dependencies.
func NewExtractor(dependencies Dependencies) (*Extractor, error) {
	if dependencies.CommandExecutor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}

	directoryReader := dependencies.DirectoryReader
	if directoryReader == nil {
		directoryReader = filesystem.OSFileSystem{}
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	gitReader, gitReaderError := NewGitReader(dependencies.CommandExecutor, dependencies.EnvironmentLookup)
	if gitReaderError != nil {
		return nil, gitReaderError
	}
	mercurialReader, mercurialReaderError := NewMercurialReader(dependencies.CommandExecutor, dependencies.EnvironmentLookup)
	if mercurialReaderError != nil {
		return nil, mercurialReaderError
	}

	return &Extractor{
		detector: NewDetector(directoryReader),
		readers: map[VersionControlSystem]MetadataReader{
			VersionControlSystemGit:       gitReader,
			VersionControlSystemMercurial: mercurialReader,
		},
		logger: logger,
	}, nil
}

// Extract returns the metadata of the checkout at repositoryRoot. Either the
// full record is returned or an error; partial results are never produced.
func (extractor *Extractor) Extract(executionContext context.Context, repositoryRoot string) (RepositoryMetadata, error) {
	if len(strings.TrimSpace(repositoryRoot)) == 0 {
		return RepositoryMetadata{}, ErrRepositoryRootRequired
	}

	versionControlSystem, detectionError := extractor.detector.Detect(repositoryRoot)
	if detectionError != nil {
		return RepositoryMetadata{}, detectionError
	}

	reader, readerAvailable := extractor.readers[versionControlSystem]
	if !readerAvailable {
		return RepositoryMetadata{}, fmt.Errorf(unrecognizedRepositoryTemplateConstant, ErrUnrecognizedRepository, repositoryRoot)
	}

	extractor.logger.Debug(
		repositoryDetectedMessageConstant,
		zap.String(logFieldRepositoryRootConstant, repositoryRoot),
		zap.String(logFieldVersionControlConstant, string(versionControlSystem)),
	)

	metadata, readError := reader.Read(executionContext, repositoryRoot)
	if readError != nil {
		return RepositoryMetadata{}, readError
	}

	extractor.logger.Info(
		metadataExtractedMessageConstant,
		zap.String(logFieldRepositoryRootConstant, repositoryRoot),
		zap.String(logFieldVersionControlConstant, string(versionControlSystem)),
		zap.String(logFieldHeadConstant, metadata.Head.ID),
		zap.String(logFieldBranchConstant, metadata.Branch),
		zap.Int(logFieldRemoteCountConstant, len(metadata.Remotes)),
	)

	return metadata, nil
}
