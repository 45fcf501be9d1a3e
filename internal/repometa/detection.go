package repometa

import (
	"fmt"
)

const (
	gitControlDirectoryNameConstant       = ".git"
	mercurialControlDirectoryNameConstant = ".hg"
)

// Detector recognizes the version control system managing a checkout root.
type Detector struct {
	directoryReader DirectoryReader
}

// NewDetector constructs a Detector over the provided directory reader.
func NewDetector(directoryReader DirectoryReader) *Detector {
	return &Detector{directoryReader: directoryReader}
}

// Detect inspects the immediate listing of repositoryRoot. A .git entry takes
// precedence over .hg; a .git file (worktree or submodule) counts as a checkout.
func (detector *Detector) Detect(repositoryRoot string) (VersionControlSystem, error) {
	directoryEntries, listingError := detector.directoryReader.ReadDir(repositoryRoot)
	if listingError != nil {
		return VersionControlSystemUnrecognized, fmt.Errorf(directoryListingErrorTemplateConstant, repositoryRoot, listingError)
	}

	gitEntryFound := false
	mercurialEntryFound := false
	for _, directoryEntry := range directoryEntries {
		switch directoryEntry.Name() {
		case gitControlDirectoryNameConstant:
			gitEntryFound = true
		case mercurialControlDirectoryNameConstant:
			mercurialEntryFound = true
		}
	}

	switch {
	case gitEntryFound:
		return VersionControlSystemGit, nil
	case mercurialEntryFound:
		return VersionControlSystemMercurial, nil
	default:
		return VersionControlSystemUnrecognized, nil
	}
}
