package repometa

import (
	"strings"
)

const (
	commitFieldCountConstant           = 6
	commitFieldSeparatorConstant       = "\n"
	remoteFieldCountConstant           = 2
	gitFetchRemoteSuffixConstant       = "(fetch)"
	mercurialPathSeparatorConstant     = " = "
	headCommitOperationNameConstant    = "head commit"
	remoteListingOperationNameConstant = "remote listing"
)

// parseCommitInfo splits a six-field commit record. The subject is the last
// field, so it keeps any embedded newlines before being trimmed as a whole.
func parseCommitInfo(output string) (CommitInfo, error) {
	fields := strings.SplitN(output, commitFieldSeparatorConstant, commitFieldCountConstant)
	if len(fields) < commitFieldCountConstant {
		return CommitInfo{}, MalformedOutputError{
			Operation:      headCommitOperationNameConstant,
			ExpectedFields: commitFieldCountConstant,
			ActualFields:   len(fields),
		}
	}

	return CommitInfo{
		Hash:           fields[0],
		AuthorName:     fields[1],
		AuthorEmail:    fields[2],
		CommitterName:  fields[3],
		CommitterEmail: fields[4],
		Subject:        strings.TrimSpace(fields[5]),
	}, nil
}

// parseGitFetchRemotes keeps the fetch direction of `git remote -v` output.
func parseGitFetchRemotes(output string) ([]Remote, error) {
	remotes := []Remote{}
	for _, line := range splitOutputLines(output) {
		if !strings.HasSuffix(line, gitFetchRemoteSuffixConstant) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < remoteFieldCountConstant {
			return nil, MalformedOutputError{Operation: remoteListingOperationNameConstant, Line: line}
		}
		remotes = append(remotes, Remote{Name: fields[0], URL: fields[1]})
	}
	return remotes, nil
}

// parseMercurialPaths splits `hg paths` entries of the form "name = url".
func parseMercurialPaths(output string) ([]Remote, error) {
	remotes := []Remote{}
	for _, line := range splitOutputLines(output) {
		name, location, separatorFound := strings.Cut(line, mercurialPathSeparatorConstant)
		if !separatorFound {
			return nil, MalformedOutputError{Operation: remoteListingOperationNameConstant, Line: line}
		}
		remotes = append(remotes, Remote{Name: name, URL: location})
	}
	return remotes, nil
}

func splitOutputLines(output string) []string {
	trimmedOutput := strings.TrimSpace(output)
	if len(trimmedOutput) == 0 {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(trimmedOutput, commitFieldSeparatorConstant) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		lines = append(lines, trimmedLine)
	}
	return lines
}
