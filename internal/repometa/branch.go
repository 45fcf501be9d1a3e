package repometa

import (
	"context"
	"os"
	"strings"
)

const (
	// CircleBranchEnvironmentVariable carries the branch built by CircleCI.
	CircleBranchEnvironmentVariable = "CIRCLE_BRANCH"
	// TravisBranchEnvironmentVariable carries the branch built by Travis CI.
	TravisBranchEnvironmentVariable = "TRAVIS_BRANCH"
)

var branchEnvironmentVariables = []string{
	CircleBranchEnvironmentVariable,
	TravisBranchEnvironmentVariable,
}

type branchQuery func(executionContext context.Context) (string, error)

type branchResolver struct {
	lookup EnvironmentLookup
}

func newBranchResolver(lookup EnvironmentLookup) branchResolver {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return branchResolver{lookup: lookup}
}

// resolve returns the first non-empty CI branch variable and runs the tool
// query only when none is set.
func (resolver branchResolver) resolve(executionContext context.Context, query branchQuery) (string, error) {
	for _, variableName := range branchEnvironmentVariables {
		if value, present := resolver.lookup(variableName); present && len(value) > 0 {
			return value, nil
		}
	}

	branchName, queryError := query(executionContext)
	if queryError != nil {
		return "", queryError
	}
	return strings.TrimSpace(branchName), nil
}
