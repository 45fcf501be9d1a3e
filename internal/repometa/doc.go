// Package repometa extracts version-control provenance (head commit, branch,
// and fetch remotes) from a repository checkout for attachment to coverage
// report uploads.
//
// Extractor recognizes git and mercurial checkouts by their control directory
// and queries the corresponding command-line tool. Every query runs with the
// checkout root as its own working directory; the process working directory is
// never changed, so concurrent extractions against different roots are safe.
package repometa
