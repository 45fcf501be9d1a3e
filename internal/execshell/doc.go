// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging, optional timeouts, and
// lifecycle notifications. OSCommandRunner is the default os/exec backed
// runner. Every command carries its own working directory so callers never
// change the process-wide current directory.
package execshell
