package vfsh

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := sess.Execute("cd nope")
//	if errors.Is(err, vfsh.ErrNotFound) {
//	    // path did not resolve, cwd unchanged
//	}
var (
	// ErrNotFound indicates a path did not resolve to a node.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArchive indicates the archive is missing, unreadable or not a
	// supported archive format.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrUnknownCommand indicates the input line matched no command.
	ErrUnknownCommand = errors.New("command not found")

	// ErrRootRemoval indicates an attempt to remove the root node.
	ErrRootRemoval = errors.New("cannot remove root")

	// ErrLogAlreadyFlushed indicates the session log was written before.
	ErrLogAlreadyFlushed = errors.New("session log already flushed")

	// ErrLogFlushFailed indicates the session log could not be persisted.
	ErrLogFlushFailed = errors.New("session log flush failed")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// usageErrorPatterns are substrings of cobra's argument and flag errors.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"missing required argument",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidArchive):
		return ExitArchiveError
	case errors.Is(err, ErrLogFlushFailed), errors.Is(err, ErrLogAlreadyFlushed):
		return ExitLogFlushFailed
	}

	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
