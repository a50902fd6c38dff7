package vfs

import (
	"fmt"

	"github.com/vvka-141/vfsh/pkg/vfsh"
)

// Operation names for consistent error reporting.
const (
	OpLookup = "lookup"
	OpList   = "ls"
	OpChdir  = "cd"
	OpRemove = "rm"
	OpTree   = "tree"
)

// PathError wraps a tree failure with the operation and the path as the user
// typed it.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func notFound(op, path string) *PathError {
	return &PathError{Op: op, Path: path, Err: vfsh.ErrNotFound}
}
