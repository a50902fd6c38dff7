// Package filesystem abstracts the host files the shell touches: the archive
// it reads at startup and the session log it writes at exit.
//
// Implementations:
//   - OSFileSystem: production implementation backed by the os package
//   - MemoryFileSystem: in-memory implementation for tests
package filesystem
