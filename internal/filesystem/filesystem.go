package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// Provider opens host files for reading and replaces them on write.
type Provider interface {
	// Open returns a reader for the file at path.
	// Missing files yield an error wrapping fs.ErrNotExist.
	Open(path string) (io.ReadCloser, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)

	// WriteFile creates or truncates the file at path and writes data.
	WriteFile(path string, data []byte) error
}
