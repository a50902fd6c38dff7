package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	modTime time.Time
}

// MemoryFileSystem implements Provider for in-memory testing.
// Paths are normalized to forward slashes; there are no directories.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string]*memoryFile)}
}

func normalizePath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// AddFile stores content at p, replacing any previous file.
func (mfs *MemoryFileSystem) AddFile(p string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[normalizePath(p)] = &memoryFile{
		content: append([]byte(nil), content...),
		modTime: time.Now(),
	}
}

// Content returns the bytes stored at p.
func (mfs *MemoryFileSystem) Content(p string) ([]byte, bool) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	file, ok := mfs.files[normalizePath(p)]
	if !ok {
		return nil, false
	}
	return file.content, true
}

func (mfs *MemoryFileSystem) Open(p string) (io.ReadCloser, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	file, ok := mfs.files[normalizePath(p)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", p, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(file.content)), nil
}

func (mfs *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	file, ok := mfs.files[normalizePath(p)]
	if !ok {
		return nil, fmt.Errorf("path not found: %s: %w", p, fs.ErrNotExist)
	}
	return &memoryFileInfo{
		name:    path.Base(normalizePath(p)),
		size:    int64(len(file.content)),
		modTime: file.modTime,
	}, nil
}

func (mfs *MemoryFileSystem) WriteFile(p string, data []byte) error {
	mfs.AddFile(p, data)
	return nil
}
