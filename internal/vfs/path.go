package vfs

import (
	"strings"

	"github.com/vvka-141/vfsh/pkg/vfsh"
)

const (
	separator  = "/"
	parentDir  = ".."
	currentDir = "."
)

// Normalize resolves input against cwd and returns an absolute path with a
// single leading slash and no empty or "." segments.
//
// "/" always yields the root. An input of exactly ".." yields the parent of
// cwd, and the root is its own parent. Any other ".." is kept as a literal
// segment.
func Normalize(cwd, input string) string {
	switch input {
	case vfsh.RootPath:
		return vfsh.RootPath
	case parentDir:
		return Parent(cwd)
	}

	joined := input
	if !IsAbs(input) {
		joined = cwd + separator + input
	}
	return Join(Segments(joined))
}

// IsAbs reports whether p starts at the root.
func IsAbs(p string) bool {
	return strings.HasPrefix(p, separator)
}

// Segments splits p on "/" and drops empty and "." components.
func Segments(p string) []string {
	parts := strings.Split(p, separator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == currentDir {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// Join builds an absolute path from segments. No segments means the root.
func Join(segments []string) string {
	if len(segments) == 0 {
		return vfsh.RootPath
	}
	return separator + strings.Join(segments, separator)
}

// Parent strips the final segment of p.
func Parent(p string) string {
	segments := Segments(p)
	if len(segments) == 0 {
		return vfsh.RootPath
	}
	return Join(segments[:len(segments)-1])
}

// SplitRaw trims surrounding slashes and splits on "/" without dropping
// anything, so "a//b" keeps its empty middle segment. A path made only of
// slashes yields a single empty segment.
func SplitRaw(p string) []string {
	return strings.Split(strings.Trim(p, separator), separator)
}
