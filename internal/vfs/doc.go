// Package vfs provides the in-memory virtual filesystem the shell navigates.
//
// The tree is built once from the member names of an archive. Nodes carry no
// payload and no file/directory flag: a node with zero children is both an
// empty directory and a leaf. Children keep the order in which they were first
// seen, which is the order ls and tree print them.
//
// Path handling is pure string manipulation and never consults the tree:
//   - Normalize: resolve an input path against a working directory
//   - Segments: split an absolute path into non-empty components
//   - SplitRaw: the root-relative split used by removal
//
// Known quirks kept for compatibility:
//   - Only an input that is exactly ".." moves up a level. In "a/../b" the ".."
//     is a literal segment and fails lookup.
//   - Remove ignores the working directory and always resolves from the root.
package vfs
