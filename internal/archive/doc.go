// Package archive enumerates the member names of an archive so the shell can
// build its virtual tree. Contents are never extracted.
//
// Supported formats, detected from the leading bytes:
//   - tar (ustar, GNU and PAX)
//   - gzip-compressed tar or cpio
//   - cpio in the SVR4 "newc" encoding
//
// Anything else, including an empty or truncated file, is rejected with an
// error wrapping vfsh.ErrInvalidArchive.
package archive
