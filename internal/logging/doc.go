// Package logging provides concrete implementations of the vfsh.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr (or any writer) with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// Diagnostics never share a stream with command output.
package logging
