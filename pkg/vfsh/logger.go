package vfsh

// Logger provides a pluggable logging interface for shell diagnostics.
// Command output is not routed through it; only startup, configuration and
// failure details are.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}
