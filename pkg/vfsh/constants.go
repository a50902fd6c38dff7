package vfsh

// Exit codes for semantic error classification.
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Session ended with exit
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration
	ExitArchiveError   = 11 // Archive missing, unreadable or malformed
	ExitLogFlushFailed = 12 // Session log could not be written
)

const (
	// ConfigFileName is the shell configuration looked up in the working directory.
	ConfigFileName = "vfsh.yaml"

	// DefaultPrompt is rendered before each input line.
	// {user} and {cwd} are substituted.
	DefaultPrompt = "{user}@shell:{cwd}$ "

	// DefaultTreeIndent is repeated once per nesting level in tree output.
	DefaultTreeIndent = "    "

	// DefaultTreeBranch precedes every name in tree output.
	DefaultTreeBranch = "|-- "

	// RootPath is the absolute path of the tree root.
	RootPath = "/"

	// EnvPrefix namespaces every environment override.
	EnvPrefix = "VFSH_"
)
