package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vfsh <username> <archive> <log_path>",
	Short: "Interactive shell over a read-only archive",
	Long: `vfsh loads the member names of an archive into an in-memory tree and opens
an interactive shell over it. Contents are never extracted; removals only
change the in-memory tree.

Arguments:
  username    Name shown in the prompt and recorded in the session log
  archive     tar, tar.gz or cpio (newc) archive to browse
  log_path    Where the XML session log is written on exit

Commands inside the shell:
  ls              List the current directory
  cd <path>       Change directory ("/" for root, ".." for parent)
  rm <path>       Remove a file or directory (path is taken from the root)
  tree [path]     Print the directory tree
  exit            Write the session log and quit

The session log is written only by exit. Ending the session any other way
(Ctrl-C, Ctrl-D, a closed pipe) discards it.

Exit Codes:
  0  - Session ended with exit
  1  - General error (including input closed before exit)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Archive missing, unreadable or malformed
  12 - Session log could not be written`,
	Args:         RequireShellArgs,
	RunE:         runShell,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose diagnostics on stderr")
	rootCmd.Flags().StringVar(&shellFlags.configPath, "config", "", "Path to a YAML config file (default: ./vfsh.yaml if present)")
	rootCmd.Flags().StringVar(&shellFlags.envFile, "env-file", "", "Dotenv file with VFSH_* overrides")
	rootCmd.Flags().StringVar(&shellFlags.color, "color", "", "Color output: auto, always or never")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
