package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// RequireShellArgs validates that username, archive and log path are all
// provided and non-blank.
func RequireShellArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 3 {
		missing := []string{"<username>", "<archive>", "<log_path>"}[len(args):]
		return fmt.Errorf(`missing required argument: %s

Usage: %s

Example:
  %s alice ./rootfs.tar ./session.xml`, strings.Join(missing, " "), cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 3 {
		return fmt.Errorf("accepts 3 arg(s), received %d", len(args))
	}
	for i, name := range []string{"username", "archive", "log_path"} {
		if strings.TrimSpace(args[i]) == "" {
			return fmt.Errorf("invalid argument %q for <%s>: must not be empty", args[i], name)
		}
	}
	return nil
}
