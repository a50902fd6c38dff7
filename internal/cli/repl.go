package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/vfsh/internal/session"
	"github.com/vvka-141/vfsh/pkg/vfsh"
)

// errInputClosed ends a session whose input ran out before exit.
var errInputClosed = errors.New("input closed before exit; session log not written")

// runREPL reads one line at a time and dispatches it until exit. Lines have
// no length limit; a final line without a newline still runs.
// The log is flushed only by exit; running out of input loses it.
func runREPL(sess *session.Session, in io.Reader, out io.Writer, prompt func() string, logger vfsh.Logger) error {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, prompt())
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			fmt.Fprintln(out)
			return fmt.Errorf("failed to read input: %w", readErr)
		}
		if readErr != nil && line == "" {
			fmt.Fprintln(out)
			logger.Error("%v", errInputClosed)
			return errInputClosed
		}

		err := sess.Execute(line)
		if sess.Exited() {
			return err
		}
		if err != nil && !isExpectedCommandError(err) {
			logger.Verbose("command failed: %v", err)
		}
	}
}
