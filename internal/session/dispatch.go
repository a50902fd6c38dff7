package session

import (
	"fmt"
	"strings"

	"github.com/vvka-141/vfsh/pkg/vfsh"
)

// Execute dispatches one input line. Surrounding whitespace is ignored and a
// blank line is a no-op. Lines matching no command are reported and return
// vfsh.ErrUnknownCommand without being recorded.
func (s *Session) Execute(line string) error {
	if s.exited {
		return ErrClosed
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	switch {
	case line == "ls":
		return s.Ls()
	case strings.HasPrefix(line, "cd "):
		return s.Cd(strings.TrimSpace(line[len("cd "):]))
	case strings.HasPrefix(line, "rm "):
		return s.Rm(strings.TrimSpace(line[len("rm "):]))
	case line == "tree":
		return s.Tree("")
	case strings.HasPrefix(line, "tree "):
		return s.Tree(strings.TrimSpace(line[len("tree "):]))
	case line == "exit":
		return s.Exit()
	}

	s.failf("command '%s' not found.", line)
	return fmt.Errorf("%w: %s", vfsh.ErrUnknownCommand, line)
}

// Prompt renders template with {user} and {cwd} substituted.
func (s *Session) Prompt(template, user string) string {
	return strings.NewReplacer("{user}", user, "{cwd}", s.cwd).Replace(template)
}
