package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vvka-141/vfsh/internal/logging"
	"github.com/vvka-141/vfsh/internal/sessionlog"
	"github.com/vvka-141/vfsh/internal/vfs"
	"github.com/vvka-141/vfsh/pkg/vfsh"
)

// ErrClosed is returned by Execute once exit has run.
var ErrClosed = errors.New("session closed")

// Log is the append-only sink the session records commands into.
type Log interface {
	Append(command string, at time.Time, status sessionlog.Status)
	Flush(path string) error
}

// Styles decorates user-visible text. Nil fields leave text unchanged.
type Styles struct {
	Error  func(string) string
	Branch func(string) string
}

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	LogPath    string
	TreeIndent string
	TreeBranch string
	Out        io.Writer
	Logger     vfsh.Logger
	Styles     Styles
	Clock      func() time.Time
}

// Session holds the working directory and the tree it navigates.
// It owns the tree and the log for its lifetime and is not safe for
// concurrent use.
type Session struct {
	tree    *vfs.Tree
	log     Log
	cwd     string
	exited  bool
	logPath string
	indent  string
	branch  string
	out     io.Writer
	logger  vfsh.Logger
	styles  Styles
	now     func() time.Time
}

// New creates a session rooted at "/".
// Panics if tree or log is nil.
func New(tree *vfs.Tree, log Log, opts Options) *Session {
	if tree == nil {
		panic("tree cannot be nil")
	}
	if log == nil {
		panic("log cannot be nil")
	}

	s := &Session{
		tree:    tree,
		log:     log,
		cwd:     vfsh.RootPath,
		logPath: opts.LogPath,
		indent:  opts.TreeIndent,
		branch:  opts.TreeBranch,
		out:     opts.Out,
		logger:  opts.Logger,
		styles:  opts.Styles,
		now:     opts.Clock,
	}
	if s.indent == "" {
		s.indent = vfsh.DefaultTreeIndent
	}
	if s.branch == "" {
		s.branch = vfsh.DefaultTreeBranch
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.logger == nil {
		s.logger = logging.NewNullLogger()
	}
	if s.styles.Error == nil {
		s.styles.Error = plain
	}
	if s.styles.Branch == nil {
		s.styles.Branch = plain
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func plain(s string) string { return s }

// Cwd returns the current working directory.
func (s *Session) Cwd() string {
	return s.cwd
}

// Exited reports whether exit has run.
func (s *Session) Exited() bool {
	return s.exited
}

// Ls prints the children of the working directory, one per line.
func (s *Session) Ls() error {
	return s.run("ls", func() error {
		s.reconcileCwd()
		node, err := s.tree.Lookup(s.cwd)
		if err != nil {
			s.failf("directory '%s' not found", s.cwd)
			return &vfs.PathError{Op: vfs.OpList, Path: s.cwd, Err: vfsh.ErrNotFound}
		}
		for _, name := range node.Names() {
			fmt.Fprintln(s.out, name)
		}
		return nil
	})
}

// Cd changes the working directory. On failure the working directory is
// left unchanged.
func (s *Session) Cd(path string) error {
	return s.run("cd "+path, func() error {
		target := vfs.Normalize(s.cwd, path)
		if !s.tree.Exists(target) {
			s.failf("directory '%s' not found", path)
			return &vfs.PathError{Op: vfs.OpChdir, Path: path, Err: vfsh.ErrNotFound}
		}
		s.logger.Verbose("cd: %s -> %s", s.cwd, target)
		s.cwd = target
		return nil
	})
}

// Rm removes the subtree at path, resolved from the root regardless of the
// working directory.
func (s *Session) Rm(path string) error {
	return s.run("rm "+path, func() error {
		if err := s.tree.Remove(path); err != nil {
			if errors.Is(err, vfsh.ErrRootRemoval) {
				s.failf("cannot remove root directory")
			} else {
				s.failf("file or directory '%s' not found", path)
			}
			return err
		}
		fmt.Fprintf(s.out, "Removed: %s\n", path)
		s.reconcileCwd()
		return nil
	})
}

// Tree prints the subtree at path, or at the working directory when path is
// empty.
func (s *Session) Tree(path string) error {
	command := "tree"
	if path != "" {
		command += " " + path
	}
	return s.run(command, func() error {
		s.reconcileCwd()
		target, shown := s.cwd, s.cwd
		if path != "" {
			target, shown = vfs.Normalize(s.cwd, path), path
		}

		node, err := s.tree.Lookup(target)
		if err != nil {
			s.failf("directory '%s' not found", shown)
			return &vfs.PathError{Op: vfs.OpTree, Path: shown, Err: vfsh.ErrNotFound}
		}
		node.Walk(func(name string, depth int) {
			fmt.Fprintln(s.out, strings.Repeat(s.indent, depth)+s.styles.Branch(s.branch)+name)
		})
		return nil
	})
}

// Exit records the exit command and flushes the log. The record is appended
// before the flush so the written document includes it.
func (s *Session) Exit() error {
	if s.exited {
		return ErrClosed
	}
	fmt.Fprintln(s.out, "Exiting...")
	s.log.Append("exit", s.now(), sessionlog.StatusOK)
	s.exited = true

	if err := s.log.Flush(s.logPath); err != nil {
		s.logger.Error("failed to write session log: %v", err)
		return err
	}
	s.logger.Verbose("session log written to %s", s.logPath)
	return nil
}

// run executes fn as the command named command and records the outcome.
// The timestamp is taken before fn runs.
func (s *Session) run(command string, fn func() error) (err error) {
	at := s.now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", command, r)
			s.failf("error: %v", err)
		}
		s.log.Append(command, at, statusFor(err))
	}()
	return fn()
}

// reconcileCwd moves the working directory to its nearest existing ancestor
// when a removal took it away.
func (s *Session) reconcileCwd() {
	if s.tree.Exists(s.cwd) {
		return
	}
	moved := s.tree.NearestExisting(s.cwd)
	s.logger.Verbose("working directory %s was removed, moving to %s", s.cwd, moved)
	s.cwd = moved
}

func (s *Session) failf(format string, args ...interface{}) {
	fmt.Fprintln(s.out, s.styles.Error(fmt.Sprintf(format, args...)))
}

func statusFor(err error) sessionlog.Status {
	switch {
	case err == nil:
		return sessionlog.StatusOK
	case errors.Is(err, vfsh.ErrNotFound):
		return sessionlog.StatusNotFound
	default:
		return sessionlog.StatusError
	}
}
