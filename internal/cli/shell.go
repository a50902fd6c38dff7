package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vvka-141/vfsh/internal/archive"
	"github.com/vvka-141/vfsh/internal/config"
	"github.com/vvka-141/vfsh/internal/logging"
	"github.com/vvka-141/vfsh/internal/session"
	"github.com/vvka-141/vfsh/internal/sessionlog"
	"github.com/vvka-141/vfsh/internal/tui"
	"github.com/vvka-141/vfsh/internal/vfs"
	"github.com/vvka-141/vfsh/pkg/vfsh"
)

type shellFlagValues struct {
	configPath string
	envFile    string
	color      string
}

var shellFlags shellFlagValues

func resetShellFlags() {
	shellFlags = shellFlagValues{}
}

// shellParams is everything a shell run needs once flags are parsed.
type shellParams struct {
	username    string
	archivePath string
	logPath     string
	verbose     bool
	flags       shellFlagValues
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	colorOut    func(setting string) bool
}

func runShell(cmd *cobra.Command, args []string) error {
	return startShell(shellParams{
		username:    args[0],
		archivePath: args[1],
		logPath:     args[2],
		verbose:     getVerboseFlag(cmd),
		flags:       shellFlags,
		in:          cmd.InOrStdin(),
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		colorOut:    tui.ColorEnabled,
	})
}

func startShell(p shellParams) error {
	cfg, err := loadShellConfig(p.flags)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLoggerTo(p.errOut, p.verbose || cfg.Verbose)
	logger.Verbose("config: prompt=%q color=%s", cfg.Prompt, cfg.Color)

	listing, err := archive.NewReader().ReadFile(p.archivePath)
	if err != nil {
		logger.Error("cannot load archive: %v", err)
		return err
	}
	tree := vfs.Build(listing.Entries)
	logger.Verbose("loaded %d entries (%s) into %d nodes", len(listing.Entries), listing.Format, tree.Root().Count())

	palette := tui.NewPalette(p.out, p.colorOut(cfg.Color))
	log := sessionlog.New(p.username)
	logger.Verbose("session %s for user %s, log at %s", log.ID(), p.username, p.logPath)

	sess := session.New(tree, log, session.Options{
		LogPath:    p.logPath,
		TreeIndent: cfg.TreeIndent,
		TreeBranch: cfg.TreeBranch,
		Out:        p.out,
		Logger:     logger,
		Styles:     session.Styles{Error: palette.Error, Branch: palette.Branch},
	})

	prompt := func() string {
		return sess.Prompt(cfg.Prompt, palette.User(p.username))
	}
	return runREPL(sess, p.in, p.out, prompt, logger)
}

// loadShellConfig resolves configuration from flags, files and environment.
// The --color flag wins over every other source.
func loadShellConfig(flags shellFlagValues) (*config.ShellConfig, error) {
	src := config.Sources{
		ConfigPath: vfsh.ConfigFileName,
		EnvFile:    flags.envFile,
	}
	if flags.configPath != "" {
		src.ConfigPath = flags.configPath
		src.Explicit = true
	}

	cfg, err := config.Resolve(src)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.color != "" {
		cfg.Color = flags.color
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// isExpectedCommandError reports failures the session has already shown to
// the user.
func isExpectedCommandError(err error) bool {
	return errors.Is(err, vfsh.ErrNotFound) ||
		errors.Is(err, vfsh.ErrUnknownCommand) ||
		errors.Is(err, vfsh.ErrRootRemoval)
}
