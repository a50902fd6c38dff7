package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/vfsh/pkg/vfsh"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variable names, all prefixed with vfsh.EnvPrefix.
const (
	EnvPrompt     = vfsh.EnvPrefix + "PROMPT"
	EnvTreeIndent = vfsh.EnvPrefix + "TREE_INDENT"
	EnvTreeBranch = vfsh.EnvPrefix + "TREE_BRANCH"
	EnvColor      = vfsh.EnvPrefix + "COLOR"
	EnvVerbose    = vfsh.EnvPrefix + "VERBOSE"
)

type ShellConfig struct {
	Prompt     string `yaml:"prompt"`
	TreeIndent string `yaml:"tree_indent"`
	TreeBranch string `yaml:"tree_branch"`
	Color      string `yaml:"color"`
	Verbose    bool   `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *ShellConfig {
	return &ShellConfig{
		Prompt:     vfsh.DefaultPrompt,
		TreeIndent: vfsh.DefaultTreeIndent,
		TreeBranch: vfsh.DefaultTreeBranch,
		Color:      ColorAuto,
	}
}

// Load reads the YAML file at path on top of the defaults. Keys missing from
// the file keep their default values.
func Load(path string) (*ShellConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w: %s: %v", vfsh.ErrInvalidConfig, path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", vfsh.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file without touching the
// process environment.
func LoadEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%w: env file %s: %v", vfsh.ErrInvalidConfig, path, err)
	}
	return values, nil
}

// ApplyEnv overrides fields from lookup, which reports whether a variable is
// set.
func (c *ShellConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrompt); ok {
		c.Prompt = v
	}
	if v, ok := lookup(EnvTreeIndent); ok {
		c.TreeIndent = v
	}
	if v, ok := lookup(EnvTreeBranch); ok {
		c.TreeBranch = v
	}
	if v, ok := lookup(EnvColor); ok {
		c.Color = v
	}
	if v, ok := lookup(EnvVerbose); ok && v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", vfsh.ErrInvalidConfig, EnvVerbose, v)
		}
		c.Verbose = verbose
	}
	return nil
}

// Validate fills blank fields with defaults and rejects unknown color modes.
func (c *ShellConfig) Validate() error {
	defaults := Default()
	if c.Prompt == "" {
		c.Prompt = defaults.Prompt
	}
	if c.TreeBranch == "" {
		c.TreeBranch = defaults.TreeBranch
	}
	if c.TreeIndent == "" {
		c.TreeIndent = defaults.TreeIndent
	}

	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be %s, %s or %s, got %q",
			vfsh.ErrInvalidConfig, ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	return nil
}

// Sources names where configuration comes from. Empty fields are skipped.
type Sources struct {
	// ConfigPath is a YAML file. A missing file is an error only when
	// Explicit is set.
	ConfigPath string
	Explicit   bool

	// EnvFile is a dotenv file consulted after the process environment.
	EnvFile string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Resolve merges all sources. Precedence, highest first: process
// environment, dotenv file, YAML file, defaults.
func Resolve(src Sources) (*ShellConfig, error) {
	cfg := Default()
	if src.ConfigPath != "" {
		loaded, err := Load(src.ConfigPath)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, ErrConfigNotFound) && !src.Explicit:
		case errors.Is(err, ErrConfigNotFound):
			return nil, fmt.Errorf("%w: %s: %v", vfsh.ErrInvalidConfig, src.ConfigPath, err)
		default:
			return nil, err
		}
	}

	fileEnv := map[string]string{}
	if src.EnvFile != "" {
		values, err := LoadEnvFile(src.EnvFile)
		if err != nil {
			return nil, err
		}
		fileEnv = values
	}

	lookupEnv := src.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	lookup := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
