// Package config loads and persists the bbq configuration at ~/.bbq/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvRootDir overrides the configured root directory for one invocation.
const EnvRootDir = "BBQ_ROOT_DIR"

// WorktreeNamesCities is the default_worktree_name sentinel that enables
// generated city-name worktree names.
const WorktreeNamesCities = "cities"

// Config holds the bbq configuration.
type Config struct {
	RootDir             string `toml:"root_dir,omitempty"`
	Theme               string `toml:"theme,omitempty"`
	Editor              string `toml:"editor,omitempty"`
	Terminal            string `toml:"terminal,omitempty"`
	GithubUserPrefix    *bool  `toml:"github_user_prefix,omitempty"`
	DefaultWorktreeName string `toml:"default_worktree_name,omitempty"`
	CheckUpdates        *bool  `toml:"check_updates,omitempty"`

	// KnownLatestVersion is written by the background update check,
	// never by the user.
	KnownLatestVersion string `toml:"known_latest_version,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{}
}

// Dir returns the bbq config directory (~/.bbq).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".bbq"), nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Root resolves the root directory for all repo/worktree state.
// Precedence: BBQ_ROOT_DIR env > root_dir config > ~/.bbq.
func (c Config) Root() (string, error) {
	if env := os.Getenv(EnvRootDir); env != "" {
		return env, nil
	}
	if c.RootDir != "" {
		return expandPath(c.RootDir)
	}
	return Dir()
}

// UseCityNames reports whether worktree names default to generated city names.
func (c Config) UseCityNames() bool {
	return strings.EqualFold(strings.TrimSpace(c.DefaultWorktreeName), WorktreeNamesCities)
}

// GithubPrefixEnabled reports whether branches created for named
// worktrees are prefixed with the GitHub username. Enabled unless
// explicitly turned off.
func (c Config) GithubPrefixEnabled() bool {
	return c.GithubUserPrefix == nil || *c.GithubUserPrefix
}

// UpdatesEnabled reports whether the background update check should run.
// Enabled unless explicitly turned off.
func (c Config) UpdatesEnabled() bool {
	return c.CheckUpdates == nil || *c.CheckUpdates
}

// ValidatePath checks that the path is absolute or starts with ~.
// Relative paths like "." or ".." are rejected.
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // not configured
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads the config from ~/.bbq/config.toml.
// Returns Default() if the file doesn't exist (no error).
// Returns Default() plus an error if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config file: %w", err)
	}

	if err := ValidatePath(cfg.RootDir, "root_dir"); err != nil {
		return Default(), err
	}

	return cfg, nil
}

const defaultConfig = `# bbq configuration

# Base directory for all managed repos and worktrees.
# Must be an absolute path or start with ~ (no relative paths).
# Bare repos live at <root_dir>/repos, worktrees at <root_dir>/worktrees.
# root_dir = "~/.bbq"

# Accent color for the interactive UI. One of: orange, green, red,
# blue, skyblue, magenta, yellow, gold, silver, white, lime, violet,
# pink.
# theme = "orange"

# Editor command for "worktree open" (overrides auto-detection).
# editor = "zed"

# Terminal command for "worktree open --target terminal".
# terminal = "wezterm"

# Prefix branches created for named worktrees with your GitHub
# username, e.g. octocat/tokyo. Requires the gh CLI.
# github_user_prefix = true

# Generate worktree names from a city-name table when no name is given.
# Only "cities" is recognized; unset checks out the default branch.
# default_worktree_name = "cities"

# Check for new releases in the background (homebrew installs only).
# check_updates = true
`

// Init creates a default config file at ~/.bbq/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}
	return path, nil
}
