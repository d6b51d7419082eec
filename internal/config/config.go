package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds the backport configuration. Global values come from the
// TOML file, per-repository values from the repo's git config; flags
// override both.
type Config struct {
	Upstream      string `toml:"upstream"`       // default upstream ref for diff
	Difftool      string `toml:"difftool"`       // external two-file diff viewer
	Sensitivity   int    `toml:"sensitivity"`    // 0 functional, 1 +contextual, 2+ all matched
	ConfigureOpts string `toml:"configure_opts"` // options passed to ./configure by compile
	MakeOpts      string `toml:"make_opts"`      // options passed to make by compile
	LogDir        string `toml:"log_dir"`        // where compile/foreach logs go, "" = cwd
	LogFile       string `toml:"log_file"`       // log file name override
	Color         string `toml:"color"`          // auto, always, or never
	Pause         bool   `toml:"pause"`          // confirm between viewer launches
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Difftool: "meld",
		Color:    "auto",
		Pause:    true,
	}
}

// ValidateColor checks a color mode value.
func ValidateColor(mode string) error {
	switch mode {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("invalid color mode %q: must be \"auto\", \"always\", or \"never\"", mode)
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "backport", "config.toml"), nil
}

// Load reads config from ~/.config/backport/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML config data over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateColor(cfg.Color); err != nil {
		return Default(), err
	}
	if cfg.Sensitivity < 0 {
		return Default(), fmt.Errorf("invalid sensitivity %d: must be >= 0", cfg.Sensitivity)
	}
	if cfg.Difftool == "" {
		return Default(), errors.New("difftool must not be empty")
	}

	// Expand ~ in log_dir (shell doesn't expand in config files)
	if cfg.LogDir != "" {
		expanded, err := expandPath(cfg.LogDir)
		if err != nil {
			return Default(), fmt.Errorf("expand log_dir: %w", err)
		}
		cfg.LogDir = expanded
	}

	return cfg, nil
}

// ParseSensitivity converts a persisted sensitivity value.
func ParseSensitivity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid sensitivity %q: must be a non-negative integer", s)
	}
	return n, nil
}

const defaultConfig = `# backport configuration

# Default upstream ref for "backport diff" when -u is not given.
# Usually set per repository instead:
#   git config backport.upstream origin/master
# upstream = "origin/master"

# External diff viewer invoked with the upstream and downstream patch
# files as its two arguments. Any two-file tool works.
difftool = "meld"

# Queue sensitivity for "backport diff":
#   0 - view commits with functional differences only
#   1 - also view commits that differ only in context
#   2 - view every commit that has an upstream match
sensitivity = 0

# Options passed to ./configure and make by "backport compile".
# Usually set per repository instead:
#   git config backport.configureopts -- '--target-list=x86_64-softmmu'
# configure_opts = ""
# make_opts = "-j8"

# Where compile/foreach logs are written. Empty means the current
# directory. The file name defaults to build.log / foreach.log.
# log_dir = "~/backport-logs"
# log_file = ""

# Colored output: "auto" (default, on when stdout is a terminal),
# "always", or "never".
color = "auto"

# Ask for confirmation before each viewer launch. Set to false to run
# through the queue without stopping.
pause = true
`

// Init creates a default config file at ~/.config/backport/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}
