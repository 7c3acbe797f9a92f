// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tidwall/jsonc"
)

// Config is the master configuration for the stacks shell.
type Config struct {
	// Library is the root directory of the content tree.
	Library string `json:"library"`

	// StartPath is the working directory the session opens in,
	// as a path inside the library ("/" when empty).
	StartPath string `json:"start_path"`

	// Banner lines shown when the session starts. Empty means the
	// built-in greeting.
	Banner []string `json:"banner"`

	// Aliases are extra alias-to-command entries merged over the
	// built-in set.
	Aliases map[string]string `json:"aliases"`

	// HintChips are the commands suggested in the status bar until
	// the visitor opens a file. Empty means the built-in set.
	HintChips []string `json:"hint_chips"`

	// History configures the persistent command history.
	History HistoryConfig `json:"history"`

	// Log configures diagnostic logging.
	Log LogConfig `json:"log"`
}

// HistoryConfig configures the persistent command history store.
type HistoryConfig struct {
	// File is the bbolt database path. Empty disables persistence;
	// the session keeps an in-memory history only.
	File string `json:"file"`

	// Limit is how many recent commands are loaded into a new
	// session. Default: 500.
	Limit int `json:"limit"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// File receives structured JSON log output. Empty means log
	// records go to the TUI status bar only.
	File string `json:"file"`

	// Level is the minimum level: "debug", "info", "warn", "error".
	// Default: info.
	Level string `json:"level"`
}

// Default returns the default configuration. These defaults are used
// as a base before loading the config file, so every field has a
// sensible value when the file omits it.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	stateDir := filepath.Join(homeDir, ".local", "state", "stacks")

	return &Config{
		StartPath: "/",
		History: HistoryConfig{
			File:  filepath.Join(stateDir, "history.db"),
			Limit: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the STACKS_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks - if STACKS_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("STACKS_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("STACKS_CONFIG environment variable not set; " +
			"set it to the path of your stacks.jsonc config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values. The only expansion performed is
// ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()

	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Library = expandVars(c.Library, vars)
	c.History.File = expandVars(c.History.File, vars)
	c.Log.File = expandVars(c.Log.File, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Library == "" {
		errs = append(errs, fmt.Errorf("library is required"))
	}

	if c.StartPath == "" {
		errs = append(errs, fmt.Errorf("start_path must not be empty (use \"/\" for the root)"))
	}

	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit must not be negative"))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	for alias, target := range c.Aliases {
		if alias == "" || target == "" {
			errs = append(errs, fmt.Errorf("aliases must map non-empty names (got %q: %q)", alias, target))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses the configured log level string.
func (c *Config) LogLevel() (slog.Level, error) {
	switch c.Log.Level {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
}

// EnsureStateDir creates the directory holding the history database
// if persistence is enabled.
func (c *Config) EnsureStateDir() error {
	if c.History.File == "" {
		return nil
	}
	dir := filepath.Dir(c.History.File)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
