// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// stacks is an interactive terminal shell for browsing a personal
// library: a read-only content tree of markdown files organized into
// shelves. It emulates a small, forgiving filesystem shell (cd, ls,
// tree, cat, search) over content loaded once at startup.
//
// The library root comes from --library or from a JSONC config file
// (--config or the STACKS_CONFIG environment variable). Command
// history persists across sessions in a bbolt database; pass
// --history-file "" to keep a session ephemeral.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/stacks/lib/config"
	"github.com/bureau-foundation/stacks/lib/histstore"
	"github.com/bureau-foundation/stacks/lib/library"
	"github.com/bureau-foundation/stacks/lib/shell"
	"github.com/bureau-foundation/stacks/lib/shellui"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var libraryPath string
	var configPath string
	var startPath string
	var historyFile string
	var logFile string

	flagSet := pflag.NewFlagSet("stacks", pflag.ContinueOnError)
	flagSet.StringVar(&libraryPath, "library", "", "root directory of the content tree (overrides config)")
	flagSet.StringVar(&configPath, "config", "", "path to the JSONC config file (default: $STACKS_CONFIG)")
	flagSet.StringVar(&startPath, "start", "", "initial working directory inside the library (overrides config)")
	flagSet.StringVar(&historyFile, "history-file", "", "bbolt command history database (overrides config; empty string in config disables)")
	flagSet.StringVar(&logFile, "log-file", "", "write JSON log records to this file (in addition to the status bar)")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("stacks %s\n", version)
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if libraryPath != "" {
		cfg.Library = libraryPath
	}
	if startPath != "" {
		cfg.StartPath = startPath
	}
	if flagSet.Changed("history-file") {
		cfg.History.File = historyFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Background logging goes to the TUI status bar; writing to stderr
	// would corrupt the alt-screen display. An optional file logger
	// captures everything for post-mortem debugging.
	uiHandler := shellui.NewUILogHandler(slog.LevelWarn)
	logger, closeLog, err := buildLogger(uiHandler, cfg, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	root, err := library.Load(cfg.Library, logger)
	if err != nil {
		return fmt.Errorf("loading library from %s: %w", cfg.Library, err)
	}

	options := shell.Options{
		StartPath: cfg.StartPath,
		Banner:    cfg.Banner,
		Aliases:   cfg.Aliases,
		HintChips: cfg.HintChips,
		Address:   terminalTitleSync{},
	}
	if store := openHistory(cfg, logger); store != nil {
		defer store.Close()
		options.History = loadRecentHistory(store, cfg.History.Limit, logger)
		options.HistorySink = func(line string) {
			if _, err := store.Add(line); err != nil {
				logger.Warn("history write failed", "error", err)
			}
		}
	}

	session := shell.NewSession(root, options)
	model := shellui.NewModel(session)
	program := tea.NewProgram(model, tea.WithAltScreen())

	uiHandler.SetProgram(program)

	_, err = program.Run()
	return err
}

// loadConfig resolves the configuration: an explicit --config path
// wins, then STACKS_CONFIG, then built-in defaults (which require
// --library to name the content tree).
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	if os.Getenv("STACKS_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// buildLogger assembles the slog pipeline: the TUI status bar handler,
// optionally fanned out to a JSON file. Returns the logger and a
// cleanup function for the file.
func buildLogger(uiHandler *shellui.UILogHandler, cfg *config.Config, logFile string) (*slog.Logger, func(), error) {
	if logFile == "" {
		logFile = cfg.Log.File
	}
	if logFile == "" {
		return slog.New(uiHandler), func() {}, nil
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Create(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file %s: %w", logFile, err)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(fanoutHandler{uiHandler, fileHandler}), func() { file.Close() }, nil
}

// openHistory opens the persistent history store. Failure degrades to
// an in-memory session history with a warning rather than refusing to
// start: a locked or corrupt database should not keep the visitor
// from browsing.
func openHistory(cfg *config.Config, logger *slog.Logger) *histstore.Store {
	if cfg.History.File == "" {
		return nil
	}
	if err := cfg.EnsureStateDir(); err != nil {
		logger.Warn("history disabled", "error", err)
		return nil
	}
	store, err := histstore.Open(cfg.History.File)
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return nil
	}
	return store
}

func loadRecentHistory(store *histstore.Store, limit int, logger *slog.Logger) []string {
	lines, err := store.Recent(limit)
	if err != nil {
		logger.Warn("history preload failed", "error", err)
		return nil
	}
	return lines
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `stacks — interactive terminal shell for browsing a personal library.

The library is a directory tree of markdown files with optional YAML
frontmatter (title, tags, date). Directories may carry an index.md
whose frontmatter titles the shelf. Type "help" inside the shell for
the command list.

Usage:
  stacks [flags]

Examples:
  # Browse a library directory
  stacks --library ~/library

  # Use a config file for banner, aliases, and history settings
  stacks --config ~/.config/stacks/stacks.jsonc

  # One-off session without touching the saved history
  stacks --library ~/library --history-file ""

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// terminalTitleSync mirrors shell navigation into the terminal title
// via the OSC 0 escape sequence. Writes directly to /dev/tty to
// bypass bubbletea's managed output — title changes are invisible (no
// screen effect) so they are safe alongside the TUI renderer.
//
// Uses BEL (\x07) as the OSC terminator rather than ST (\x1b\\)
// because BEL is a single byte that survives intact through layered
// terminal environments (SSH, tmux, screen).
type terminalTitleSync struct{}

func (terminalTitleSync) DirectoryEntered(path string) {
	setTerminalTitle("stacks " + path)
}

func (terminalTitleSync) FileOpened(slug string) {
	setTerminalTitle("stacks " + slug)
}

func setTerminalTitle(title string) {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	fmt.Fprintf(tty, "\x1b]0;%s\x07", title)
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
