// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"github.com/bureau-foundation/stacks/lib/library"
)

// EntryKind tags a display log entry.
type EntryKind int

const (
	// EntryBanner marks the session greeting. Banner entries survive
	// the clear command.
	EntryBanner EntryKind = iota
	// EntryCommand echoes a submitted command line.
	EntryCommand
	// EntryOutput is normal command output.
	EntryOutput
	// EntryError is a failed command. Error entries may carry fix
	// suggestions.
	EntryError
)

// Entry is one line group in the session's display log.
type Entry struct {
	Kind EntryKind
	Text string

	// Fixes are executable replacement command lines attached to an
	// error entry, best first, at most four.
	Fixes []string

	// Markdown marks Text as markdown file content, so the
	// presentation layer can render it richly instead of verbatim.
	Markdown bool
}

// Notifier receives a callback whenever the working directory or the
// last-opened file changes. Injected at construction so the dispatcher
// stays testable without a live presentation layer; fire-and-forget.
type Notifier interface {
	// WorkingNodeChanged reports the current working directory and
	// the canonical path of the last opened file ("" if none).
	WorkingNodeChanged(directoryPath, filePath string)
}

// AddressSync mirrors navigation into an external address surface
// (a URL bar on the web, the terminal title here). Fire-and-forget.
type AddressSync interface {
	// DirectoryEntered fires when the working directory changes.
	DirectoryEntered(path string)
	// FileOpened fires when a file is opened, with its content slug.
	FileOpened(slug string)
}

// Options configures a new session. The zero value of every field is
// usable: missing banner and aliases fall back to defaults, nil
// collaborators are skipped.
type Options struct {
	// StartPath is the initial working directory. Must resolve to a
	// directory; falls back to root otherwise.
	StartPath string

	// Banner lines shown at session start. Empty means the default
	// banner.
	Banner []string

	// Aliases are extra alias→command entries merged over the
	// defaults (dir→ls, ll→ls, cls→clear, ?→help, b→back).
	Aliases map[string]string

	// HintChips are the onboarding hint commands the presentation
	// layer may display until a file is opened.
	HintChips []string

	// History preloads the command-string history (oldest first),
	// typically from a persistent store.
	History []string

	// HistorySink, when set, receives every non-blank submitted line.
	HistorySink func(line string)

	Notifier Notifier
	Address  AddressSync
}

// defaultAliases is the fixed base alias table.
var defaultAliases = map[string]string{
	"dir": "ls",
	"ll":  "ls",
	"cls": "clear",
	"?":   "help",
	"b":   "back",
}

// defaultBanner greets a visitor who has not configured one.
var defaultBanner = []string{
	"Welcome to the stacks.",
	"Type help to look around, or ls to see what's on the shelf.",
}

// defaultHintChips are shown until the visitor opens something.
var defaultHintChips = []string{"ls", "tree", "help"}

// Session is the shell's state machine: the working-directory history
// stack, the command-string history, and the display log. All
// mutation happens through Execute, one atomic transition per line;
// the content tree itself is never touched.
type Session struct {
	root        *library.Dir
	searchIndex *library.SearchIndex

	aliases   map[string]string
	hintChips []string
	banner    []string

	// pathHistory is the stack of visited working directories. The
	// floor (index 0) is the start path and is never popped; the top
	// is the current working directory.
	pathHistory []string

	// commands is the raw command-string history, oldest first.
	commands []string

	log []Entry

	onboarding     onboardingState
	onboardingUsed bool
	hintsHidden    bool

	lastOpenedFile string
	lastOpenedSlug string

	notifier    Notifier
	address     AddressSync
	historySink func(string)
}

// NewSession creates a session over an immutable content tree. The
// log opens with one banner entry and the working directory starts at
// options.StartPath (root when unset or invalid).
func NewSession(root *library.Dir, options Options) *Session {
	aliases := make(map[string]string, len(defaultAliases)+len(options.Aliases))
	for alias, target := range defaultAliases {
		aliases[alias] = target
	}
	for alias, target := range options.Aliases {
		aliases[alias] = target
	}

	banner := options.Banner
	if len(banner) == 0 {
		banner = defaultBanner
	}
	hintChips := options.HintChips
	if len(hintChips) == 0 {
		hintChips = defaultHintChips
	}

	start := library.Root
	if options.StartPath != "" && root != nil {
		canonical, err := library.Resolve(root, library.Root, options.StartPath)
		if err == nil {
			if node, ok := library.Lookup(root, canonical); ok {
				if _, isDir := node.(*library.Dir); isDir {
					start = canonical
				}
			}
		}
	}

	session := &Session{
		root:        root,
		searchIndex: library.NewSearchIndex(root),
		aliases:     aliases,
		hintChips:   hintChips,
		banner:      banner,
		pathHistory: []string{start},
		commands:    append([]string(nil), options.History...),
		notifier:    options.Notifier,
		address:     options.Address,
		historySink: options.HistorySink,
	}
	for _, line := range banner {
		session.log = append(session.log, Entry{Kind: EntryBanner, Text: line})
	}
	return session
}

// WorkingDir returns the current working directory (top of the path
// history stack).
func (session *Session) WorkingDir() string {
	return session.pathHistory[len(session.pathHistory)-1]
}

// Root returns the content tree root.
func (session *Session) Root() *library.Dir { return session.root }

// Log returns the display log, oldest entry first. The returned slice
// must not be mutated.
func (session *Session) Log() []Entry { return session.log }

// CommandHistory returns the raw command-string history, oldest
// first. The returned slice must not be mutated.
func (session *Session) CommandHistory() []string { return session.commands }

// HistoryDepth returns the size of the working-directory stack.
func (session *Session) HistoryDepth() int { return len(session.pathHistory) }

// HintChips returns the onboarding hint commands, or nil once the
// visitor has opened a file (open permanently suppresses them).
func (session *Session) HintChips() []string {
	if session.hintsHidden {
		return nil
	}
	return session.hintChips
}

// OnboardingActive reports whether the guided-onboarding detour is
// consuming input, gating normal dispatch.
func (session *Session) OnboardingActive() bool {
	return session.onboarding != onboardingIdle
}

// Execute runs one command line through the full pipeline: echo,
// history, onboarding gate, tokenize, dispatch. Every submitted line
// produces exactly one atomic state transition; malformed input is
// data, not a fault, and always leaves the session usable.
func (session *Session) Execute(line string) {
	session.appendEntry(Entry{Kind: EntryCommand, Text: line})

	if trimmed := trimSpace(line); trimmed != "" {
		session.commands = append(session.commands, line)
		if session.historySink != nil {
			session.historySink(line)
		}
	}

	if session.OnboardingActive() {
		session.advanceOnboarding(line)
		return
	}

	parsed, err := session.parseCommand(line)
	if err != nil {
		session.appendError("parse error: "+err.Error(), nil)
		return
	}
	if parsed == nil {
		return
	}
	session.dispatch(parsed)
}

// appendEntry appends one entry to the display log.
func (session *Session) appendEntry(entry Entry) {
	session.log = append(session.log, entry)
}

// appendOutput appends a plain output entry.
func (session *Session) appendOutput(text string) {
	session.appendEntry(Entry{Kind: EntryOutput, Text: text})
}

// appendError appends an error entry with at most maxFixes fix
// suggestions.
func (session *Session) appendError(text string, fixes []string) {
	if len(fixes) > maxFixes {
		fixes = fixes[:maxFixes]
	}
	session.appendEntry(Entry{Kind: EntryError, Text: text, Fixes: fixes})
}

// clearLog drops every entry except banners. If no banner entry
// existed (a prior custom state), the default banner is restored so
// the log is never entirely empty.
func (session *Session) clearLog() {
	var kept []Entry
	for _, entry := range session.log {
		if entry.Kind == EntryBanner {
			kept = append(kept, entry)
		}
	}
	if len(kept) == 0 {
		for _, line := range session.banner {
			kept = append(kept, Entry{Kind: EntryBanner, Text: line})
		}
	}
	session.log = kept
}

// visitDirectory pushes a new working directory onto the history
// stack and fires the navigation collaborators.
func (session *Session) visitDirectory(path string) {
	session.pathHistory = append(session.pathHistory, path)
	session.notifyNavigation()
	if session.address != nil {
		session.address.DirectoryEntered(path)
	}
}

// stepBack pops one history step. At the floor it is a no-op with a
// notice — never a failure.
func (session *Session) stepBack() {
	if len(session.pathHistory) == 1 {
		session.appendOutput("back: already at the beginning")
		return
	}
	session.pathHistory = session.pathHistory[:len(session.pathHistory)-1]
	session.notifyNavigation()
	if session.address != nil {
		session.address.DirectoryEntered(session.WorkingDir())
	}
}

// openFile records a file open: remembers the last-opened file,
// permanently hides the hint chips, and fires the collaborators.
func (session *Session) openFile(path string, file *library.File) {
	session.lastOpenedFile = path
	session.lastOpenedSlug = file.Slug()
	session.hintsHidden = true
	session.notifyNavigation()
	if session.address != nil {
		session.address.FileOpened(file.Slug())
	}
}

func (session *Session) notifyNavigation() {
	if session.notifier != nil {
		session.notifier.WorkingNodeChanged(session.WorkingDir(), session.lastOpenedFile)
	}
}

// trimSpace is a minimal space/tab trim; the tokenizer defines what
// counts as whitespace and this must agree with it.
func trimSpace(line string) string {
	start := 0
	for start < len(line) && (line[start] == ' ' || line[start] == '\t') {
		start++
	}
	end := len(line)
	for end > start && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	return line[start:end]
}
