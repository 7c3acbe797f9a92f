// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bureau-foundation/stacks/lib/fuzzy"
	"github.com/bureau-foundation/stacks/lib/library"
)

// maxFixes caps the fix suggestions attached to any error entry.
const maxFixes = 4

// defaultTreeDepth bounds tree output when no depth argument is given.
const defaultTreeDepth = 4

// completeMode declares what kind of path argument a command expects,
// driving both autocomplete filtering and did-you-mean recovery.
type completeMode int

const (
	completeNone completeMode = iota
	completeDirectory
	completeFile
	completeEither
)

// allows reports whether a child of the given kind may be suggested
// for this mode.
func (mode completeMode) allows(isDir bool) bool {
	switch mode {
	case completeDirectory:
		return isDir
	case completeFile:
		return !isDir
	case completeEither:
		return true
	default:
		return false
	}
}

// commandSpec is one row of the dispatch table.
type commandSpec struct {
	name    string
	summary string
	usage   string
	mode    completeMode
	minArgs int
	run     func(session *Session, args []string)
}

// commandTable maps canonical command names to their specs. The
// vocabulary order used for help and suggestion ranking is derived
// from this table, sorted by name.
var commandTable map[string]commandSpec

// init populates commandTable at startup; a plain composite-literal
// initializer would form an initialization cycle through DidYouMean.
func init() {
	commandTable = map[string]commandSpec{
		"cd": {
			name: "cd", summary: "Change the working directory", usage: "cd <directory>",
			mode: completeDirectory, minArgs: 1,
			run: (*Session).runChangeDir,
		},
		"ls": {
			name: "ls", summary: "List the working directory",
			run: (*Session).runList,
		},
		"pwd": {
			name: "pwd", summary: "Print the working directory",
			run: (*Session).runPrintWorkingDir,
		},
		"home": {
			name: "home", summary: "Jump back to the root shelf",
			run: (*Session).runHome,
		},
		"back": {
			name: "back", summary: "Return to the previously visited directory",
			run: (*Session).runBack,
		},
		"open": {
			name: "open", summary: "Open a directory or read a file", usage: "open <path>",
			mode: completeEither, minArgs: 1,
			run: (*Session).runOpen,
		},
		"cat": {
			name: "cat", summary: "Print a file's content", usage: "cat <file>",
			mode: completeFile, minArgs: 1,
			run: (*Session).runCat,
		},
		"tree": {
			name: "tree", summary: "Show a directory tree", usage: "tree [-L <depth>] [path]",
			mode: completeEither,
			run:  (*Session).runTree,
		},
		"search": {
			name: "search", summary: "Search names, titles, and tags", usage: "search <query>",
			minArgs: 1,
			run:     (*Session).runSearch,
		},
		"summary": {
			name: "summary", summary: "Describe this library",
			run: (*Session).runSummary,
		},
		"help": {
			name: "help", summary: "Show available commands",
			run: (*Session).runHelp,
		},
		"clear": {
			name: "clear", summary: "Clear the screen",
			run: (*Session).runClear,
		},
	}
}

// commandVocabulary returns every canonical command name in sorted
// order. Stable ordering keeps suggestion ranking deterministic.
func commandVocabulary() []string {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dispatch routes a parsed command through the table. Unknown names
// and missing arguments become error entries with fixes; they never
// disturb the rest of the session state.
func (session *Session) dispatch(parsed *ParsedCommand) {
	spec, known := commandTable[parsed.Name]
	if !known {
		session.appendError("command not found: "+parsed.Name,
			session.unknownCommandFixes(parsed))
		return
	}
	if len(parsed.Args) < spec.minArgs {
		session.appendError(fmt.Sprintf("%s: missing argument\nusage: %s", spec.name, spec.usage), nil)
		return
	}
	spec.run(session, parsed.Args)
}

// unknownCommandFixes ranks the typed name against the vocabulary and
// re-appends the original argument tail to each suggested correction,
// so every fix is directly executable.
func (session *Session) unknownCommandFixes(parsed *ParsedCommand) []string {
	tail := ""
	if len(parsed.Args) > 0 {
		tail = " " + strings.Join(parsed.Args, " ")
	}

	var fixes []string
	for _, name := range fuzzy.Rank(parsed.Name, commandVocabulary(), maxFixes) {
		fixes = append(fixes, name+tail)
	}
	return fixes
}

// resolveTarget resolves a path argument and appends the appropriate
// error entry on failure. The returned node is nil when the caller
// should stop.
func (session *Session) resolveTarget(commandName, target string) (string, library.Node) {
	canonical, err := library.Resolve(session.root, session.WorkingDir(), target)
	if err != nil {
		var notFound *library.NotFoundError
		switch {
		case errors.As(err, &notFound):
			session.appendError(err.Error(), session.DidYouMean(commandName, notFound))
		case errors.Is(err, library.ErrUnavailable):
			session.appendError("the library is unavailable", nil)
		default:
			session.appendError(err.Error(), nil)
		}
		return "", nil
	}

	node, ok := library.Lookup(session.root, canonical)
	if !ok {
		notFound := &library.NotFoundError{
			Path:    canonical,
			Parent:  parentPath(canonical),
			Segment: lastSegment(canonical),
		}
		session.appendError(notFound.Error(), session.DidYouMean(commandName, notFound))
		return "", nil
	}
	return canonical, node
}

func (session *Session) runChangeDir(args []string) {
	canonical, node := session.resolveTarget("cd", args[0])
	if node == nil {
		return
	}
	switch node.(type) {
	case *library.Dir:
		session.visitDirectory(canonical)
	case *library.File:
		session.appendError("not a directory: "+canonical,
			[]string{"cat " + canonical, "open " + canonical})
	}
}

func (session *Session) runList(_ []string) {
	node, ok := library.Lookup(session.root, session.WorkingDir())
	if !ok {
		session.appendError("the library is unavailable", nil)
		return
	}
	directory, isDir := node.(*library.Dir)
	if !isDir {
		session.appendError("not a directory: "+session.WorkingDir(), nil)
		return
	}

	children := directory.Children()
	if len(children) == 0 {
		session.appendOutput("(empty)")
		return
	}
	var lines []string
	for _, child := range children {
		if _, childIsDir := child.(*library.Dir); childIsDir {
			lines = append(lines, child.Name()+"/")
		} else {
			lines = append(lines, child.Name())
		}
	}
	session.appendOutput(strings.Join(lines, "\n"))
}

func (session *Session) runPrintWorkingDir(_ []string) {
	session.appendOutput(session.WorkingDir())
}

func (session *Session) runHome(_ []string) {
	session.visitDirectory(library.Root)
}

func (session *Session) runBack(_ []string) {
	session.stepBack()
}

func (session *Session) runOpen(args []string) {
	canonical, node := session.resolveTarget("open", args[0])
	if node == nil {
		return
	}
	switch target := node.(type) {
	case *library.Dir:
		session.visitDirectory(canonical)
	case *library.File:
		session.openFile(canonical, target)
		session.appendEntry(Entry{Kind: EntryOutput, Text: target.Content(), Markdown: true})
	}
}

func (session *Session) runCat(args []string) {
	canonical, node := session.resolveTarget("cat", args[0])
	if node == nil {
		return
	}
	switch target := node.(type) {
	case *library.Dir:
		session.appendError("is a directory: "+canonical,
			[]string{"ls " + canonical, "open " + canonical})
	case *library.File:
		session.appendEntry(Entry{Kind: EntryOutput, Text: target.Content(), Markdown: true})
	}
}

// runTree accepts three depth spellings: "-L <n>", a leading bare
// integer, or nothing (default depth). An optional path argument
// follows.
func (session *Session) runTree(args []string) {
	depth := defaultTreeDepth
	rest := args

	switch {
	case len(args) > 0 && args[0] == "-L":
		if len(args) < 2 {
			session.appendError("tree: -L requires a depth", nil)
			return
		}
		parsed, err := strconv.Atoi(args[1])
		if err != nil || parsed < 0 {
			session.appendError("tree: invalid depth: "+args[1], nil)
			return
		}
		depth = parsed
		rest = args[2:]
	case len(args) > 0:
		if parsed, err := strconv.Atoi(args[0]); err == nil {
			if parsed < 0 {
				session.appendError("tree: invalid depth: "+args[0], nil)
				return
			}
			depth = parsed
			rest = args[1:]
		}
	}

	target := "."
	if len(rest) > 0 {
		target = rest[0]
	}

	canonical, node := session.resolveTarget("tree", target)
	if node == nil {
		return
	}
	displayName := lastSegment(canonical)
	if displayName == "" {
		displayName = library.Root
	}
	session.appendOutput(strings.Join(RenderTree(node, displayName, depth), "\n"))
}

func (session *Session) runSearch(args []string) {
	query := strings.Join(args, " ")
	hits := session.searchIndex.Search(query)
	if len(hits) == 0 {
		session.appendOutput(fmt.Sprintf("nothing matches %q", query))
		return
	}

	var lines []string
	for _, hit := range hits {
		line := hit.Path
		if _, isDir := hit.Node.(*library.Dir); isDir {
			line += "/"
		}
		if title := hit.Node.Meta().Title; title != "" && title != hit.Node.Name() {
			line += " — " + title
		}
		lines = append(lines, line)
	}
	session.appendOutput(strings.Join(lines, "\n"))
}

func (session *Session) runSummary(_ []string) {
	directories, files := 0, 0
	if session.root != nil {
		countNodes(session.root, &directories, &files)
	}
	var text strings.Builder
	text.WriteString("A read-only library you browse like a filesystem.\n")
	fmt.Fprintf(&text, "%d directories, %d files under %s\n\n", directories, files, library.Root)
	text.WriteString("Move around with cd, look around with ls and tree,\n")
	text.WriteString("and read anything with open or cat. help lists everything.")
	session.appendOutput(text.String())
}

func (session *Session) runHelp(_ []string) {
	if !session.onboardingUsed {
		session.startOnboarding()
		return
	}
	session.appendOutput(helpText())
}

// helpText renders the command grid grouped by category.
func helpText() string {
	categories := []struct {
		heading string
		names   []string
	}{
		{"Navigate", []string{"cd", "ls", "pwd", "home", "back"}},
		{"Read", []string{"open", "cat", "tree", "search"}},
		{"Session", []string{"summary", "help", "clear"}},
	}

	var text strings.Builder
	for index, category := range categories {
		if index > 0 {
			text.WriteString("\n")
		}
		text.WriteString(category.heading + "\n")
		for _, name := range category.names {
			spec := commandTable[name]
			usage := spec.usage
			if usage == "" {
				usage = spec.name
			}
			fmt.Fprintf(&text, "  %-20s %s\n", usage, spec.summary)
		}
	}
	return strings.TrimRight(text.String(), "\n")
}

func (session *Session) runClear(_ []string) {
	session.clearLog()
}

// countNodes tallies the directories and files below a directory.
func countNodes(directory *library.Dir, directories, files *int) {
	for _, child := range directory.Children() {
		switch sub := child.(type) {
		case *library.Dir:
			*directories++
			countNodes(sub, directories, files)
		case *library.File:
			*files++
		}
	}
}

// parentPath returns the canonical path one level up, clamped at root.
func parentPath(path string) string {
	segments := library.Split(path)
	if len(segments) == 0 {
		return library.Root
	}
	return library.Join(segments[:len(segments)-1])
}

// lastSegment returns the final path segment, or "" for root.
func lastSegment(path string) string {
	segments := library.Split(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
