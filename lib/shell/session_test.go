// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/stacks/lib/library"
)

// testLibrary builds the fixture tree used across the shell tests:
//
//	/
//	├── books/
//	│   ├── fiction/
//	│   │   ├── dune
//	│   │   └── solaris
//	│   └── reading-list
//	└── about
func testLibrary(t *testing.T) *library.Dir {
	t.Helper()

	fiction, err := library.NewDir("fiction", library.Metadata{Title: "Fiction"},
		library.NewFile("dune", "books/fiction/dune", library.Metadata{Title: "Dune", Tags: []string{"scifi"}}, "# Dune\n\nSpice.\n"),
		library.NewFile("solaris", "books/fiction/solaris", library.Metadata{Title: "Solaris"}, "# Solaris\n"))
	if err != nil {
		t.Fatal(err)
	}
	books, err := library.NewDir("books", library.Metadata{Title: "Bookshelf"},
		fiction,
		library.NewFile("reading-list", "books/reading-list", library.Metadata{}, "- Dune\n"))
	if err != nil {
		t.Fatal(err)
	}
	root, err := library.NewDir("", library.Metadata{},
		books,
		library.NewFile("about", "about", library.Metadata{Title: "About"}, "Hello.\n"))
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func newTestSession(t *testing.T, options Options) *Session {
	t.Helper()
	return NewSession(testLibrary(t), options)
}

// lastEntry returns the most recent log entry.
func lastEntry(t *testing.T, session *Session) Entry {
	t.Helper()
	log := session.Log()
	if len(log) == 0 {
		t.Fatal("empty log")
	}
	return log[len(log)-1]
}

func TestSessionStartsWithBanner(t *testing.T) {
	session := newTestSession(t, Options{})
	log := session.Log()
	if len(log) == 0 || log[0].Kind != EntryBanner {
		t.Fatal("session must open with a banner entry")
	}
	if session.WorkingDir() != library.Root {
		t.Errorf("initial working directory = %q", session.WorkingDir())
	}
}

func TestChangeDirAndBack(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("cd books")
	if session.WorkingDir() != "/books" {
		t.Fatalf("cwd = %q", session.WorkingDir())
	}
	session.Execute("cd fiction")
	if session.WorkingDir() != "/books/fiction" {
		t.Fatalf("cwd = %q", session.WorkingDir())
	}

	session.Execute("back")
	if session.WorkingDir() != "/books" {
		t.Errorf("back should restore /books, got %q", session.WorkingDir())
	}
}

func TestDotDotReturnsToPreviousDirectory(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("cd books")
	session.Execute("cd ..")
	session.Execute("pwd")
	if entry := lastEntry(t, session); entry.Text != "/" {
		t.Errorf("pwd after cd .. = %q, want /", entry.Text)
	}
}

func TestBackAtFloorIsNoOpWithNotice(t *testing.T) {
	session := newTestSession(t, Options{})

	depth := session.HistoryDepth()
	session.Execute("back")
	if session.HistoryDepth() != depth {
		t.Error("back at the floor must not change history depth")
	}
	entry := lastEntry(t, session)
	if entry.Kind != EntryOutput {
		t.Errorf("expected a notice entry, got kind %d", entry.Kind)
	}
	if !strings.Contains(entry.Text, "already") {
		t.Errorf("notice text = %q", entry.Text)
	}
}

func TestHomeRecordsHistoryEntry(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("cd books")
	depth := session.HistoryDepth()
	session.Execute("home")
	if session.WorkingDir() != library.Root {
		t.Errorf("home should land at root, got %q", session.WorkingDir())
	}
	if session.HistoryDepth() != depth+1 {
		t.Error("home must push a history entry")
	}
	session.Execute("back")
	if session.WorkingDir() != "/books" {
		t.Errorf("back after home should restore /books, got %q", session.WorkingDir())
	}
}

func TestClearRetainsBanner(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("ls")
	session.Execute("pwd")
	session.Execute("clear")

	for _, entry := range session.Log() {
		if entry.Kind != EntryBanner {
			t.Fatalf("clear left a non-banner entry: %+v", entry)
		}
	}
	if len(session.Log()) == 0 {
		t.Fatal("clear must keep (or restore) the banner")
	}
}

func TestClearRestoresDefaultBannerWhenNoneExists(t *testing.T) {
	session := newTestSession(t, Options{})

	// Strip every entry, banner included, then clear.
	session.log = nil
	session.Execute("clear")

	var banners int
	for _, entry := range session.Log() {
		if entry.Kind == EntryBanner {
			banners++
		}
	}
	if banners == 0 {
		t.Fatal("clear with no banner must restore the default banner")
	}
}

func TestCatDirectoryIsADirectoryWithFixes(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("cat books")
	entry := lastEntry(t, session)
	if entry.Kind != EntryError {
		t.Fatalf("expected error entry, got %+v", entry)
	}
	if !strings.Contains(entry.Text, "is a directory") {
		t.Errorf("error text = %q", entry.Text)
	}
	wantFixes := map[string]bool{"ls /books": false, "open /books": false}
	for _, fix := range entry.Fixes {
		if _, tracked := wantFixes[fix]; tracked {
			wantFixes[fix] = true
		}
	}
	for fix, seen := range wantFixes {
		if !seen {
			t.Errorf("missing fix %q in %v", fix, entry.Fixes)
		}
	}
}

func TestCatFilePrintsMarkdownContent(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("cat about")
	entry := lastEntry(t, session)
	if entry.Kind != EntryOutput || !entry.Markdown {
		t.Fatalf("expected markdown output, got %+v", entry)
	}
	if entry.Text != "Hello.\n" {
		t.Errorf("content = %q", entry.Text)
	}
}

func TestUnknownCommandSuggestsWithArgumentTail(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("lls books")
	entry := lastEntry(t, session)
	if entry.Kind != EntryError {
		t.Fatalf("expected error entry, got %+v", entry)
	}
	if len(entry.Fixes) == 0 || entry.Fixes[0] != "ls books" {
		t.Errorf("expected first fix \"ls books\", got %v", entry.Fixes)
	}
}

func TestPathNotFoundSuggestsSiblings(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("cd boooks")
	entry := lastEntry(t, session)
	if entry.Kind != EntryError {
		t.Fatalf("expected error entry, got %+v", entry)
	}
	found := false
	for _, fix := range entry.Fixes {
		if fix == "cd /books" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected \"cd /books\" fix, got %v", entry.Fixes)
	}
}

func TestMissingArgument(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("cd")
	entry := lastEntry(t, session)
	if entry.Kind != EntryError || !strings.Contains(entry.Text, "missing argument") {
		t.Fatalf("expected missing-argument error, got %+v", entry)
	}
}

func TestUnclosedQuoteIsParseError(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute(`open "deep`)
	entry := lastEntry(t, session)
	if entry.Kind != EntryError || !strings.Contains(entry.Text, "unclosed quote") {
		t.Fatalf("expected parse error, got %+v", entry)
	}
}

func TestWhitespaceOnlyLineIsNotAnError(t *testing.T) {
	session := newTestSession(t, Options{})

	before := len(session.Log())
	session.Execute("   ")
	log := session.Log()
	// Exactly one entry: the command echo. No output, no error.
	if len(log) != before+1 {
		t.Fatalf("expected only the echo entry, log grew by %d", len(log)-before)
	}
	if log[len(log)-1].Kind != EntryCommand {
		t.Errorf("expected command echo, got %+v", log[len(log)-1])
	}
	if len(session.CommandHistory()) != 0 {
		t.Error("blank lines must not enter command history")
	}
}

func TestOpenFileSuppressesHintChipsPermanently(t *testing.T) {
	session := newTestSession(t, Options{})

	if len(session.HintChips()) == 0 {
		t.Fatal("hint chips should show before any open")
	}
	session.Execute("open about")
	if session.HintChips() != nil {
		t.Error("open must suppress hint chips")
	}
	session.Execute("home")
	if session.HintChips() != nil {
		t.Error("suppression must be permanent")
	}
}

func TestOpenDirectoryChangesWorkingDir(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("open books")
	if session.WorkingDir() != "/books" {
		t.Errorf("cwd = %q", session.WorkingDir())
	}
}

// recordingNotifier captures collaborator callbacks for assertions.
type recordingNotifier struct {
	directories []string
	files       []string
	opened      []string
	entered     []string
}

func (r *recordingNotifier) WorkingNodeChanged(directoryPath, filePath string) {
	r.directories = append(r.directories, directoryPath)
	r.files = append(r.files, filePath)
}

func (r *recordingNotifier) DirectoryEntered(path string) {
	r.entered = append(r.entered, path)
}

func (r *recordingNotifier) FileOpened(slug string) {
	r.opened = append(r.opened, slug)
}

func TestNotifierAndAddressSyncFire(t *testing.T) {
	recorder := &recordingNotifier{}
	session := NewSession(testLibrary(t), Options{Notifier: recorder, Address: recorder})

	session.Execute("cd books")
	session.Execute("open fiction/dune")

	if len(recorder.entered) == 0 || recorder.entered[0] != "/books" {
		t.Errorf("DirectoryEntered = %v", recorder.entered)
	}
	if len(recorder.opened) != 1 || recorder.opened[0] != "books/fiction/dune" {
		t.Errorf("FileOpened = %v", recorder.opened)
	}
	last := len(recorder.directories) - 1
	if recorder.directories[last] != "/books" || recorder.files[last] != "/books/fiction/dune" {
		t.Errorf("WorkingNodeChanged = (%q, %q)",
			recorder.directories[last], recorder.files[last])
	}
}

func TestCommandHistoryRecordsRawLines(t *testing.T) {
	var sunk []string
	session := NewSession(testLibrary(t), Options{
		History:     []string{"pwd"},
		HistorySink: func(line string) { sunk = append(sunk, line) },
	})

	session.Execute("cd books")
	session.Execute("lls")

	history := session.CommandHistory()
	want := []string{"pwd", "cd books", "lls"}
	if len(history) != len(want) {
		t.Fatalf("history = %v", history)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, history[i], want[i])
		}
	}
	if len(sunk) != 2 {
		t.Errorf("sink received %v", sunk)
	}
}

func TestSearchCommand(t *testing.T) {
	session := newTestSession(t, Options{})

	session.Execute("search scifi")
	entry := lastEntry(t, session)
	if entry.Kind != EntryOutput || !strings.Contains(entry.Text, "/books/fiction/dune") {
		t.Fatalf("search output = %+v", entry)
	}

	session.Execute("search zzzz")
	entry = lastEntry(t, session)
	if entry.Kind != EntryOutput || !strings.Contains(entry.Text, "nothing matches") {
		t.Errorf("empty search must be a message, not an error: %+v", entry)
	}
}

func TestNilRootIsRecoverable(t *testing.T) {
	session := NewSession(nil, Options{})

	session.Execute("cd books")
	entry := lastEntry(t, session)
	if entry.Kind != EntryError || !strings.Contains(entry.Text, "unavailable") {
		t.Fatalf("expected unavailable error, got %+v", entry)
	}

	// The session keeps answering.
	session.Execute("pwd")
	if lastEntry(t, session).Text != "/" {
		t.Error("pwd should still work with no library")
	}
}
