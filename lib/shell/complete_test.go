// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"testing"
)

func suggestionLabels(completion Completion) []string {
	var labels []string
	for _, suggestion := range completion.Suggestions {
		labels = append(labels, suggestion.Label)
	}
	return labels
}

func TestCompleteCommandPrefix(t *testing.T) {
	session := newTestSession(t, Options{})

	completion := session.Complete("c")
	labels := suggestionLabels(completion)
	want := []string{"cat", "cd", "clear"}
	if len(labels) != len(want) {
		t.Fatalf("got %v", labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("suggestion %d = %q, want %q", i, labels[i], want[i])
		}
	}
	if completion.Ghost != "at" {
		t.Errorf("ghost = %q, want remainder of top candidate", completion.Ghost)
	}
}

func TestCompleteCommandNoFuzzyJump(t *testing.T) {
	session := newTestSession(t, Options{})

	// "hl" is close to "help" by edit distance, but command-position
	// completion is prefix-only: it must not jump to a dissimilar
	// command mid-typing.
	completion := session.Complete("hl")
	if len(completion.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", suggestionLabels(completion))
	}
}

func TestCompleteEmptyLine(t *testing.T) {
	session := newTestSession(t, Options{})
	if completion := session.Complete(""); len(completion.Suggestions) != 0 || completion.Ghost != "" {
		t.Errorf("empty line should complete to nothing, got %+v", completion)
	}
}

func TestCompleteArgumentDirectoryMode(t *testing.T) {
	session := newTestSession(t, Options{})

	// cd only completes directories: /about (a file) is filtered out.
	completion := session.Complete("cd ")
	labels := suggestionLabels(completion)
	if len(labels) != 1 || labels[0] != "books/" {
		t.Errorf("got %v", labels)
	}
}

func TestCompleteArgumentFileMode(t *testing.T) {
	session := newTestSession(t, Options{})

	completion := session.Complete("cat a")
	labels := suggestionLabels(completion)
	if len(labels) != 1 || labels[0] != "about" {
		t.Errorf("got %v", labels)
	}
	if completion.Ghost != "bout" {
		t.Errorf("ghost = %q", completion.Ghost)
	}
}

func TestCompleteArgumentEitherMode(t *testing.T) {
	session := newTestSession(t, Options{})

	completion := session.Complete("open ")
	labels := suggestionLabels(completion)
	// Directories first, then files, matching display order.
	want := []string{"books/", "about"}
	if len(labels) != len(want) {
		t.Fatalf("got %v", labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("suggestion %d = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestCompleteArgumentNestedPath(t *testing.T) {
	session := newTestSession(t, Options{})

	completion := session.Complete("open books/fiction/d")
	if len(completion.Suggestions) != 1 {
		t.Fatalf("got %v", suggestionLabels(completion))
	}
	suggestion := completion.Suggestions[0]
	if suggestion.Insert != "books/fiction/dune" {
		t.Errorf("insert = %q", suggestion.Insert)
	}
	if suggestion.Kind != SuggestFile {
		t.Errorf("kind = %d", suggestion.Kind)
	}
	if completion.Ghost != "une" {
		t.Errorf("ghost = %q", completion.Ghost)
	}
}

func TestCompleteArgumentRelativeToWorkingDir(t *testing.T) {
	session := newTestSession(t, Options{})
	session.Execute("cd books")

	completion := session.Complete("cd f")
	labels := suggestionLabels(completion)
	if len(labels) != 1 || labels[0] != "fiction/" {
		t.Errorf("got %v", labels)
	}
}

func TestCompleteArgumentCaseInsensitivePrefix(t *testing.T) {
	session := newTestSession(t, Options{})

	completion := session.Complete("cd BOO")
	if len(completion.Suggestions) != 1 || completion.Suggestions[0].Insert != "books/" {
		t.Errorf("got %+v", completion.Suggestions)
	}
}

func TestCompleteArgumentNoneMode(t *testing.T) {
	session := newTestSession(t, Options{})
	if completion := session.Complete("pwd b"); len(completion.Suggestions) != 0 {
		t.Errorf("pwd takes no path argument, got %v", suggestionLabels(completion))
	}
}

func TestCompleteUnknownCommandArgument(t *testing.T) {
	session := newTestSession(t, Options{})
	if completion := session.Complete("nonsense b"); len(completion.Suggestions) != 0 {
		t.Errorf("unknown commands complete to nothing, got %v", suggestionLabels(completion))
	}
}

func TestAcceptCommandAppendsSpace(t *testing.T) {
	got := Accept("op", Suggestion{Kind: SuggestCommand, Insert: "open"})
	if got != "open " {
		t.Errorf("got %q", got)
	}
}

func TestAcceptDirectoryOmitsSpace(t *testing.T) {
	got := Accept("cd bo", Suggestion{Kind: SuggestDirectory, Insert: "books/"})
	if got != "cd books/" {
		t.Errorf("got %q", got)
	}
}

func TestAcceptFileAppendsSpace(t *testing.T) {
	got := Accept("cat ab", Suggestion{Kind: SuggestFile, Insert: "about"})
	if got != "cat about " {
		t.Errorf("got %q", got)
	}
}

func TestAcceptPreservesOpeningQuote(t *testing.T) {
	got := Accept(`open "bo`, Suggestion{Kind: SuggestDirectory, Insert: "books/"})
	if got != `open "books/` {
		t.Errorf("got %q", got)
	}
}

func TestAcceptReplacesOnlyLastToken(t *testing.T) {
	got := Accept("open books/fic", Suggestion{Kind: SuggestDirectory, Insert: "books/fiction/"})
	if got != "open books/fiction/" {
		t.Errorf("got %q", got)
	}
}

func TestDidYouMeanModeFiltered(t *testing.T) {
	session := newTestSession(t, Options{})

	// cat targets files; a near-miss on a directory name should not
	// suggest the directory itself.
	session.Execute("cat abot")
	entry := lastEntry(t, session)
	if entry.Kind != EntryError {
		t.Fatalf("%+v", entry)
	}
	found := false
	for _, fix := range entry.Fixes {
		if fix == "cat /about" {
			found = true
		}
		if fix == "cat /books" {
			t.Errorf("directory suggested in file mode: %v", entry.Fixes)
		}
	}
	if !found {
		t.Errorf("expected \"cat /about\", got %v", entry.Fixes)
	}
}
