// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"errors"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"ls", []string{"ls"}},
		{"cd books", []string{"cd", "books"}},
		{"  cd   books  ", []string{"cd", "books"}},
		{"cd\tbooks", []string{"cd", "books"}},
		{`open "deep sea"`, []string{"open", "deep sea"}},
		{`open 'deep sea'`, []string{"open", "deep sea"}},
		{`open deep\ sea`, []string{"open", "deep sea"}},
		{`echo \"`, []string{"echo", `"`}},
		{`open "a'b"`, []string{"open", "a'b"}},
		{`open ""`, []string{"open", ""}},
		{`cat a\\b`, []string{"cat", `a\b`}},
	}
	for _, testCase := range cases {
		got, err := Tokenize(testCase.line)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", testCase.line, err)
			continue
		}
		if len(got) != len(testCase.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", testCase.line, got, testCase.want)
			continue
		}
		for i := range got {
			if got[i] != testCase.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", testCase.line, i, got[i], testCase.want[i])
			}
		}
	}
}

func TestTokenizeWhitespaceOnly(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", " \t "} {
		tokens, err := Tokenize(line)
		if err != nil {
			t.Errorf("Tokenize(%q): unexpected error %v", line, err)
		}
		if len(tokens) != 0 {
			t.Errorf("Tokenize(%q) = %v, want no tokens", line, tokens)
		}
	}
}

func TestTokenizeUnclosedQuote(t *testing.T) {
	for _, line := range []string{`open "deep`, `open 'deep`, `"`} {
		if _, err := Tokenize(line); !errors.Is(err, ErrUnclosedQuote) {
			t.Errorf("Tokenize(%q): expected ErrUnclosedQuote, got %v", line, err)
		}
	}
}

func TestTokenizeDanglingBackslash(t *testing.T) {
	tokens, err := Tokenize(`cat a\`)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 || tokens[1] != `a\` {
		t.Errorf("got %v", tokens)
	}
}

func TestParseCommandAlias(t *testing.T) {
	session := newTestSession(t, Options{})

	cases := []struct {
		line string
		want string
	}{
		{"dir", "ls"},
		{"LS", "ls"},
		{"CLS", "clear"},
		{"?", "help"},
		{"b", "back"},
		{"tree", "tree"},
	}
	for _, testCase := range cases {
		parsed, err := session.parseCommand(testCase.line)
		if err != nil {
			t.Fatalf("parseCommand(%q): %v", testCase.line, err)
		}
		if parsed.Name != testCase.want {
			t.Errorf("parseCommand(%q).Name = %q, want %q", testCase.line, parsed.Name, testCase.want)
		}
	}
}

func TestParseCommandEmpty(t *testing.T) {
	session := newTestSession(t, Options{})
	parsed, err := session.parseCommand("   ")
	if err != nil {
		t.Fatal(err)
	}
	if parsed != nil {
		t.Errorf("expected no command, got %+v", parsed)
	}
}
