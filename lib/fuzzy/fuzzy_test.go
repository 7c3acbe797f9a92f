// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fuzzy

import (
	"testing"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"hlep", "help", 2}, // transposition counts as two unit edits
		{"lls", "ls", 1},
		{"kitten", "sitting", 3},
		{"cat", "tree", 4},
	}
	for _, testCase := range cases {
		got := Distance(testCase.a, testCase.b)
		if got != testCase.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", testCase.a, testCase.b, got, testCase.want)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	if Distance("summary", "sum") != Distance("sum", "summary") {
		t.Error("distance must be symmetric")
	}
}

func TestThreshold(t *testing.T) {
	cases := []struct {
		length, want int
	}{
		{1, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {20, 4},
	}
	for _, testCase := range cases {
		if got := Threshold(testCase.length); got != testCase.want {
			t.Errorf("Threshold(%d) = %d, want %d", testCase.length, got, testCase.want)
		}
	}
}

func TestRankHlepFindsHelp(t *testing.T) {
	vocabulary := []string{"cd", "ls", "pwd", "home", "back", "open", "cat", "tree", "search", "summary", "help", "clear"}

	ranked := Rank("hlep", vocabulary, 4)
	if len(ranked) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	if ranked[0] != "help" {
		t.Errorf("expected help first, got %v", ranked)
	}
}

func TestRankPrefixBeatsCloserDistance(t *testing.T) {
	// "op" is a prefix of "open" (distance 2) and within distance 2
	// of "pwd"; the prefix group must win regardless of distance.
	ranked := Rank("op", []string{"pwd", "open"}, 0)
	if len(ranked) == 0 || ranked[0] != "open" {
		t.Errorf("expected open first, got %v", ranked)
	}
}

func TestRankSubstringQualifies(t *testing.T) {
	// "ear" is nowhere near "search" by edit distance but is a
	// substring of it.
	ranked := Rank("ear", []string{"search", "clear"}, 0)
	if len(ranked) != 2 {
		t.Fatalf("expected both substring matches, got %v", ranked)
	}
}

func TestRankDropsDissimilar(t *testing.T) {
	ranked := Rank("xyz", []string{"summary", "search"}, 0)
	if len(ranked) != 0 {
		t.Errorf("expected no matches, got %v", ranked)
	}
}

func TestRankTruncatesToLimit(t *testing.T) {
	candidates := []string{"aa", "ab", "ac", "ad", "ae", "af"}
	ranked := Rank("a", candidates, 4)
	if len(ranked) != 4 {
		t.Errorf("expected 4 results, got %d", len(ranked))
	}
}

func TestRankDeterministic(t *testing.T) {
	candidates := []string{"beta", "alpha", "gamma", "delta"}
	first := Rank("a", candidates, 0)
	second := Rank("a", candidates, 0)
	if len(first) != len(second) {
		t.Fatal("rank size varies across identical inputs")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestRankTiesBreakLexicographically(t *testing.T) {
	// Both are prefix matches at equal distance from the query.
	ranked := Rank("c", []string{"cd", "ca"}, 0)
	if len(ranked) != 2 || ranked[0] != "ca" || ranked[1] != "cd" {
		t.Errorf("expected lexicographic tiebreak, got %v", ranked)
	}
}

func TestRankCaseInsensitive(t *testing.T) {
	ranked := Rank("DUNE", []string{"dune"}, 0)
	if len(ranked) != 1 {
		t.Errorf("expected case-insensitive match, got %v", ranked)
	}
}
