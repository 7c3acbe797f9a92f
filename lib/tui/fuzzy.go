// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf's algo package requires Init to populate its character-class
// and bonus tables; without it, case-insensitive matching is broken.
func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching a pattern against a text:
// the fzf match score (0 means no match) and the rune positions of
// the matched characters for highlighting.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's FuzzyMatchV2 algorithm case-insensitively
// (both sides are lowercased) with position tracking enabled. The
// slab may be nil; passing a reused slab avoids per-call allocation
// in hot loops.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))

	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	match := FuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = *positions
	}
	return match
}
