// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fuzzy ranks candidate strings against a query for
// typo correction and completion recovery. Candidates qualify by
// prefix match, substring match, or Levenshtein distance within a
// length-adaptive threshold; qualifying candidates are ordered by
// (match group, distance, name). The ranking is deterministic and
// total — identical inputs always produce identical output.
package fuzzy

import (
	"sort"
	"strings"
)

// Match groups, in ranking order. Prefix matches beat substring
// matches beat pure edit-distance matches regardless of distance.
const (
	groupPrefix    = 0
	groupSubstring = 1
	groupDistance  = 2
)

// Threshold returns the maximum edit distance at which a candidate
// still qualifies, for a query of the given length. Tolerance grows
// with query length to bound false positives on short queries: a
// two-edit neighbor of a three-letter command is usually a different
// command, not a typo.
func Threshold(queryLength int) int {
	switch {
	case queryLength <= 4:
		return 2
	case queryLength <= 8:
		return 3
	default:
		return 4
	}
}

// Rank orders candidates by similarity to query and returns at most
// limit of them (limit <= 0 means no truncation). Matching is
// case-insensitive; candidates that neither share a prefix or
// substring with the query nor fall within the distance threshold are
// dropped. An empty result is valid.
func Rank(query string, candidates []string, limit int) []string {
	needle := strings.ToLower(query)
	threshold := Threshold(len(needle))

	type ranked struct {
		name     string
		group    int
		distance int
	}
	var qualified []ranked

	for _, candidate := range candidates {
		lowered := strings.ToLower(candidate)
		distance := Distance(needle, lowered)

		group := groupDistance
		switch {
		case strings.HasPrefix(lowered, needle):
			group = groupPrefix
		case strings.Contains(lowered, needle):
			group = groupSubstring
		case distance > threshold:
			continue
		}
		qualified = append(qualified, ranked{name: candidate, group: group, distance: distance})
	}

	sort.Slice(qualified, func(a, b int) bool {
		if qualified[a].group != qualified[b].group {
			return qualified[a].group < qualified[b].group
		}
		if qualified[a].distance != qualified[b].distance {
			return qualified[a].distance < qualified[b].distance
		}
		return qualified[a].name < qualified[b].name
	})

	if limit > 0 && len(qualified) > limit {
		qualified = qualified[:limit]
	}
	names := make([]string, len(qualified))
	for i, entry := range qualified {
		names[i] = entry.name
	}
	return names
}

// Distance computes the Levenshtein edit distance between two strings:
// the minimum number of single-character insertions, deletions, or
// substitutions required to change one into the other. Two-row dynamic
// program, O(min(m,n)) space.
func Distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Keep the shorter string on the row axis.
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			deletion := previous[i] + 1
			insertion := current[i-1] + 1
			substitution := previous[i-1] + cost

			current[i] = min(deletion, min(insertion, substitution))
		}
		previous, current = current, previous
	}

	return previous[len(a)]
}
