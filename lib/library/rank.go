// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"math"
	"regexp"
	"strings"
)

// BM25 parameters (Okapi variant, standard values).
const (
	rankParamK1      = 1.2
	rankParamB       = 0.75
	rankParamEpsilon = 0.25
)

// Field weights for the composite per-node document. The node name is
// what visitors type at the prompt, so it dominates; the title and
// tags round out the ranking.
const (
	weightName  = 3
	weightTitle = 2
	weightTags  = 1
)

// rankTokenPattern splits text into lowercase alphanumeric runs.
var rankTokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// relevanceRanker scores library nodes against a query with BM25
// (Okapi). One composite document per node is built at construction
// from the weighted name/title/tags fields; the ranker is immutable
// afterwards and safe for concurrent reads.
type relevanceRanker struct {
	termFrequencies map[string]map[string]int // path -> term -> count
	documentLengths map[string]int
	averageLength   float64
	idf             map[string]float64
}

func newRelevanceRanker(root *Dir) *relevanceRanker {
	ranker := &relevanceRanker{
		termFrequencies: make(map[string]map[string]int),
		documentLengths: make(map[string]int),
		idf:             make(map[string]float64),
	}
	if root == nil {
		return ranker
	}

	documentFrequency := make(map[string]int)
	var totalLength int

	walkTree(root, Root, func(path string, node Node) {
		tokens := compositeTokens(node)
		ranker.documentLengths[path] = len(tokens)
		totalLength += len(tokens)

		frequency := make(map[string]int)
		for _, token := range tokens {
			if frequency[token] == 0 {
				documentFrequency[token]++
			}
			frequency[token]++
		}
		ranker.termFrequencies[path] = frequency
	})

	documentCount := float64(len(ranker.documentLengths))
	if documentCount > 0 {
		ranker.averageLength = float64(totalLength) / documentCount
	}

	// Precompute IDF per term. Terms present in every document get a
	// small positive score rather than zero so they still contribute.
	for term, frequency := range documentFrequency {
		idf := math.Log(1 + (documentCount-float64(frequency)+0.5)/(float64(frequency)+0.5))
		if idf < 0 {
			idf = rankParamEpsilon
		}
		ranker.idf[term] = idf
	}
	return ranker
}

// score computes the BM25 score of one node (by path) for a query.
// Unknown paths and queries with no indexable tokens score zero.
func (ranker *relevanceRanker) score(path, query string) float64 {
	frequency, ok := ranker.termFrequencies[path]
	if !ok {
		return 0
	}
	documentLength := float64(ranker.documentLengths[path])

	var score float64
	for _, token := range rankTokens(query) {
		idf, exists := ranker.idf[token]
		if !exists {
			continue
		}
		count := float64(frequency[token])
		if count == 0 {
			continue
		}
		numerator := count * (rankParamK1 + 1)
		denominator := count + rankParamK1*(1-rankParamB+rankParamB*documentLength/ranker.averageLength)
		score += idf * numerator / denominator
	}
	return score
}

// compositeTokens builds the weighted token sequence for one node by
// repeating each field's tokens according to its weight.
func compositeTokens(node Node) []string {
	meta := node.Meta()
	var tokens []string
	appendWeighted := func(text string, weight int) {
		fieldTokens := rankTokens(text)
		for i := 0; i < weight; i++ {
			tokens = append(tokens, fieldTokens...)
		}
	}
	appendWeighted(node.Name(), weightName)
	appendWeighted(meta.Title, weightTitle)
	appendWeighted(strings.Join(meta.Tags, " "), weightTags)
	return tokens
}

// rankTokens lowercases and splits text into alphanumeric tokens,
// discarding single-character noise.
func rankTokens(text string) []string {
	matches := rankTokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := matches[:0]
	for _, match := range matches {
		if len(match) >= 2 {
			tokens = append(tokens, match)
		}
	}
	return tokens
}
