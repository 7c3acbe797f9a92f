// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"sort"
	"strings"
)

// Hit is a single search result: the node and its canonical path.
type Hit struct {
	Path  string
	Node  Node
	Score float64
}

// SearchIndex answers recursive library searches. Matching is a
// case-insensitive substring test over node name, title, and tags;
// matched nodes are then ordered by BM25 relevance (see rank.go) with
// the canonical path as the deterministic tiebreak. The index is
// built once over the immutable tree and is safe for concurrent use.
type SearchIndex struct {
	root   *Dir
	ranker *relevanceRanker
}

// NewSearchIndex builds the search index for a content tree.
func NewSearchIndex(root *Dir) *SearchIndex {
	return &SearchIndex{root: root, ranker: newRelevanceRanker(root)}
}

// Search returns every node whose name, title, or any tag contains
// query (case-insensitive), best matches first. An empty result is a
// normal outcome, not an error.
func (index *SearchIndex) Search(query string) []Hit {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || index.root == nil {
		return nil
	}

	var hits []Hit
	walkTree(index.root, Root, func(path string, node Node) {
		if nodeMatches(node, needle) {
			hits = append(hits, Hit{
				Path:  path,
				Node:  node,
				Score: index.ranker.score(path, query),
			})
		}
	})

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Path < hits[b].Path
	})
	return hits
}

// nodeMatches reports whether the node's name, title, or any tag
// contains the lowercase needle.
func nodeMatches(node Node, needle string) bool {
	if strings.Contains(strings.ToLower(node.Name()), needle) {
		return true
	}
	meta := node.Meta()
	if strings.Contains(strings.ToLower(meta.Title), needle) {
		return true
	}
	for _, tag := range meta.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// walkTree visits every node below root in depth-first display order.
// The root itself is not visited — searching should never return "/".
func walkTree(directory *Dir, directoryPath string, visit func(path string, node Node)) {
	for _, child := range directory.Children() {
		childPath := directoryPath + child.Name()
		if directoryPath != Root {
			childPath = directoryPath + "/" + child.Name()
		}
		visit(childPath, child)
		if subdirectory, isDir := child.(*Dir); isDir {
			walkTree(subdirectory, childPath, visit)
		}
	}
}
