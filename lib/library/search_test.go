// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package library

import "testing"

func TestSearchMatchesNameTitleAndTags(t *testing.T) {
	root := testTree(t)
	index := NewSearchIndex(root)

	cases := []struct {
		query string
		want  string
	}{
		{"dune", "/books/fiction/dune"},   // name
		{"Bookshelf", "/books"},           // title, case-insensitive
		{"scifi", "/books/fiction/dune"},  // tag
		{"ICTIO", "/books/fiction"},       // substring of name
	}
	for _, testCase := range cases {
		hits := index.Search(testCase.query)
		found := false
		for _, hit := range hits {
			if hit.Path == testCase.want {
				found = true
			}
		}
		if !found {
			t.Errorf("Search(%q) missing %s, got %v", testCase.query, testCase.want, hits)
		}
	}
}

func TestSearchEmptyResult(t *testing.T) {
	index := NewSearchIndex(testTree(t))
	if hits := index.Search("zzzz"); len(hits) != 0 {
		t.Errorf("expected no hits, got %v", hits)
	}
	if hits := index.Search("   "); hits != nil {
		t.Errorf("blank query should return nil, got %v", hits)
	}
}

func TestSearchDeterministicOrder(t *testing.T) {
	index := NewSearchIndex(testTree(t))
	first := index.Search("s")
	second := index.Search("s")
	if len(first) != len(second) {
		t.Fatal("result sets differ in size across identical queries")
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Errorf("position %d differs: %s vs %s", i, first[i].Path, second[i].Path)
		}
	}
}

func TestSearchRanksExactNameFirst(t *testing.T) {
	// Node named exactly by the query should outrank a node that only
	// mentions the term in its tags.
	fiction, err := NewDir("fiction", Metadata{},
		NewFile("dune", "dune", Metadata{Title: "Dune"}, ""),
		NewFile("reviews", "reviews", Metadata{Title: "Reviews", Tags: []string{"dune"}}, ""))
	if err != nil {
		t.Fatal(err)
	}
	root, err := NewDir("", Metadata{}, fiction)
	if err != nil {
		t.Fatal(err)
	}

	hits := NewSearchIndex(root).Search("dune")
	if len(hits) < 2 {
		t.Fatalf("expected both hits, got %v", hits)
	}
	if hits[0].Path != "/fiction/dune" {
		t.Errorf("expected name match ranked first, got %s", hits[0].Path)
	}
}
