// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file with parents under the test library root.
func writeFile(t *testing.T, root, relative, content string) {
	t.Helper()
	path := filepath.Join(root, relative)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadBuildsTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "books/index.md", "---\ntitle: Bookshelf\ntags: [reading]\n---\n")
	writeFile(t, root, "books/dune.md", "---\ntitle: Dune\ndate: 2024-03-01\n---\n# Dune\n\nSpice.\n")
	writeFile(t, root, "about.md", "No frontmatter here.\n")
	writeFile(t, root, "notes.txt", "ignored, not markdown\n")
	writeFile(t, root, "_drafts/wip.md", "hidden\n")
	writeFile(t, root, ".git/config", "hidden\n")

	tree, err := Load(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	books, ok := Lookup(tree, "/books")
	if !ok {
		t.Fatal("missing /books")
	}
	if books.Meta().Title != "Bookshelf" {
		t.Errorf("directory metadata not taken from index.md: %+v", books.Meta())
	}
	if _, ok := Lookup(tree, "/books/index"); ok {
		t.Error("index.md must not appear as a child")
	}

	dune, ok := Lookup(tree, "/books/dune")
	if !ok {
		t.Fatal("missing /books/dune")
	}
	file, isFile := dune.(*File)
	if !isFile {
		t.Fatal("/books/dune should be a file")
	}
	if file.Slug() != "books/dune" {
		t.Errorf("slug = %q", file.Slug())
	}
	if file.Meta().Title != "Dune" || file.Meta().Date != "2024-03-01" {
		t.Errorf("frontmatter = %+v", file.Meta())
	}
	if file.Content() != "# Dune\n\nSpice.\n" {
		t.Errorf("content = %q", file.Content())
	}

	about, ok := Lookup(tree, "/about")
	if !ok {
		t.Fatal("missing /about")
	}
	if about.(*File).Content() != "No frontmatter here.\n" {
		t.Error("file without frontmatter should keep its full body")
	}

	for _, absent := range []string{"/notes", "/notes.txt", "/_drafts", "/.git"} {
		if _, ok := Lookup(tree, absent); ok {
			t.Errorf("%s should have been skipped", absent)
		}
	}
}

func TestLoadMalformedFrontmatterIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad.md", "---\ntitle: [unclosed\n---\nbody\n")

	tree, err := Load(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	bad, ok := Lookup(tree, "/bad")
	if !ok {
		t.Fatal("file with bad frontmatter should still load")
	}
	if bad.Meta().Title != "" {
		t.Errorf("bad frontmatter should yield empty metadata, got %+v", bad.Meta())
	}
}

func TestLoadMissingRoot(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatal("expected error for missing library root")
	}
}
