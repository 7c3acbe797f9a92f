// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"fmt"
	"sort"
)

// Metadata carries the optional descriptive fields attached to a
// directory or file. All fields may be empty; Date is display-only
// text and is never parsed by the core.
type Metadata struct {
	Title string
	Tags  []string
	Date  string
}

// Node is a sealed variant over the two tree member kinds. Every
// traversal site switches exhaustively on *Dir / *File — there is no
// "assume it's a directory" path anywhere in the package.
type Node interface {
	// Name is the path segment identifying this node within its parent.
	Name() string
	// Meta returns the node's descriptive metadata.
	Meta() Metadata

	// sealed prevents external implementations so type switches over
	// *Dir / *File remain exhaustive.
	sealed()
}

// Dir is a directory node: a named, immutable mapping of child names
// to child nodes.
type Dir struct {
	name     string
	meta     Metadata
	children map[string]Node
}

// File is a leaf node carrying markdown content and a canonical
// content slug (the stable external identifier for address sync).
type File struct {
	name    string
	slug    string
	meta    Metadata
	content string
}

// NewDir constructs a directory from its children. Child names must
// be unique; a duplicate is a construction error, not a last-one-wins
// overwrite.
func NewDir(name string, meta Metadata, children ...Node) (*Dir, error) {
	byName := make(map[string]Node, len(children))
	for _, child := range children {
		if _, exists := byName[child.Name()]; exists {
			return nil, fmt.Errorf("directory %q: duplicate child name %q", name, child.Name())
		}
		byName[child.Name()] = child
	}
	return &Dir{name: name, meta: meta, children: byName}, nil
}

// NewFile constructs a file node.
func NewFile(name, slug string, meta Metadata, content string) *File {
	return &File{name: name, slug: slug, meta: meta, content: content}
}

// Name returns the directory's path segment.
func (d *Dir) Name() string { return d.name }

// Meta returns the directory's metadata.
func (d *Dir) Meta() Metadata { return d.meta }

func (d *Dir) sealed() {}

// Child returns the named child, or false if no such child exists.
func (d *Dir) Child(name string) (Node, bool) {
	child, ok := d.children[name]
	return child, ok
}

// Children returns the children in display order: directories before
// files, lexicographic by name within each group. This is the single
// canonical sibling order — ls, tree, and completion all share it.
func (d *Dir) Children() []Node {
	ordered := make([]Node, 0, len(d.children))
	for _, child := range d.children {
		ordered = append(ordered, child)
	}
	sort.Slice(ordered, func(a, b int) bool {
		_, aIsDir := ordered[a].(*Dir)
		_, bIsDir := ordered[b].(*Dir)
		if aIsDir != bIsDir {
			return aIsDir
		}
		return ordered[a].Name() < ordered[b].Name()
	})
	return ordered
}

// Name returns the file's path segment.
func (f *File) Name() string { return f.name }

// Meta returns the file's metadata.
func (f *File) Meta() Metadata { return f.meta }

func (f *File) sealed() {}

// Slug returns the canonical content slug.
func (f *File) Slug() string { return f.slug }

// Content returns the file's markdown body.
func (f *File) Content() string { return f.content }
