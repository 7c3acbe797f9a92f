// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"strings"

	"github.com/bureau-foundation/stacks/lib/library"
)

// Box-drawing connectors for the tree renderer.
const (
	treeBranch     = "├── "
	treeLastBranch = "└── "
	treeVertical   = "│   "
	treeSpacer     = "    "
)

// RenderTree pretty-prints a subtree as indented lines. The top node
// is shown under displayName with no connector; directories get a '/'
// suffix and nodes whose title differs from their name get a
// " — <title>" annotation. The depth bound is inclusive: a node
// sitting exactly at maxDepth is printed but not expanded, so
// maxDepth 0 renders exactly one line.
func RenderTree(node library.Node, displayName string, maxDepth int) []string {
	lines := []string{treeLabel(node, displayName)}
	if directory, isDir := node.(*library.Dir); isDir && maxDepth > 0 {
		renderTreeChildren(directory, "", maxDepth-1, &lines)
	}
	return lines
}

// renderTreeChildren appends one indented line per child, recursing
// into subdirectories while remaining > 0. Sibling order comes from
// Dir.Children: directories before files, lexicographic within.
func renderTreeChildren(directory *library.Dir, prefix string, remaining int, lines *[]string) {
	children := directory.Children()
	for index, child := range children {
		connector := treeBranch
		childPrefix := prefix + treeVertical
		if index == len(children)-1 {
			connector = treeLastBranch
			childPrefix = prefix + treeSpacer
		}

		*lines = append(*lines, prefix+connector+treeLabel(child, child.Name()))

		if subdirectory, isDir := child.(*library.Dir); isDir && remaining > 0 {
			renderTreeChildren(subdirectory, childPrefix, remaining-1, lines)
		}
	}
}

// treeLabel formats a single node: name, '/' for directories, and the
// title annotation when the title adds information beyond the name.
func treeLabel(node library.Node, displayName string) string {
	label := displayName
	if _, isDir := node.(*library.Dir); isDir && !strings.HasSuffix(label, "/") {
		label += "/"
	}
	if title := node.Meta().Title; title != "" && title != displayName {
		label += " — " + title
	}
	return label
}
