// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"errors"
	"fmt"
	"strings"
)

// Root is the canonical absolute path of the tree root.
const Root = "/"

// ErrUnavailable reports that no content tree is present (the loader
// failed or was never run). Command dispatch turns this into a
// recoverable error entry, never a crash.
var ErrUnavailable = errors.New("library unavailable")

// NotFoundError reports that a path expression named a segment that
// does not exist as a directory child. Parent is the deepest directory
// that did resolve; Segment is the name that failed under it. The
// dispatcher uses both to build did-you-mean suggestions from Parent's
// actual children.
type NotFoundError struct {
	Path    string // The full canonical path that failed to resolve.
	Parent  string // Canonical path of the deepest valid directory.
	Segment string // The child name that was not found under Parent.
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such file or directory: %s", e.Path)
}

// Split breaks an absolute path into its segments. The root path (or
// an empty string) yields no segments.
func Split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Join assembles segments into a canonical absolute path. No segments
// yields the root.
func Join(segments []string) string {
	if len(segments) == 0 {
		return Root
	}
	return "/" + strings.Join(segments, "/")
}

// Canonicalize folds a target path expression against the current
// absolute path into a canonical absolute path, without consulting the
// tree. Absolute targets (and "~", which is an alias for root — the
// library has no per-user home) ignore current. "." segments are
// skipped and ".." pops the accumulated path, clamping at root rather
// than failing.
func Canonicalize(current, target string) string {
	var segments []string
	if !strings.HasPrefix(target, "/") && target != "~" && !strings.HasPrefix(target, "~/") {
		segments = Split(current)
	}
	target = strings.TrimPrefix(target, "~")

	for _, segment := range strings.Split(target, "/") {
		switch segment {
		case "", ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, segment)
		}
	}
	return Join(segments)
}

// Resolve canonicalizes target against current and verifies that every
// segment but the last names a directory child along the walk from
// root. Whether the final segment exists, and what kind of node it is,
// is deliberately left to Lookup — cd and cat want different answers.
func Resolve(root *Dir, current, target string) (string, error) {
	if root == nil {
		return "", ErrUnavailable
	}

	canonical := Canonicalize(current, target)
	segments := Split(canonical)

	directory := root
	for index := 0; index < len(segments)-1; index++ {
		child, ok := directory.Child(segments[index])
		if !ok {
			return "", &NotFoundError{
				Path:    canonical,
				Parent:  Join(segments[:index]),
				Segment: segments[index],
			}
		}
		subdirectory, isDir := child.(*Dir)
		if !isDir {
			return "", &NotFoundError{
				Path:    canonical,
				Parent:  Join(segments[:index]),
				Segment: segments[index],
			}
		}
		directory = subdirectory
	}
	return canonical, nil
}

// Lookup walks root to the node at the canonical absolute path.
// Returns root itself for "/" or the empty path, and false if any
// segment is missing or crosses through a file.
func Lookup(root *Dir, path string) (Node, bool) {
	if root == nil {
		return nil, false
	}

	var node Node = root
	for _, segment := range Split(path) {
		directory, isDir := node.(*Dir)
		if !isDir {
			return nil, false
		}
		child, ok := directory.Child(segment)
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}
