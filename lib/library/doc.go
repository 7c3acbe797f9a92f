// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package library models the read-only content tree the shell
// browses: a sealed Dir/File variant built once by [Load] and never
// mutated afterwards, which makes it safe for unsynchronized
// concurrent reads.
//
// Path handling is split in two deliberately. [Resolve] canonicalizes
// a path expression (folding "." and "..", clamping ".." at root) and
// verifies every intermediate segment is a directory; [Lookup] then
// fetches whatever node sits at the canonical path, if any. Commands
// that care about the final node's existence or kind (cd wants a
// directory, cat wants a file) make that judgment themselves on the
// Lookup result.
//
// [SearchIndex] provides the recursive search behind the shell's
// search command: case-insensitive substring matching over
// name/title/tags, ordered by BM25 relevance.
package library
