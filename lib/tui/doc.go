// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the generic terminal UI components the library
// shell is assembled from: the color theme, the suggestion dropdown
// overlay, a proportional scrollbar, and fzf-based fuzzy matching
// with position tracking for highlight rendering.
//
// Nothing in this package knows about sessions, commands, or the
// content tree; it deals in strings, colors, and screen coordinates.
// The shellui package owns layout and data flow.
package tui
