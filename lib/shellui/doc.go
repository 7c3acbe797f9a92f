// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shellui implements the terminal user interface for the
// stacks shell. Built on bubbletea (Elm architecture), it provides a
// scrolling transcript pane with a prompt line at the bottom,
// connected to the command interpreter in [shell.Session].
//
// Generic UI components (theme, dropdown overlays, scrollbars, fuzzy
// matching) live in [tui] and are re-exported here for internal use.
// Shell-specific logic (the prompt model, key bindings, ghost-text
// completion, markdown rendering of library files) stays in this
// package.
//
// Data flow:
//
//	[library tree on disk]
//	        | (shell.Session)
//	    [Model] <- bubbletea event loop
//	        |
//	  [terminal output]
package shellui
