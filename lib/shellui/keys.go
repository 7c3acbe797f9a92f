// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shellui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the shell TUI.
type KeyMap struct {
	// Prompt line.
	Submit key.Binding // Run the typed command.
	Accept key.Binding // Accept the top completion suggestion.

	// Suggestion dropdown (active while suggestions are visible).
	SuggestionNext     key.Binding
	SuggestionPrevious key.Binding
	Dismiss            key.Binding // Close the dropdown without accepting.

	// Command history (active while the dropdown is closed).
	HistoryPrevious key.Binding
	HistoryNext     key.Binding

	// Transcript scrollback.
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// Session.
	ClearScreen key.Binding // Equivalent to the clear command.
	Quit        key.Binding
}

// DefaultKeyMap is the built-in key binding set. Tab accepts the top
// suggestion, arrows walk history or the dropdown depending on whether
// the dropdown is open.
var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run"),
	),
	Accept: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "complete"),
	),
	SuggestionNext: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next suggestion"),
	),
	SuggestionPrevious: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous suggestion"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "dismiss"),
	),
	HistoryPrevious: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "older command"),
	),
	HistoryNext: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "newer command"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("PgUp", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("PgDn", "scroll down"),
	),
	ClearScreen: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
