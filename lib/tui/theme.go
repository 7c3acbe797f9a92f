// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the library shell. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected dropdown row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Prompt line.
	PromptForeground lipgloss.Color
	GhostText        lipgloss.Color // Inline completion preview after the cursor.

	// Log entry accents.
	BannerForeground lipgloss.Color
	ErrorForeground  lipgloss.Color
	FixForeground    lipgloss.Color // Fix suggestion chips under error entries.

	// Node kinds in listings and trees.
	DirectoryForeground lipgloss.Color
	FileForeground      lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color // Focused scrollbar thumb, match highlights.

	// Dropdown overlay.
	TooltipBackground lipgloss.Color

	// Inline code and code block text in rendered markdown.
	CodeForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background (the common case for
// development environments and tmux sessions).
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	PromptForeground: lipgloss.Color("114"), // green
	GhostText:        lipgloss.Color("240"), // dim gray

	BannerForeground: lipgloss.Color("141"), // light purple
	ErrorForeground:  lipgloss.Color("196"), // bright red
	FixForeground:    lipgloss.Color("75"),  // blue

	DirectoryForeground: lipgloss.Color("75"),  // blue, the classic ls directory color
	FileForeground:      lipgloss.Color("252"), // same as NormalText

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("220"), // yellow/amber

	TooltipBackground: lipgloss.Color("237"), // slightly lighter than terminal background

	CodeForeground: lipgloss.Color("222"), // pale amber
}
