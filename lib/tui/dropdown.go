// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a suggestion dropdown.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Text inserted into the prompt line on selection.

	// MatchPositions are rune indices within Label to highlight (the
	// characters that matched what the user typed). May be nil.
	MatchPositions []int
}

// DropdownOverlay renders a suggestion menu anchored below the prompt
// line. It captures navigation keys while active (up/down or tab to
// move, enter to select, escape to dismiss); the model owns the
// instance and routes input to it when suggestions are showing.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int // Screen X coordinate of the dropdown's top-left corner.
	AnchorY int // Screen Y coordinate of the dropdown's top-left corner.
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Width returns the total visible width of the rendered dropdown in
// columns. This matches the width used by Render and is needed for
// mouse hit-testing.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth := 0
	for _, option := range dropdown.Options {
		labelWidth := ansi.StringWidth(option.Label)
		if labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}
	// Layout: " > LABEL  " — 3 chars prefix (space + marker + space),
	// then label, then 1 char padding on each side.
	return 3 + maxLabelWidth + 2
}

// Contains returns true if the screen coordinate (x, y) falls within
// the dropdown's bounding rectangle.
func (dropdown *DropdownOverlay) Contains(x, y int) bool {
	if y < dropdown.AnchorY || y >= dropdown.AnchorY+len(dropdown.Options) {
		return false
	}
	width := dropdown.Width()
	return x >= dropdown.AnchorX && x < dropdown.AnchorX+width
}

// OptionAtY returns the option index corresponding to the given
// screen Y coordinate, or -1 if the Y coordinate is outside the
// dropdown's vertical range.
func (dropdown *DropdownOverlay) OptionAtY(y int) int {
	index := y - dropdown.AnchorY
	if index < 0 || index >= len(dropdown.Options) {
		return -1
	}
	return index
}

// Render produces the dropdown lines for overlay splicing. Each line
// has the same visible width (including left/right padding) and a
// solid background for visual separation from the underlying content.
// The currently highlighted option uses a contrasting background;
// matched label characters render in the accent color.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.TooltipBackground)
	selectedBackground := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	for index, option := range dropdown.Options {
		marker := " "
		if index == dropdown.Cursor {
			marker = ">"
		}

		rowStyle := backgroundStyle
		if index == dropdown.Cursor {
			rowStyle = selectedBackground
		}

		label := highlightLabel(option, rowStyle, theme)
		content := rowStyle.Render(" "+marker+" ") + label
		contentWidth := ansi.StringWidth(content)
		rightPad := totalWidth - contentWidth
		if rightPad < 0 {
			rightPad = 0
		}
		styledLine := content + rowStyle.Render(strings.Repeat(" ", rightPad))

		lines = append(lines, styledLine)
	}

	return lines
}

// highlightLabel renders the option label in the row style, with the
// matched rune positions in the accent color on the same background.
func highlightLabel(option DropdownOption, rowStyle lipgloss.Style, theme Theme) string {
	if len(option.MatchPositions) == 0 {
		return rowStyle.Render(option.Label)
	}

	matched := make(map[int]bool, len(option.MatchPositions))
	for _, position := range option.MatchPositions {
		matched[position] = true
	}
	accentStyle := rowStyle.Foreground(theme.AccentColor).Bold(true)

	var rendered strings.Builder
	for position, character := range []rune(option.Label) {
		if matched[position] {
			rendered.WriteString(accentStyle.Render(string(character)))
		} else {
			rendered.WriteString(rowStyle.Render(string(character)))
		}
	}
	return rendered.String()
}
