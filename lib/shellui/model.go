// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shellui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/stacks/lib/shell"
	"github.com/bureau-foundation/stacks/lib/tui"
)

// promptPrefix is the glyph sequence shown before the input line and
// before every echoed command in the transcript.
const promptPrefix = "> "

// Model is the bubbletea model for the shell. It owns a
// [shell.Session] (the command interpreter and transcript log) and
// layers the interactive chrome on top: the editable prompt line with
// inline ghost text, the suggestion dropdown, command-history walking,
// and transcript scrollback.
type Model struct {
	session *shell.Session
	theme   Theme
	keys    KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Prompt line editing state. The completion engine only works at
	// end-of-line, so suggestions and ghost text disappear while the
	// cursor is anywhere else.
	input  []rune
	cursor int

	// Completion state, recomputed after every edit.
	completion  shell.Completion
	dropdown    *tui.DropdownOverlay
	suggestions []shell.Suggestion
	dismissed   bool // Esc pressed; stays closed until the next edit.

	// Command-history walk. historyIndex is -1 while editing a fresh
	// line; draft stashes the in-progress line so walking back down
	// past the newest entry restores it.
	historyIndex int
	draft        string

	// Transcript scrollback, in lines up from the bottom. Zero means
	// pinned to the live end; any prompt submission resets it.
	scrollback int

	// Reused fzf slab for dropdown match highlighting.
	slab *util.Slab

	// Status bar log notice (from UILogHandler), cleared after a delay.
	logNotice string
	logLevel  slog.Level
}

// NewModel creates a Model over an existing session. The session's
// transcript (banner included) becomes the initial view.
func NewModel(session *shell.Session) Model {
	return Model{
		session:      session,
		theme:        DefaultTheme,
		keys:         DefaultKeyMap,
		historyIndex: -1,
		slab:         util.MakeSlab(100*1024, 2048),
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Keyboard routing depends on whether
// the suggestion dropdown is open: up/down move the dropdown cursor
// while it is, and walk the command history while it is not.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.clampScrollback()

	case logRecordMsg:
		model.logNotice = message.Summary
		model.logLevel = message.Level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.logNotice = ""
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case message.String() == "ctrl+d":
		// Ctrl+D on an empty prompt quits, like a login shell;
		// otherwise it pages the transcript down.
		if len(model.input) == 0 {
			return model, tea.Quit
		}
		model.scrollPage(-1)
		return model, nil

	case key.Matches(message, model.keys.ClearScreen):
		model.submitLine("clear")
		return model, nil

	case key.Matches(message, model.keys.ScrollUp):
		model.scrollPage(1)
		return model, nil

	case key.Matches(message, model.keys.ScrollDown):
		model.scrollPage(-1)
		return model, nil

	case key.Matches(message, model.keys.Accept):
		model.acceptSuggestion()
		return model, nil

	case key.Matches(message, model.keys.Dismiss):
		if model.dropdown != nil {
			model.dropdown = nil
			model.dismissed = true
		}
		return model, nil

	case key.Matches(message, model.keys.SuggestionPrevious) && model.dropdown != nil:
		model.dropdown.MoveUp()
		return model, nil

	case key.Matches(message, model.keys.SuggestionNext) && model.dropdown != nil:
		model.dropdown.MoveDown()
		return model, nil

	case key.Matches(message, model.keys.HistoryPrevious):
		model.walkHistoryBack()
		return model, nil

	case key.Matches(message, model.keys.HistoryNext):
		model.walkHistoryForward()
		return model, nil

	case key.Matches(message, model.keys.Submit):
		model.submitLine(string(model.input))
		return model, nil
	}

	switch message.Type {
	case tea.KeyBackspace:
		if model.cursor > 0 {
			model.input = append(model.input[:model.cursor-1], model.input[model.cursor:]...)
			model.cursor--
			model.afterEdit()
		}

	case tea.KeyDelete:
		if model.cursor < len(model.input) {
			model.input = append(model.input[:model.cursor], model.input[model.cursor+1:]...)
			model.afterEdit()
		}

	case tea.KeyLeft:
		if model.cursor > 0 {
			model.cursor--
			model.afterEdit()
		}

	case tea.KeyRight:
		if model.cursor < len(model.input) {
			model.cursor++
			model.afterEdit()
		}

	case tea.KeyHome, tea.KeyCtrlA:
		model.cursor = 0
		model.afterEdit()

	case tea.KeyEnd, tea.KeyCtrlE:
		model.cursor = len(model.input)
		model.afterEdit()

	case tea.KeyCtrlW:
		model.deleteWordBack()

	case tea.KeySpace:
		model.insertRunes([]rune{' '})

	case tea.KeyRunes:
		model.insertRunes(message.Runes)
	}

	return model, nil
}

func (model *Model) insertRunes(runes []rune) {
	model.input = append(model.input[:model.cursor],
		append(append([]rune(nil), runes...), model.input[model.cursor:]...)...)
	model.cursor += len(runes)
	model.afterEdit()
}

// deleteWordBack removes the word before the cursor plus any trailing
// whitespace between it and the cursor.
func (model *Model) deleteWordBack() {
	boundary := model.cursor
	for boundary > 0 && model.input[boundary-1] == ' ' {
		boundary--
	}
	for boundary > 0 && model.input[boundary-1] != ' ' {
		boundary--
	}
	model.input = append(model.input[:boundary], model.input[model.cursor:]...)
	model.cursor = boundary
	model.afterEdit()
}

// afterEdit resets the history walk and recomputes completion state.
// Any edit reopens a previously dismissed dropdown.
func (model *Model) afterEdit() {
	model.historyIndex = -1
	model.dismissed = false
	model.refreshCompletion()
}

// refreshCompletion rebuilds the suggestion dropdown and ghost text
// for the current input. Completion is suppressed while the cursor is
// mid-line, while the onboarding prompt is active, and after an
// explicit Esc dismissal.
func (model *Model) refreshCompletion() {
	model.completion = shell.Completion{}
	model.dropdown = nil
	model.suggestions = nil

	if model.cursor != len(model.input) || len(model.input) == 0 {
		return
	}
	if model.dismissed || model.session.OnboardingActive() {
		return
	}

	line := string(model.input)
	model.completion = model.session.Complete(line)
	if len(model.completion.Suggestions) == 0 {
		return
	}

	fragment := []rune(currentFragment(line))
	options := make([]tui.DropdownOption, 0, len(model.completion.Suggestions))
	for _, suggestion := range model.completion.Suggestions {
		option := tui.DropdownOption{Label: suggestion.Label, Value: suggestion.Insert}
		if len(fragment) > 0 {
			option.MatchPositions = fuzzyMatch(suggestion.Label, fragment, model.slab).Positions
		}
		options = append(options, option)
	}

	model.suggestions = model.completion.Suggestions
	model.dropdown = &tui.DropdownOverlay{Options: options}
}

// acceptSuggestion rewrites the input line with the highlighted
// dropdown suggestion (the top one unless the user moved the cursor).
func (model *Model) acceptSuggestion() {
	if model.dropdown == nil || len(model.suggestions) == 0 {
		return
	}
	index := model.dropdown.Cursor
	if index >= len(model.suggestions) {
		index = 0
	}
	accepted := shell.Accept(string(model.input), model.suggestions[index])
	model.input = []rune(accepted)
	model.cursor = len(model.input)
	model.afterEdit()
}

func (model *Model) walkHistoryBack() {
	history := model.session.CommandHistory()
	if len(history) == 0 {
		return
	}
	if model.historyIndex == -1 {
		model.draft = string(model.input)
		model.historyIndex = len(history) - 1
	} else if model.historyIndex > 0 {
		model.historyIndex--
	}
	model.setInputFromHistory(history)
}

func (model *Model) walkHistoryForward() {
	history := model.session.CommandHistory()
	if model.historyIndex == -1 {
		return
	}
	model.historyIndex++
	if model.historyIndex >= len(history) {
		model.historyIndex = -1
		model.input = []rune(model.draft)
		model.cursor = len(model.input)
		model.refreshCompletion()
		return
	}
	model.setInputFromHistory(history)
}

// setInputFromHistory loads a history entry into the prompt. The
// dropdown stays closed while walking history; it reopens on the
// first real edit.
func (model *Model) setInputFromHistory(history []string) {
	model.input = []rune(history[model.historyIndex])
	model.cursor = len(model.input)
	model.completion = shell.Completion{}
	model.dropdown = nil
	model.suggestions = nil
}

// submitLine runs a command through the session and resets the prompt
// chrome: input, history walk, dropdown, and scrollback pin.
func (model *Model) submitLine(line string) {
	model.session.Execute(line)
	model.input = nil
	model.cursor = 0
	model.draft = ""
	model.historyIndex = -1
	model.dismissed = false
	model.completion = shell.Completion{}
	model.dropdown = nil
	model.suggestions = nil
	model.scrollback = 0
}

// scrollPage moves the transcript viewport by half a screen.
// Direction is +1 for up (into the past), -1 for down.
func (model *Model) scrollPage(direction int) {
	step := model.transcriptHeight() / 2
	if step < 1 {
		step = 1
	}
	model.scrollback += direction * step
	model.clampScrollback()
}

func (model *Model) clampScrollback() {
	if model.scrollback < 0 {
		model.scrollback = 0
	}
	maximum := len(model.transcriptLines()) - model.transcriptHeight()
	if maximum < 0 {
		maximum = 0
	}
	if model.scrollback > maximum {
		model.scrollback = maximum
	}
}

// transcriptHeight is the number of rows available to the transcript:
// everything except the prompt line and the status bar.
func (model Model) transcriptHeight() int {
	height := model.height - 2
	if height < 0 {
		height = 0
	}
	return height
}

// contentWidth is the column budget for transcript text. One column
// on the right edge is reserved for the scrollbar.
func (model Model) contentWidth() int {
	width := model.width - 1
	if width < 10 {
		width = 10
	}
	return width
}

// currentFragment extracts the portion of the line the completion
// engine is matching against: the whole line in command position, or
// the text after the last path separator of the final token in
// argument position. Used only for dropdown match highlighting.
func currentFragment(line string) string {
	if !strings.ContainsAny(line, " \t") {
		return line
	}
	tokenStart := strings.LastIndexAny(line, " \t") + 1
	token := strings.TrimLeft(line[tokenStart:], `"'`)
	if slash := strings.LastIndex(token, "/"); slash >= 0 {
		return token[slash+1:]
	}
	return token
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	lines := model.transcriptLines()
	visible := model.transcriptHeight()

	start := len(lines) - visible - model.scrollback
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	window := lines[start:end]

	var view strings.Builder
	scrollbar := model.renderScrollbar(len(lines), visible)
	for row := 0; row < visible; row++ {
		line := ""
		if row < len(window) {
			line = window[row]
		}
		view.WriteString(model.padLine(line))
		if row < len(scrollbar) {
			view.WriteString(scrollbar[row])
		}
		view.WriteString("\n")
	}

	view.WriteString(model.renderPrompt())
	view.WriteString("\n")
	view.WriteString(model.renderStatusBar())

	output := view.String()
	if model.dropdown != nil {
		output = model.spliceDropdown(output, visible)
	}
	return output
}

// transcriptLines renders the session log into display lines: echoed
// commands with the prompt prefix, output verbatim (markdown content
// rendered richly), errors in the error color with their suggested
// fixes underneath.
func (model Model) transcriptLines() []string {
	width := model.contentWidth()
	commandStyle := lipgloss.NewStyle().Foreground(model.theme.PromptForeground)
	bannerStyle := lipgloss.NewStyle().Foreground(model.theme.BannerForeground)
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorForeground)
	fixStyle := lipgloss.NewStyle().Foreground(model.theme.FixForeground)

	var lines []string
	for _, entry := range model.session.Log() {
		switch entry.Kind {
		case shell.EntryBanner:
			for _, line := range strings.Split(entry.Text, "\n") {
				lines = append(lines, bannerStyle.Render(line))
			}

		case shell.EntryCommand:
			lines = append(lines, commandStyle.Render(promptPrefix)+entry.Text)

		case shell.EntryOutput:
			if entry.Markdown {
				rendered := renderMarkdown(entry.Text, model.theme, width)
				lines = append(lines, strings.Split(rendered, "\n")...)
				continue
			}
			for _, line := range strings.Split(entry.Text, "\n") {
				lines = append(lines, strings.Split(ansi.Hardwrap(line, width, true), "\n")...)
			}

		case shell.EntryError:
			for _, line := range strings.Split(entry.Text, "\n") {
				lines = append(lines, errorStyle.Render(line))
			}
			for _, fix := range entry.Fixes {
				lines = append(lines, fixStyle.Render("  try: "+fix))
			}
		}
	}
	return lines
}

// padLine truncates or pads a line to exactly the content width, so
// the scrollbar column lines up on the right edge.
func (model Model) padLine(line string) string {
	width := model.contentWidth()
	line = ansi.Truncate(line, width, "")
	if lineWidth := ansi.StringWidth(line); lineWidth < width {
		line += strings.Repeat(" ", width-lineWidth)
	}
	return line
}

// renderScrollbar returns one scrollbar cell per transcript row, or
// nil when the transcript fits on screen.
func (model Model) renderScrollbar(total, visible int) []string {
	if total <= visible || visible <= 0 {
		return nil
	}
	offsetFromTop := total - visible - model.scrollback
	column := tui.RenderScrollbar(model.theme, visible, total, visible, offsetFromTop, model.scrollback > 0)
	return strings.Split(column, "\n")
}

// renderPrompt draws the editable input line: prompt prefix, input
// with a reverse-video cursor cell, and faint ghost text for the
// untyped remainder of the top suggestion.
func (model Model) renderPrompt() string {
	promptStyle := lipgloss.NewStyle().Foreground(model.theme.PromptForeground)
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	ghostStyle := lipgloss.NewStyle().Foreground(model.theme.GhostText)

	var prompt strings.Builder
	prompt.WriteString(promptStyle.Render(promptPrefix))

	before := string(model.input[:model.cursor])
	prompt.WriteString(before)

	if model.cursor < len(model.input) {
		prompt.WriteString(cursorStyle.Render(string(model.input[model.cursor])))
		prompt.WriteString(string(model.input[model.cursor+1:]))
	} else if model.completion.Ghost != "" {
		ghost := []rune(model.completion.Ghost)
		prompt.WriteString(cursorStyle.Render(string(ghost[0])))
		prompt.WriteString(ghostStyle.Render(string(ghost[1:])))
	} else {
		prompt.WriteString(cursorStyle.Render(" "))
	}

	return ansi.Truncate(prompt.String(), model.width, "")
}

// renderStatusBar draws the bottom line: a recent log notice if one
// is active, hint chips while the session still shows them, or the
// key help line.
func (model Model) renderStatusBar() string {
	if model.logNotice != "" {
		color := model.theme.AccentColor
		if model.logLevel >= slog.LevelError {
			color = model.theme.ErrorForeground
		}
		notice := lipgloss.NewStyle().Foreground(color).Render(model.logNotice)
		return ansi.Truncate(notice, model.width, "…")
	}

	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	if chips := model.session.HintChips(); len(chips) > 0 {
		return ansi.Truncate(helpStyle.Render("try: "+strings.Join(chips, " · ")), model.width, "…")
	}
	help := "Tab complete · ↑/↓ history · PgUp/PgDn scroll · C-l clear · C-c quit"
	return ansi.Truncate(helpStyle.Render(help), model.width, "…")
}

// spliceDropdown overlays the suggestion dropdown immediately above
// the prompt line, anchored at the column where the completed
// fragment starts.
func (model Model) spliceDropdown(output string, transcriptRows int) string {
	dropdownLines := model.dropdown.Render(model.theme)

	anchorX := len(promptPrefix) + fragmentStartColumn(string(model.input))
	if maxX := model.width - model.dropdown.Width(); anchorX > maxX {
		anchorX = maxX
	}
	if anchorX < 0 {
		anchorX = 0
	}
	anchorY := transcriptRows - len(dropdownLines)
	if anchorY < 0 {
		anchorY = 0
	}
	return tui.SpliceOverlay(output, dropdownLines, anchorX, anchorY)
}

// fragmentStartColumn is the rune column where the fragment being
// completed begins, relative to the start of the input.
func fragmentStartColumn(line string) int {
	return len([]rune(line)) - len([]rune(currentFragment(line)))
}
