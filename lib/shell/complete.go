// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"strings"

	"github.com/bureau-foundation/stacks/lib/fuzzy"
	"github.com/bureau-foundation/stacks/lib/library"
)

// SuggestionKind distinguishes what a suggestion inserts.
type SuggestionKind int

const (
	// SuggestCommand completes a command name.
	SuggestCommand SuggestionKind = iota
	// SuggestDirectory completes a path ending in a directory.
	SuggestDirectory
	// SuggestFile completes a path ending in a file.
	SuggestFile
)

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Kind SuggestionKind
	// Insert is the text that replaces the in-progress token when the
	// suggestion is accepted.
	Insert string
	// Label is the display text (the bare child or command name).
	Label string
}

// Completion is the result of a completion query at end-of-line
// cursor position.
type Completion struct {
	Suggestions []Suggestion
	// Ghost is the untyped remainder of the top suggestion, suitable
	// for inline faint display after the cursor. Empty when there is
	// no suggestion or nothing left to type.
	Ghost string
}

// Complete computes context-aware suggestions for a partial command
// line. Command position (no whitespace typed yet) filters the
// command vocabulary by exact prefix only: stricter than the fuzzy
// error-correction path on purpose, because autocomplete must never
// jump to a dissimilar command mid-typing. Argument position
// completes the final token as a path according to the command's
// declared completion mode.
func (session *Session) Complete(line string) Completion {
	if line == "" {
		return Completion{}
	}

	if !strings.ContainsAny(line, " \t") {
		return session.completeCommand(line)
	}
	return session.completeArgument(line)
}

// completeCommand filters the vocabulary by prefix of the typed word.
func (session *Session) completeCommand(typed string) Completion {
	needle := strings.ToLower(typed)

	var suggestions []Suggestion
	for _, name := range commandVocabulary() {
		if strings.HasPrefix(name, needle) {
			suggestions = append(suggestions, Suggestion{
				Kind:   SuggestCommand,
				Insert: name,
				Label:  name,
			})
		}
	}

	completion := Completion{Suggestions: suggestions}
	if len(suggestions) > 0 {
		completion.Ghost = strings.TrimPrefix(suggestions[0].Insert, needle)
	}
	return completion
}

// completeArgument completes the final token of the line as a path
// under the working directory.
func (session *Session) completeArgument(line string) Completion {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })
	if len(fields) == 0 {
		return Completion{}
	}

	name := strings.ToLower(fields[0])
	if canonical, ok := session.aliases[name]; ok {
		name = canonical
	}
	spec, known := commandTable[name]
	if !known || spec.mode == completeNone {
		return Completion{}
	}

	token := ""
	if !strings.HasSuffix(line, " ") && !strings.HasSuffix(line, "\t") {
		token = fields[len(fields)-1]
	}
	// An opening quote belongs to the token's syntax, not its value.
	token = strings.TrimLeft(token, `'"`)

	directoryPart, basePart := splitLastSlash(token)

	listing, ok := session.listChildren(directoryPart)
	if !ok {
		return Completion{}
	}

	var suggestions []Suggestion
	needle := strings.ToLower(basePart)
	for _, child := range listing {
		if !strings.HasPrefix(strings.ToLower(child.Name()), needle) {
			continue
		}
		_, isDir := child.(*library.Dir)
		if !spec.mode.allows(isDir) {
			continue
		}

		suggestion := Suggestion{Kind: SuggestFile, Insert: directoryPart + child.Name(), Label: child.Name()}
		if isDir {
			suggestion.Kind = SuggestDirectory
			suggestion.Insert += "/"
			suggestion.Label += "/"
		}
		suggestions = append(suggestions, suggestion)
	}

	completion := Completion{Suggestions: suggestions}
	if len(suggestions) > 0 {
		typed := directoryPart + basePart
		top := suggestions[0].Insert
		if len(top) >= len(typed) && strings.EqualFold(top[:len(typed)], typed) {
			completion.Ghost = top[len(typed):]
		}
	}
	return completion
}

// Accept applies a suggestion to the line: the in-progress token is
// replaced by the suggestion's insert text, preserving an opening
// quote if one was typed. A trailing space is appended unless the
// insertion is a directory (more path likely follows), except that a
// bare command completion always gets its argument-separating space.
func Accept(line string, suggestion Suggestion) string {
	tokenStart := lastTokenStart(line)
	token := line[tokenStart:]

	quote := ""
	if strings.HasPrefix(token, `'`) || strings.HasPrefix(token, `"`) {
		quote = token[:1]
	}

	accepted := line[:tokenStart] + quote + suggestion.Insert
	switch suggestion.Kind {
	case SuggestCommand:
		accepted += " "
	case SuggestDirectory:
		// Keep typing into the directory.
	default:
		accepted += " "
	}
	return accepted
}

// DidYouMean builds fix suggestions after a failed path resolution:
// the children of the deepest directory that did resolve, ranked by
// fuzzy similarity to the failing segment and filtered by the
// command's completion mode. Each fix is a full replacement command
// line.
func (session *Session) DidYouMean(commandName string, notFound *library.NotFoundError) []string {
	spec, known := commandTable[commandName]
	if !known {
		return nil
	}

	node, ok := library.Lookup(session.root, notFound.Parent)
	if !ok {
		return nil
	}
	directory, isDir := node.(*library.Dir)
	if !isDir {
		return nil
	}

	var names []string
	byName := make(map[string]library.Node)
	for _, child := range directory.Children() {
		_, childIsDir := child.(*library.Dir)
		if !spec.mode.allows(childIsDir) {
			continue
		}
		names = append(names, child.Name())
		byName[child.Name()] = child
	}

	var fixes []string
	for _, name := range fuzzy.Rank(notFound.Segment, names, maxFixes) {
		childPath := library.Join(append(library.Split(notFound.Parent), name))
		fixes = append(fixes, commandName+" "+childPath)
	}
	return fixes
}

// listChildren resolves a directory-part path expression against the
// working directory and returns its direct children in display order.
func (session *Session) listChildren(directoryPart string) ([]library.Node, bool) {
	target := strings.TrimSuffix(directoryPart, "/")
	if target == "" {
		if strings.HasPrefix(directoryPart, "/") {
			target = "/"
		} else {
			target = "."
		}
	}

	canonical, err := library.Resolve(session.root, session.WorkingDir(), target)
	if err != nil {
		return nil, false
	}
	node, ok := library.Lookup(session.root, canonical)
	if !ok {
		return nil, false
	}
	directory, isDir := node.(*library.Dir)
	if !isDir {
		return nil, false
	}
	return directory.Children(), true
}

// splitLastSlash splits a path token at its final '/'. The directory
// part keeps the slash; both parts may be empty.
func splitLastSlash(token string) (directoryPart, basePart string) {
	index := strings.LastIndexByte(token, '/')
	if index < 0 {
		return "", token
	}
	return token[:index+1], token[index+1:]
}

// lastTokenStart finds the byte offset where the final
// whitespace-delimited token begins.
func lastTokenStart(line string) int {
	index := strings.LastIndexAny(line, " \t")
	return index + 1
}
