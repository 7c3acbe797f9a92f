// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"errors"
	"strings"
)

// ErrUnclosedQuote is the tokenizer's only failure: a single or
// double quote opened but never closed before end of input.
var ErrUnclosedQuote = errors.New("unclosed quote")

// Tokenize splits a command line into tokens on unescaped whitespace.
// Single and double quotes group characters (and must close);
// backslash escapes whatever character follows it, inside or outside
// quotes. Whitespace-only input yields no tokens and no error — an
// empty prompt line is not a parse failure.
func Tokenize(line string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inToken := false
	var quote rune // 0 when outside quotes

	runes := []rune(line)
	for index := 0; index < len(runes); index++ {
		character := runes[index]

		switch {
		case character == '\\':
			inToken = true
			if index+1 < len(runes) {
				index++
				current.WriteRune(runes[index])
			} else {
				// A dangling backslash escapes nothing; keep it
				// literal rather than failing.
				current.WriteRune(character)
			}

		case quote != 0:
			if character == quote {
				quote = 0
			} else {
				current.WriteRune(character)
			}

		case character == '\'' || character == '"':
			inToken = true
			quote = character

		case character == ' ' || character == '\t':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}

		default:
			inToken = true
			current.WriteRune(character)
		}
	}

	if quote != 0 {
		return nil, ErrUnclosedQuote
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

// ParsedCommand is the result of tokenizing a line and resolving the
// command name through the alias table.
type ParsedCommand struct {
	// Name is the canonical command name, post-alias, lowercased.
	Name string
	// Args are the remaining tokens, in order.
	Args []string
}

// parseCommand tokenizes line and applies the session's alias table
// to the first token. A nil result with a nil error means the line
// held no command at all.
func (session *Session) parseCommand(line string) (*ParsedCommand, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	name := strings.ToLower(tokens[0])
	if canonical, ok := session.aliases[name]; ok {
		name = canonical
	}
	return &ParsedCommand{Name: name, Args: tokens[1:]}, nil
}
