// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shell implements the command-interpretation core of the
// library browser: tokenizer, command dispatcher, autocomplete,
// tree renderer, and the session state machine.
//
// A [Session] owns all mutable state: the working-directory history
// stack (floor pinned at root), the raw command-string history, and
// the display log. [Session.Execute] takes a raw line through the
// whole pipeline and applies exactly one atomic transition per line;
// every failure (unclosed quote, unknown command, bad path) appends a
// recoverable error entry, often with executable fix suggestions from
// the fuzzy ranker.
//
// The package is presentation-agnostic and single-threaded by
// contract: one goroutine drives Execute and Complete, while the
// content tree it reads is immutable and shared freely. External
// collaborators (navigation notifications, address sync) are injected
// interfaces, so the dispatcher is fully testable without a UI.
package shell
