// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides JSONC configuration loading for the stacks
// shell.
//
// Configuration is loaded from a single file specified by either the
// STACKS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. This ensures deterministic, auditable
// configuration with no hidden overrides.
//
// The file format is JSONC: JSON with // comments and trailing
// commas, translated to plain JSON with tidwall/jsonc before decoding
// with encoding/json.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- the shell's settings: library root, banner,
//     aliases, hint chips, history store, logging
//   - [Default] -- returns a Config with usable defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other stacks packages.
package config
