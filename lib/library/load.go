// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML block recognized at the top of a markdown
// source file, delimited by "---" lines.
type frontmatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
	Date  string   `yaml:"date"`
}

// Load builds an immutable content tree from a directory of markdown
// files. Each *.md file becomes a File whose name is the filename
// without extension and whose slug is the slash-joined relative path
// without extension. A directory's own metadata comes from the
// frontmatter of an optional index.md inside it; the index file does
// not appear as a child. Entries whose name starts with "." or "_"
// are skipped.
//
// Malformed frontmatter is logged at WARN and treated as absent — a
// single bad file never fails the whole load.
func Load(rootPath string, logger *slog.Logger) (*Dir, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("library root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library root %s: not a directory", rootPath)
	}

	return loadDirectory(rootPath, "", "", logger)
}

// loadDirectory recursively builds the Dir for one source directory.
// name is the node name ("" for the root) and slugPrefix is the
// slash-joined relative path of the directory ("" for the root).
func loadDirectory(directoryPath, name, slugPrefix string, logger *slog.Logger) (*Dir, error) {
	entries, err := os.ReadDir(directoryPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", directoryPath, err)
	}

	var meta Metadata
	var children []Node

	for _, entry := range entries {
		entryName := entry.Name()
		if strings.HasPrefix(entryName, ".") || strings.HasPrefix(entryName, "_") {
			continue
		}
		entryPath := filepath.Join(directoryPath, entryName)

		if entry.IsDir() {
			childSlug := entryName
			if slugPrefix != "" {
				childSlug = slugPrefix + "/" + entryName
			}
			child, err := loadDirectory(entryPath, entryName, childSlug, logger)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			continue
		}

		if !strings.HasSuffix(entryName, ".md") {
			continue
		}

		raw, err := os.ReadFile(entryPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entryPath, err)
		}
		fileMeta, body := splitFrontmatter(string(raw), entryPath, logger)

		if entryName == "index.md" {
			// The index file describes the directory itself.
			meta = fileMeta
			continue
		}

		baseName := strings.TrimSuffix(entryName, ".md")
		slug := baseName
		if slugPrefix != "" {
			slug = slugPrefix + "/" + baseName
		}
		children = append(children, NewFile(baseName, slug, fileMeta, body))
	}

	directory, err := NewDir(name, meta, children...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", directoryPath, err)
	}
	return directory, nil
}

// splitFrontmatter separates an optional leading YAML frontmatter
// block from the markdown body. Returns zero metadata when no block
// is present or the YAML fails to parse (logged at WARN).
func splitFrontmatter(source, sourcePath string, logger *slog.Logger) (Metadata, string) {
	const delimiter = "---"

	rest, found := strings.CutPrefix(source, delimiter+"\n")
	if !found {
		return Metadata{}, source
	}
	block, body, found := strings.Cut(rest, "\n"+delimiter)
	if !found {
		logger.Warn("unterminated frontmatter block", "file", sourcePath)
		return Metadata{}, source
	}
	// Drop the newline (and any trailing delimiter-line remainder)
	// immediately after the closing delimiter.
	body = strings.TrimPrefix(body, "\n")

	var parsed frontmatter
	if err := yaml.Unmarshal([]byte(block), &parsed); err != nil {
		logger.Warn("invalid frontmatter", "file", sourcePath, "error", err)
		return Metadata{}, body
	}
	return Metadata{Title: parsed.Title, Tags: parsed.Tags, Date: parsed.Date}, body
}
