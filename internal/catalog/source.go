// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package catalog

import (
	"context"
	"fmt"
	"os"
)

// Source supplies the current catalog. Implementations must be safe for
// concurrent use; the warmer and the HTTP API call Load independently.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// FileSource reads a catalog document from disk on every Load, so edits to
// the file are picked up by the next warmer run or request.
type FileSource struct {
	path   string
	format Format
}

// NewFileSource creates a source for path. The format comes from the extension.
func NewFileSource(path string) (*FileSource, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, format: format}, nil
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads and resolves the document.
func (s *FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f, s.format)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", s.path, err)
	}
	return doc.Resolve(), nil
}

// LoadFile is a one-shot FileSource load.
func LoadFile(ctx context.Context, path string) (*Catalog, error) {
	src, err := NewFileSource(path)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx)
}

// StaticSource serves a fixed catalog.
type StaticSource struct {
	catalog *Catalog
}

// NewStaticSource wraps c.
func NewStaticSource(c *Catalog) *StaticSource {
	return &StaticSource{catalog: c}
}

// Load returns the wrapped catalog.
func (s *StaticSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog, nil
}
