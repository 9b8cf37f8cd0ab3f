// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/resonance/internal/models"
)

var (
	// ErrEmptyPath is returned when no catalog path is configured.
	ErrEmptyPath = errors.New("catalog path is empty")

	// ErrUnknownFormat is returned for a file extension or format name
	// other than json, yaml or yml.
	ErrUnknownFormat = errors.New("unknown catalog format")
)

// Format is a catalog document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml" in any case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Document is the on-disk catalog representation.
type Document struct {
	Tracks         []models.Track `json:"tracks" yaml:"tracks"`
	RecentlyPlayed []int64        `json:"recently_played,omitempty" yaml:"recently_played,omitempty"`
	CurrentTrack   *int64         `json:"current_track,omitempty" yaml:"current_track,omitempty"`
}

// Catalog is a resolved document ready for the recommender.
type Catalog struct {
	Tracks         []models.Track
	RecentlyPlayed []models.Track
	Current        models.TrackRef

	// Unresolved holds recently played IDs that are not in Tracks.
	Unresolved []int64
}

// Decode reads one document. Unknown keys are rejected so typos surface.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte, format Format) (*Document, error) {
	return Decode(bytes.NewReader(data), format)
}

// Validate checks every track.
func (d *Document) Validate() error {
	for i := range d.Tracks {
		if err := d.Tracks[i].Validate(); err != nil {
			return fmt.Errorf("tracks[%d]: %w", i, err)
		}
	}
	return nil
}

// Resolve maps recently played IDs to catalog tracks, preserving order.
// When the catalog repeats an ID the first track wins.
func (d *Document) Resolve() *Catalog {
	byID := make(map[int64]int, len(d.Tracks))
	for i := range d.Tracks {
		if _, exists := byID[d.Tracks[i].ID]; !exists {
			byID[d.Tracks[i].ID] = i
		}
	}

	c := &Catalog{
		Tracks:         d.Tracks,
		RecentlyPlayed: make([]models.Track, 0, len(d.RecentlyPlayed)),
		Current:        models.NoTrack(),
	}
	for _, id := range d.RecentlyPlayed {
		if i, ok := byID[id]; ok {
			c.RecentlyPlayed = append(c.RecentlyPlayed, d.Tracks[i])
		} else {
			c.Unresolved = append(c.Unresolved, id)
		}
	}
	if d.CurrentTrack != nil {
		c.Current = models.RefTo(*d.CurrentTrack)
	}
	return c
}
