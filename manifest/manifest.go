// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SchemaVersion is the only supported manifest schema version.
const SchemaVersion = 1

// RawEntry is one unvalidated manifest entry. Required fields are id, slug,
// path, and version; everything else is derived by the normalizer when
// absent.
type RawEntry struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Path        string `json:"path"`
	Version     string `json:"version"`
	SkillName   string `json:"skillName,omitempty"`
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Channel     string `json:"channel,omitempty"`
	AssetName   string `json:"assetName,omitempty"`
}

// Document is the manifest file contents.
type Document struct {
	SchemaVersion int        `json:"schemaVersion"`
	Skills        []RawEntry `json:"skills"`
}

// Load reads and schema-checks the manifest document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- manifest path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &doc, nil
}

// Save persists the document to path as 2-space-indented UTF-8 JSON with a
// trailing newline, overwriting any existing file.
func (d *Document) Save(path string) error {
	out := *d
	if out.Skills == nil {
		out.Skills = []RawEntry{}
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- manifest is a tracked repository file
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
