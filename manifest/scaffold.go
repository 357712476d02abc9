// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/stacklok/skillsmith/skilldir"
)

// scaffoldVersion is the version assigned to newly scaffolded entries.
const scaffoldVersion = "1.0.0"

// Scaffold derives a new raw entry from the skill directory at dirPath
// (relative to repoRoot or absolute, but always inside it) and returns a new
// document with the entry inserted and the entry list re-sorted by id.
//
// The id and slug are the directory basename; the channel is inferred from
// the path (experimental-rooted paths become beta). Precondition: no
// existing entry may share the normalized relative path, id, or slug
// (case-insensitive). The updated document is re-validated in full before
// being returned, so a scaffold failure never leaves an invalid document
// for the caller to persist. The input document is not mutated.
func Scaffold(doc *Document, repoRoot, dirPath string) (*Document, RawEntry, error) {
	var zero RawEntry

	rootAbs, err := filepath.Abs(repoRoot)
	if err != nil {
		return nil, zero, fmt.Errorf("resolving repository root: %w", err)
	}

	absPath, relPath, err := resolveWithinRoot(rootAbs, dirPath)
	if err != nil {
		return nil, zero, err
	}
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		return nil, zero, fmt.Errorf("skill directory not found: %s", relPath)
	}
	descriptorPath := filepath.Join(absPath, skilldir.DescriptorFile)
	if fi, err := os.Stat(descriptorPath); err != nil || fi.IsDir() {
		return nil, zero, fmt.Errorf("missing %s in %s", skilldir.DescriptorFile, relPath)
	}

	base := path.Base(relPath)
	if !slugPattern.MatchString(base) {
		return nil, zero, fmt.Errorf("directory name %q is not a valid slug (must match %s)", base, slugPattern.String())
	}

	for i, existing := range doc.Skills {
		switch {
		case strings.EqualFold(path.Clean(existing.Path), relPath):
			return nil, zero, fmt.Errorf("skills[%d] (%s) already covers path %s", i, existing.ID, relPath)
		case strings.EqualFold(existing.ID, base):
			return nil, zero, fmt.Errorf("skills[%d] already uses id %q", i, existing.ID)
		case strings.EqualFold(existing.Slug, base):
			return nil, zero, fmt.Errorf("skills[%d] already uses slug %q", i, existing.Slug)
		}
	}

	header, err := skilldir.ReadHeaderFile(descriptorPath)
	if err != nil {
		return nil, zero, fmt.Errorf("reading %s: %w", skilldir.DescriptorFile, err)
	}

	channel := ChannelStable
	if skilldir.IsExperimental(relPath) {
		channel = ChannelBeta
	}

	entry := RawEntry{
		ID:        base,
		Slug:      base,
		Path:      relPath,
		Version:   scaffoldVersion,
		SkillName: defaultSkillName("", header, base),
		Title:     defaultTitle("", base),
		Channel:   string(channel),
	}
	entry.Description = defaultDescription("", header, entry.Title)
	entry.Summary = defaultSummary("", entry.Description)

	updated := &Document{
		SchemaVersion: doc.SchemaVersion,
		Skills:        append(slices.Clone(doc.Skills), entry),
	}
	slices.SortFunc(updated.Skills, func(a, b RawEntry) int {
		return strings.Compare(a.ID, b.ID)
	})

	// Closing invariant check: a newly-added entry must itself pass full
	// validation before anything is persisted.
	if _, err := ResolveAll(updated, repoRoot); err != nil {
		return nil, zero, fmt.Errorf("scaffolded manifest failed validation: %w", err)
	}

	return updated, entry, nil
}
