// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/stacklok/skillsmith/skilldir"
)

// Channel is a distribution track determining which catalog document a
// package appears in.
type Channel string

// Supported distribution channels.
const (
	ChannelStable Channel = "stable"
	ChannelBeta   Channel = "beta"
)

// FallbackIcon is the glyph used when an entry declares no icon.
const FallbackIcon = "🧩"

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+([-+].*)?$`)
)

// ResolvedEntry is a fully-derived, validated manifest entry. Instances are
// immutable after construction.
type ResolvedEntry struct {
	ID          string
	Slug        string
	SkillName   string
	Title       string
	Summary     string
	Description string
	Icon        string
	Version     string
	Channel     Channel
	AssetName   string

	// AbsSkillPath is the absolute skill directory path.
	AbsSkillPath string
	// RelSkillPath is the slash-separated path relative to the repository root.
	RelSkillPath string
}

// ResolveAll normalizes and validates every entry of the document against
// the filesystem rooted at repoRoot. Validation is fail-fast: the first
// violation aborts with an error naming the offending entry and rule.
// The returned set is sorted by id for deterministic downstream ordering.
func ResolveAll(doc *Document, repoRoot string) ([]ResolvedEntry, error) {
	if doc.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("unsupported manifest schemaVersion %d (want %d)", doc.SchemaVersion, SchemaVersion)
	}

	rootAbs, err := filepath.Abs(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving repository root: %w", err)
	}

	// Duplicate detection is order-sensitive across the batch: the first
	// occurrence wins, later duplicates fail.
	seenIDs := make(map[string]int, len(doc.Skills))
	seenSlugs := make(map[string]int, len(doc.Skills))

	resolved := make([]ResolvedEntry, 0, len(doc.Skills))
	for i, raw := range doc.Skills {
		entry, err := resolveEntry(raw, i, rootAbs, seenIDs, seenSlugs)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, entry)
	}

	slices.SortFunc(resolved, func(a, b ResolvedEntry) int {
		return strings.Compare(a.ID, b.ID)
	})

	return resolved, nil
}

// resolveEntry applies the default-resolution rules and the ordered
// validation chain to a single raw entry.
func resolveEntry(raw RawEntry, index int, rootAbs string, seenIDs, seenSlugs map[string]int) (ResolvedEntry, error) {
	var zero ResolvedEntry

	// Path first: everything else depends on the skill directory.
	if raw.Path == "" {
		return zero, fmt.Errorf("skills[%d]: path is required", index)
	}
	absPath, relPath, err := resolveWithinRoot(rootAbs, raw.Path)
	if err != nil {
		return zero, fmt.Errorf("skills[%d]: %w", index, err)
	}
	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		return zero, fmt.Errorf("skills[%d]: skill directory not found: %s", index, relPath)
	}
	descriptorPath := filepath.Join(absPath, skilldir.DescriptorFile)
	if fi, err := os.Stat(descriptorPath); err != nil || fi.IsDir() {
		return zero, fmt.Errorf("skills[%d] (%s): missing %s in %s", index, raw.Slug, skilldir.DescriptorFile, relPath)
	}

	if !slugPattern.MatchString(raw.Slug) {
		return zero, fmt.Errorf("skills[%d]: invalid slug %q (must match %s)", index, raw.Slug, slugPattern.String())
	}

	if raw.ID == "" {
		return zero, fmt.Errorf("skills[%d] (%s): id is required", index, raw.Slug)
	}
	if first, dup := seenIDs[strings.ToLower(raw.ID)]; dup {
		return zero, fmt.Errorf("skills[%d] (%s): duplicate id %q (first used by skills[%d])", index, raw.Slug, raw.ID, first)
	}
	seenIDs[strings.ToLower(raw.ID)] = index

	if first, dup := seenSlugs[strings.ToLower(raw.Slug)]; dup {
		return zero, fmt.Errorf("skills[%d] (%s): duplicate slug %q (first used by skills[%d])", index, raw.ID, raw.Slug, first)
	}
	seenSlugs[strings.ToLower(raw.Slug)] = index

	if !versionPattern.MatchString(raw.Version) {
		return zero, fmt.Errorf("skills[%d] (%s): invalid version %q (want MAJOR.MINOR.PATCH with optional -/+ suffix)", index, raw.ID, raw.Version)
	}

	// Descriptor header values are a fallback source for defaults only;
	// the header itself is never validated.
	header, err := skilldir.ReadHeaderFile(descriptorPath)
	if err != nil {
		return zero, fmt.Errorf("skills[%d] (%s): reading %s: %w", index, raw.ID, skilldir.DescriptorFile, err)
	}

	entry := ResolvedEntry{
		ID:           raw.ID,
		Slug:         raw.Slug,
		Version:      raw.Version,
		SkillName:    defaultSkillName(raw.SkillName, header, raw.Slug),
		Title:        defaultTitle(raw.Title, raw.Slug),
		Icon:         defaultIcon(raw.Icon),
		Channel:      Channel(defaultChannel(raw.Channel)),
		AssetName:    defaultAssetName(raw.AssetName, raw.Slug, raw.Version),
		AbsSkillPath: absPath,
		RelSkillPath: relPath,
	}
	entry.Description = defaultDescription(raw.Description, header, entry.Title)
	entry.Summary = defaultSummary(raw.Summary, entry.Description)

	if entry.Channel != ChannelStable && entry.Channel != ChannelBeta {
		return zero, fmt.Errorf("skills[%d] (%s): invalid channel %q (want %q or %q)", index, raw.ID, entry.Channel, ChannelStable, ChannelBeta)
	}

	for _, field := range []struct{ name, value string }{
		{"title", entry.Title},
		{"skillName", entry.SkillName},
		{"summary", entry.Summary},
		{"description", entry.Description},
	} {
		if field.value == "" {
			return zero, fmt.Errorf("skills[%d] (%s): %s must not be empty", index, raw.ID, field.name)
		}
	}

	if !strings.HasSuffix(entry.AssetName, ".zip") {
		return zero, fmt.Errorf("skills[%d] (%s): assetName %q must end in .zip", index, raw.ID, entry.AssetName)
	}
	if strings.ContainsAny(entry.AssetName, `/\`) {
		return zero, fmt.Errorf("skills[%d] (%s): assetName %q must not contain path separators", index, raw.ID, entry.AssetName)
	}

	return entry, nil
}

// resolveWithinRoot joins p onto the repository root and verifies the result
// does not escape it. Returns the absolute path and the slash-separated
// relative path.
func resolveWithinRoot(rootAbs, p string) (string, string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(p))

	abs := cleaned
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(rootAbs, cleaned)
	}

	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("path %q escapes the repository root", p)
	}

	return abs, filepath.ToSlash(rel), nil
}

// Default-resolution rules. Each field has an explicit ordered chain:
// manifest value, then descriptor value where applicable, then computed
// default.

func defaultSkillName(explicit string, header map[string]string, slug string) string {
	if explicit != "" {
		return explicit
	}
	if name := header["name"]; name != "" {
		return name
	}
	return slug
}

func defaultTitle(explicit, slug string) string {
	if explicit != "" {
		return explicit
	}
	return titleCaseSlug(slug)
}

func defaultDescription(explicit string, header map[string]string, title string) string {
	if explicit != "" {
		return explicit
	}
	if desc := header["description"]; desc != "" {
		return desc
	}
	return title
}

func defaultSummary(explicit, description string) string {
	if explicit != "" {
		return explicit
	}
	return description
}

func defaultIcon(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return FallbackIcon
}

func defaultChannel(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return string(ChannelStable)
}

func defaultAssetName(explicit, slug, version string) string {
	if explicit != "" {
		return explicit
	}
	return fmt.Sprintf("%s-%s.zip", slug, version)
}

// titleCaseSlug turns "my-skill_name" into "My Skill Name".
func titleCaseSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
