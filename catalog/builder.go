// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package catalog turns validated manifest entries into release artifacts:
// per-skill zip packages, a checksum ledger, and channel-partitioned catalog
// documents consumed by the storefront.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/stacklok/skillsmith/archive"
	"github.com/stacklok/skillsmith/env"
	"github.com/stacklok/skillsmith/logger"
	"github.com/stacklok/skillsmith/manifest"
)

// Entry is the published-facing projection of a resolved manifest entry.
type Entry struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	SkillName   string `json:"skillName"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Version     string `json:"version"`
	PackageURL  string `json:"packageUrl"`
	SHA256      string `json:"sha256"`
}

// Document is one channel's catalog file contents.
type Document struct {
	Skills []Entry `json:"skills"`
}

// Artifact layout within the output root.
const (
	PackagesDir = "packages"
	LedgerFile  = "SHA256SUMS"
)

// DefaultHost is the release host used in package URLs.
const DefaultHost = "github.com"

// Builder produces the full artifact set for one build run. It owns the
// output root and the tracked catalog directory for the duration of a run;
// concurrent runs against the same repository are not supported.
type Builder struct {
	// OutputRoot is the disposable output directory. It is fully cleared
	// and recreated before any artifact is written.
	OutputRoot string
	// CatalogDir is the tracked repository catalog location. Channel
	// documents are overwritten there in place, in addition to the copies
	// under OutputRoot. The dual write is intentional.
	CatalogDir string
	// Host overrides the release host in package URLs (DefaultHost if empty).
	Host string
	// Env supplies SOURCE_DATE_EPOCH for reproducible archives
	// (env.OSReader if nil).
	Env env.Reader
}

// BuildResult summarizes a completed build run.
type BuildResult struct {
	Packaged   int
	PerChannel map[manifest.Channel]int
}

// Build packages every entry in order, hashes each archive, and writes the
// channel catalogs plus the checksum ledger. Entries are expected in the
// normalizer's id-sorted order. Any failure is fatal: no partial catalog is
// written after a packaging error.
func (b *Builder) Build(entries []manifest.ResolvedEntry, repoSlug, tag string) (*BuildResult, error) {
	if repoSlug == "" {
		return nil, fmt.Errorf("repository slug is required")
	}
	if tag == "" {
		return nil, fmt.Errorf("release tag is required")
	}

	host := b.Host
	if host == "" {
		host = DefaultHost
	}
	envReader := b.Env
	if envReader == nil {
		envReader = &env.OSReader{}
	}
	opts := archive.DefaultOptions(envReader)

	// Clear and recreate the output root so a build run is idempotent and
	// non-additive.
	if err := os.RemoveAll(b.OutputRoot); err != nil {
		return nil, fmt.Errorf("clearing output root %s: %w", b.OutputRoot, err)
	}
	if err := os.MkdirAll(filepath.Join(b.OutputRoot, PackagesDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating output root %s: %w", b.OutputRoot, err)
	}

	byChannel := map[manifest.Channel][]Entry{
		manifest.ChannelStable: make([]Entry, 0, len(entries)),
		manifest.ChannelBeta:   make([]Entry, 0),
	}

	var ledger strings.Builder
	for _, entry := range entries {
		data, err := archive.ZipDirectory(entry.AbsSkillPath, opts)
		if err != nil {
			return nil, fmt.Errorf("packaging %s: %w", entry.ID, err)
		}

		outPath := filepath.Join(b.OutputRoot, PackagesDir, entry.AssetName)
		if err := os.WriteFile(outPath, data, 0o644); err != nil { //#nosec G306 -- release artifact
			return nil, fmt.Errorf("writing package %s: %w", outPath, err)
		}

		sum := digest.FromBytes(data).Encoded()
		fmt.Fprintf(&ledger, "%s  %s/%s\n", sum, PackagesDir, entry.AssetName)

		byChannel[entry.Channel] = append(byChannel[entry.Channel], Entry{
			ID:          entry.ID,
			Slug:        entry.Slug,
			SkillName:   entry.SkillName,
			Title:       entry.Title,
			Summary:     entry.Summary,
			Description: entry.Description,
			Icon:        entry.Icon,
			Version:     entry.Version,
			PackageURL:  fmt.Sprintf("https://%s/%s/releases/download/%s/%s", host, repoSlug, tag, entry.AssetName),
			SHA256:      sum,
		})

		logger.Debugw("packaged skill", "id", entry.ID, "asset", entry.AssetName, "sha256", sum)
	}

	result := &BuildResult{
		Packaged:   len(entries),
		PerChannel: make(map[manifest.Channel]int, len(byChannel)),
	}

	for _, channel := range []manifest.Channel{manifest.ChannelStable, manifest.ChannelBeta} {
		channelEntries := byChannel[channel]
		slices.SortFunc(channelEntries, func(a, b Entry) int {
			return strings.Compare(a.ID, b.ID)
		})
		if err := b.writeChannelDocument(channel, channelEntries); err != nil {
			return nil, err
		}
		result.PerChannel[channel] = len(channelEntries)
	}

	ledgerPath := filepath.Join(b.OutputRoot, LedgerFile)
	if err := os.WriteFile(ledgerPath, []byte(ledger.String()), 0o644); err != nil { //#nosec G306 -- release artifact
		return nil, fmt.Errorf("writing checksum ledger %s: %w", ledgerPath, err)
	}

	return result, nil
}

// writeChannelDocument serializes one channel catalog and writes it to both
// the disposable output root and the tracked catalog directory.
func (b *Builder) writeChannelDocument(channel manifest.Channel, entries []Entry) error {
	data, err := json.MarshalIndent(Document{Skills: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing %s catalog: %w", channel, err)
	}
	data = append(data, '\n')

	name := string(channel) + ".json"

	for _, dir := range []string{b.OutputRoot, b.CatalogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating catalog directory %s: %w", dir, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- catalog is a published document
			return fmt.Errorf("writing catalog %s: %w", path, err)
		}
	}

	return nil
}
