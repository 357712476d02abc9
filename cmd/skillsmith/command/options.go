// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package command holds flag handling shared by the skillsmith subcommands.
package command

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/stacklok/skillsmith/config"
)

// ErrInvalidArgs is returned on invalid flag or argument combinations.
var ErrInvalidArgs = errors.New("invalid arguments")

// Common carries the flags every subcommand accepts.
type Common struct {
	Root     string
	Manifest string
}

// AddFlags registers the common flags on the given flag set.
func (o *Common) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(
		&o.Root,
		"root",
		".",
		"Repository root directory.",
	)
	flags.StringVar(
		&o.Manifest,
		"manifest",
		"",
		"Manifest path relative to the repository root. Defaults to the configured location.",
	)
}

// Resolved is the effective run configuration after merging flags with the
// repository config file and the built-in defaults.
type Resolved struct {
	// Root is the absolute repository root.
	Root string
	// ManifestPath is the absolute manifest location.
	ManifestPath string
	// Config is the loaded repository configuration.
	Config config.Config
}

// Resolve loads the repository config and computes the effective paths.
// Every path is checked against the repository root; escaping paths are
// rejected.
func (o *Common) Resolve() (Resolved, error) {
	rootAbs, err := filepath.Abs(o.Root)
	if err != nil {
		return Resolved{}, fmt.Errorf("resolving repository root: %w", err)
	}

	cfg, err := config.Load(rootAbs)
	if err != nil {
		return Resolved{}, err
	}

	manifestRel := o.Manifest
	if manifestRel == "" {
		manifestRel = cfg.Manifest
	}
	manifestAbs, err := InsideRoot(rootAbs, manifestRel)
	if err != nil {
		return Resolved{}, fmt.Errorf("%w: manifest %w", ErrInvalidArgs, err)
	}

	return Resolved{
		Root:         rootAbs,
		ManifestPath: manifestAbs,
		Config:       cfg,
	}, nil
}

// InsideRoot joins p onto rootAbs and verifies the result stays inside it.
func InsideRoot(rootAbs, p string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(p))

	abs := cleaned
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(rootAbs, cleaned)
	}

	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the repository root", p)
	}

	return abs, nil
}
