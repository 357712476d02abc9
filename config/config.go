// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the optional skillsmith configuration file. Flags
// override config values, config values override built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// FileName is the repository-level configuration file name.
const FileName = ".skillsmith.yaml"

// Config holds repository-level build settings.
type Config struct {
	// Host is the release host used in package URLs.
	Host string `yaml:"host"`
	// SkillsDir is the skills root, relative to the repository root.
	SkillsDir string `yaml:"skillsDir"`
	// CatalogDir is the tracked catalog location, relative to the repository root.
	CatalogDir string `yaml:"catalogDir"`
	// OutputDir is the disposable build output root, relative to the repository root.
	OutputDir string `yaml:"outputDir"`
	// Manifest is the manifest path, relative to the repository root.
	Manifest string `yaml:"manifest"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:       "github.com",
		SkillsDir:  "skills",
		CatalogDir: "catalog",
		OutputDir:  "dist",
		Manifest:   filepath.ToSlash(filepath.Join("skills", "manifest.json")),
	}
}

// Load reads configuration for the repository rooted at repoRoot. The
// repository-level file wins over the user-level XDG one; both are optional.
func Load(repoRoot string) (Config, error) {
	return loadFrom([]string{
		filepath.Join(repoRoot, FileName),
		filepath.Join(xdg.ConfigHome, "skillsmith", "config.yaml"),
	})
}

// loadFrom returns the defaults overlaid with the first config file that
// exists in paths. A missing file is not an error; an unreadable or
// malformed one is.
func loadFrom(paths []string) (Config, error) {
	cfg := Default()

	for _, path := range paths {
		data, err := os.ReadFile(path) //#nosec G304 -- fixed config locations
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}

		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}

		cfg.overlay(file)
		break
	}

	return cfg, nil
}

// overlay replaces cfg fields with the non-empty fields of other.
func (c *Config) overlay(other Config) {
	if other.Host != "" {
		c.Host = other.Host
	}
	if other.SkillsDir != "" {
		c.SkillsDir = other.SkillsDir
	}
	if other.CatalogDir != "" {
		c.CatalogDir = other.CatalogDir
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if other.Manifest != "" {
		c.Manifest = other.Manifest
	}
}
