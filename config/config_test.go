// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := loadFrom([]string{filepath.Join(t.TempDir(), FileName)})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "github.com", cfg.Host)
	assert.Equal(t, "skills/manifest.json", cfg.Manifest)
}

func TestLoad_RepoFileOverlay(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	content := []byte("host: releases.example.com\noutputDir: build\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), content, 0o644))

	cfg, err := loadFrom([]string{filepath.Join(root, FileName)})
	require.NoError(t, err)
	assert.Equal(t, "releases.example.com", cfg.Host)
	assert.Equal(t, "build", cfg.OutputDir)
	// Unset fields keep their defaults.
	assert.Equal(t, "skills", cfg.SkillsDir)
	assert.Equal(t, "catalog", cfg.CatalogDir)
}

func TestLoad_FirstFileWins(t *testing.T) {
	t.Parallel()

	repoDir := t.TempDir()
	userDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, FileName), []byte("host: repo.example.com\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte("host: user.example.com\n"), 0o644))

	cfg, err := loadFrom([]string{
		filepath.Join(repoDir, FileName),
		filepath.Join(userDir, "config.yaml"),
	})
	require.NoError(t, err)
	assert.Equal(t, "repo.example.com", cfg.Host)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("host: [unclosed\n"), 0o644))

	_, err := loadFrom([]string{filepath.Join(root, FileName)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
