// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/skillsmith/env"
)

func TestCreateZip_Reproducible(t *testing.T) {
	t.Parallel()

	files := []FileEntry{
		{Path: "b.txt", Content: []byte("content b")},
		{Path: "a.txt", Content: []byte("content a")},
		{Path: "c/d.txt", Content: []byte("content d")},
	}

	opts := Options{}

	zip1, err := CreateZip(files, opts)
	require.NoError(t, err)

	zip2, err := CreateZip(files, opts)
	require.NoError(t, err)

	assert.Equal(t, zip1, zip2, "CreateZip should produce identical output for same input")
}

func TestCreateZip_DifferentOrder(t *testing.T) {
	t.Parallel()

	files1 := []FileEntry{
		{Path: "b.txt", Content: []byte("b")},
		{Path: "a.txt", Content: []byte("a")},
	}

	files2 := []FileEntry{
		{Path: "a.txt", Content: []byte("a")},
		{Path: "b.txt", Content: []byte("b")},
	}

	zip1, err := CreateZip(files1, Options{})
	require.NoError(t, err)

	zip2, err := CreateZip(files2, Options{})
	require.NoError(t, err)

	assert.Equal(t, zip1, zip2, "CreateZip should sort files internally")
}

func TestCreateZip_EntryOrderAndContents(t *testing.T) {
	t.Parallel()

	files := []FileEntry{
		{Path: "z.txt", Content: []byte("z")},
		{Path: "a/inner.txt", Content: []byte("inner")},
	}

	data, err := CreateZip(files, Options{})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "a/inner.txt", zr.File[0].Name)
	assert.Equal(t, "z.txt", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(rc)
	require.NoError(t, err)
	assert.Equal(t, "inner", buf.String())
}

func TestDefaultOptions_SourceDateEpoch(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions(env.MapReader{"SOURCE_DATE_EPOCH": "1700000000"})
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), opts.Epoch)

	opts = DefaultOptions(env.MapReader{})
	assert.Equal(t, time.Unix(0, 0).UTC(), opts.Epoch)

	opts = DefaultOptions(env.MapReader{"SOURCE_DATE_EPOCH": "not-a-number"})
	assert.Equal(t, time.Unix(0, 0).UTC(), opts.Epoch)
}

func TestZipDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("---\nname: x\n---\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "run.sh"), []byte("echo hi\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("skip me"), 0o644))

	data1, err := ZipDirectory(dir, Options{})
	require.NoError(t, err)

	data2, err := ZipDirectory(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, data1, data2, "ZipDirectory should be deterministic")

	zr, err := zip.NewReader(bytes.NewReader(data1), int64(len(data1)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"SKILL.md", "scripts/run.sh"}, names)
}

func TestZipDirectory_RejectsSymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "SKILL.md"), filepath.Join(dir, "link.md")))

	_, err := ZipDirectory(dir, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlinks not allowed")
}
