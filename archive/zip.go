// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package archive creates reproducible zip archives from skill directories.
//
// Entries are sorted by path, timestamps are pinned to a fixed epoch, and
// file modes are normalized, so archiving the same directory twice produces
// byte-identical output. SOURCE_DATE_EPOCH is honored for the pinned
// timestamp.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/stacklok/skillsmith/env"
)

// Options configures reproducible zip archive creation.
type Options struct {
	// Epoch is the timestamp to use for all entries (defaults to Unix epoch).
	Epoch time.Time
}

// DefaultOptions returns default options for reproducible archives.
// Respects SOURCE_DATE_EPOCH read through the given env reader.
func DefaultOptions(envReader env.Reader) Options {
	epoch := time.Unix(0, 0).UTC()

	if sde := envReader.Getenv("SOURCE_DATE_EPOCH"); sde != "" {
		if ts, err := strconv.ParseInt(sde, 10, 64); err == nil {
			epoch = time.Unix(ts, 0).UTC()
		}
	}

	return Options{Epoch: epoch}
}

// FileEntry represents a file to include in a zip archive.
type FileEntry struct {
	Path    string // Slash-separated path within the archive
	Content []byte // File content
}

// CreateZip creates a reproducible zip archive from the given files.
// Files are sorted alphabetically and normalized headers are used to ensure
// deterministic output.
func CreateZip(files []FileEntry, opts Options) ([]byte, error) {
	if opts.Epoch.IsZero() {
		opts.Epoch = time.Unix(0, 0).UTC()
	}

	// Sort files for deterministic ordering
	sorted := make([]FileEntry, len(files))
	copy(sorted, files)
	slices.SortFunc(sorted, func(a, b FileEntry) int {
		return strings.Compare(a.Path, b.Path)
	})

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range sorted {
		hdr := &zip.FileHeader{
			Name:   f.Path,
			Method: zip.Deflate,
		}
		hdr.SetMode(0o644)
		hdr.Modified = opts.Epoch

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("creating zip entry %s: %w", f.Path, err)
		}
		if _, err := w.Write(f.Content); err != nil {
			return nil, fmt.Errorf("writing zip entry %s: %w", f.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zip writer: %w", err)
	}

	return buf.Bytes(), nil
}

// ZipDirectory archives the full contents of dir into a reproducible zip.
// Hidden files and directories are skipped; symlinks and other non-regular
// files are rejected.
func ZipDirectory(dir string, opts Options) ([]byte, error) {
	files, err := collectFiles(dir)
	if err != nil {
		return nil, err
	}
	return CreateZip(files, opts)
}

// collectFiles walks a directory and returns all regular files as entries
// with slash-separated relative paths.
func collectFiles(dir string) ([]FileEntry, error) {
	var files []FileEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if path == dir {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("getting relative path: %w", err)
		}
		relPath = filepath.ToSlash(relPath)

		// Skip hidden files/directories
		if strings.HasPrefix(filepath.Base(relPath), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// WalkDir follows symlinked directories silently; reject them
		if d.Type()&os.ModeSymlink != 0 {
			return fmt.Errorf("symlinks not allowed in skill directory: %s", relPath)
		}

		if d.IsDir() {
			return nil
		}

		info, err := os.Lstat(path)
		if err != nil {
			return fmt.Errorf("checking file type for %s: %w", relPath, err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("non-regular file not allowed in skill directory: %s", relPath)
		}

		content, err := os.ReadFile(path) //#nosec G304 -- path from WalkDir, symlink-checked
		if err != nil {
			return fmt.Errorf("reading %s: %w", relPath, err)
		}

		files = append(files, FileEntry{Path: relPath, Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking skill directory: %w", err)
	}
	return files, nil
}
