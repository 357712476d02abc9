// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skilldir

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Channel directory names under the skills root.
const (
	CuratedDir      = ".curated"
	ExperimentalDir = ".experimental"
)

// channelDirs is the scan order for discovery. Fixed so output ordering
// never depends on readdir order.
var channelDirs = []string{CuratedDir, ExperimentalDir}

// Record describes one discovered skill directory.
type Record struct {
	// AbsPath is the absolute path of the skill directory.
	AbsPath string
	// RelPath is the slash-separated path relative to the repository root,
	// e.g. "skills/.curated/my-skill".
	RelPath string
}

// Discover scans the immediate subdirectories of each channel folder under
// skillsDir (itself relative to repoRoot) and returns the directories that
// contain a SKILL.md descriptor, sorted by relative path.
//
// A missing skills root or channel folder yields an empty result, not an
// error; discovery is a pure read of filesystem state.
func Discover(repoRoot, skillsDir string) ([]Record, error) {
	rootAbs, err := filepath.Abs(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving repository root: %w", err)
	}

	var records []Record
	for _, channelDir := range channelDirs {
		channelAbs := filepath.Join(rootAbs, filepath.FromSlash(skillsDir), channelDir)

		dirEntries, err := os.ReadDir(channelAbs)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading channel folder %s: %w", channelAbs, err)
		}

		for _, dirEntry := range dirEntries {
			if !dirEntry.IsDir() {
				continue
			}
			skillAbs := filepath.Join(channelAbs, dirEntry.Name())
			info, err := os.Stat(filepath.Join(skillAbs, DescriptorFile))
			if err != nil || info.IsDir() {
				continue
			}
			records = append(records, Record{
				AbsPath: skillAbs,
				RelPath: path.Join(skillsDir, channelDir, dirEntry.Name()),
			})
		}
	}

	slices.SortFunc(records, func(a, b Record) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})

	return records, nil
}

// IsExperimental reports whether a slash-separated relative skill path is
// rooted in the experimental channel folder.
func IsExperimental(relPath string) bool {
	for _, segment := range strings.Split(relPath, "/") {
		if segment == ExperimentalDir {
			return true
		}
	}
	return false
}
