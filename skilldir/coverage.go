// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skilldir

import (
	"fmt"
	"strings"
)

// MissingEntriesError reports discovered skill directories that have no
// manifest entry.
type MissingEntriesError struct {
	// Paths holds the relative paths of the uncovered skill directories,
	// in discovery order.
	Paths []string
}

// Error implements error.
func (e *MissingEntriesError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d skill directories are missing from the manifest:\n", len(e.Paths))
	for _, p := range e.Paths {
		fmt.Fprintf(&b, "  %s (add with: skillsmith add %s)\n", p, p)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// CheckCoverage verifies that every discovered skill directory appears among
// coveredRelPaths (the relative skill paths of the validated manifest
// entries). The comparison is case-insensitive. A non-empty difference is
// returned as a *MissingEntriesError naming every missing path.
func CheckCoverage(coveredRelPaths []string, discovered []Record) error {
	covered := make(map[string]struct{}, len(coveredRelPaths))
	for _, p := range coveredRelPaths {
		covered[strings.ToLower(p)] = struct{}{}
	}

	var missing []string
	for _, rec := range discovered {
		if _, ok := covered[strings.ToLower(rec.RelPath)]; !ok {
			missing = append(missing, rec.RelPath)
		}
	}

	if len(missing) > 0 {
		return &MissingEntriesError{Paths: missing}
	}
	return nil
}
