// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skilldir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCoverage_AllCovered(t *testing.T) {
	t.Parallel()

	discovered := []Record{
		{RelPath: "skills/.curated/a"},
		{RelPath: "skills/.experimental/x"},
	}

	err := CheckCoverage([]string{"skills/.curated/a", "skills/.experimental/x"}, discovered)
	assert.NoError(t, err)
}

func TestCheckCoverage_CaseInsensitive(t *testing.T) {
	t.Parallel()

	discovered := []Record{{RelPath: "skills/.curated/Alpha"}}

	err := CheckCoverage([]string{"skills/.curated/alpha"}, discovered)
	assert.NoError(t, err)
}

func TestCheckCoverage_Missing(t *testing.T) {
	t.Parallel()

	discovered := []Record{
		{RelPath: "skills/.curated/a"},
		{RelPath: "skills/.curated/b"},
		{RelPath: "skills/.experimental/x"},
	}

	err := CheckCoverage([]string{"skills/.curated/a"}, discovered)
	require.Error(t, err)

	var missingErr *MissingEntriesError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"skills/.curated/b", "skills/.experimental/x"}, missingErr.Paths)
	assert.Contains(t, err.Error(), "skillsmith add skills/.curated/b")
}

func TestCheckCoverage_EmptyDiscovery(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckCoverage(nil, nil))
}
