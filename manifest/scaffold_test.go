// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffold_ExperimentalSkill(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSkillDir(t, root, "skills/.experimental/x", "---\nname: Experimental X\ndescription: Tries things.\n---\n")

	doc := &Document{SchemaVersion: 1}

	updated, entry, err := Scaffold(doc, root, "skills/.experimental/x")
	require.NoError(t, err)

	assert.Equal(t, "x", entry.ID)
	assert.Equal(t, "x", entry.Slug)
	assert.Equal(t, "1.0.0", entry.Version)
	assert.Equal(t, "beta", entry.Channel)
	assert.Equal(t, "skills/.experimental/x", entry.Path)
	assert.Equal(t, "Experimental X", entry.SkillName)
	assert.Equal(t, "Tries things.", entry.Description)

	require.Len(t, updated.Skills, 1)
	assert.Empty(t, doc.Skills, "input document must not be mutated")

	// The updated document passes full validation.
	_, err = ResolveAll(updated, root)
	require.NoError(t, err)
}

func TestScaffold_CuratedDefaultsToStable(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSkillDir(t, root, "skills/.curated/calm", "---\n---\n")

	_, entry, err := Scaffold(&Document{SchemaVersion: 1}, root, "skills/.curated/calm")
	require.NoError(t, err)
	assert.Equal(t, "stable", entry.Channel)
	assert.Equal(t, "Calm", entry.Title)
	assert.Equal(t, "calm", entry.SkillName, "skillName falls back to slug without descriptor name")
}

func TestScaffold_InsertKeepsSortOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSkillDir(t, root, "skills/.curated/aa", "---\n---\n")
	writeSkillDir(t, root, "skills/.curated/mm", "---\n---\n")
	writeSkillDir(t, root, "skills/.curated/zz", "---\n---\n")

	doc := &Document{
		SchemaVersion: 1,
		Skills: []RawEntry{
			minimalEntry("aa", "aa", "skills/.curated/aa", "1.0.0"),
			minimalEntry("zz", "zz", "skills/.curated/zz", "1.0.0"),
		},
	}

	updated, _, err := Scaffold(doc, root, "skills/.curated/mm")
	require.NoError(t, err)
	require.Len(t, updated.Skills, 3)
	assert.Equal(t, "aa", updated.Skills[0].ID)
	assert.Equal(t, "mm", updated.Skills[1].ID)
	assert.Equal(t, "zz", updated.Skills[2].ID)
}

func TestScaffold_DuplicatePreconditions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSkillDir(t, root, "skills/.curated/a", "---\n---\n")
	writeSkillDir(t, root, "skills/.curated/b", "---\n---\n")

	doc := &Document{
		SchemaVersion: 1,
		Skills:        []RawEntry{minimalEntry("a", "a", "skills/.curated/a", "1.0.0")},
	}

	t.Run("duplicate path", func(t *testing.T) {
		t.Parallel()
		_, _, err := Scaffold(doc, root, "skills/.curated/a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already covers path")
	})

	t.Run("duplicate id from other path", func(t *testing.T) {
		t.Parallel()
		existing := &Document{
			SchemaVersion: 1,
			Skills:        []RawEntry{minimalEntry("b", "other", "skills/.curated/a", "1.0.0")},
		}
		_, _, err := Scaffold(existing, root, "skills/.curated/b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `already uses id "b"`)
	})

	t.Run("failure does not mutate", func(t *testing.T) {
		t.Parallel()
		before := len(doc.Skills)
		_, _, err := Scaffold(doc, root, "skills/.curated/a")
		require.Error(t, err)
		assert.Len(t, doc.Skills, before)
	})
}

func TestScaffold_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, _, err := Scaffold(&Document{SchemaVersion: 1}, t.TempDir(), "skills/.curated/ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill directory not found")
}

func TestScaffold_InvalidDirectoryName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSkillDir(t, root, "skills/.curated/Bad_Name", "---\n---\n")

	_, _, err := Scaffold(&Document{SchemaVersion: 1}, root, "skills/.curated/Bad_Name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid slug")
}
