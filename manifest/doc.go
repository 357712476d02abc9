// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package manifest owns the skill manifest document: loading and schema
checking, normalization of raw entries into fully-resolved validated
entries, and scaffolding of new entries from skill directories.

The manifest is the source of truth for the release pipeline. A document is
loaded, transformed, and persisted as a value; no in-memory document is
reused across operations without re-loading.
*/
package manifest
