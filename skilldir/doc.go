// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package skilldir provides filesystem-level knowledge about skill directories:
the on-disk channel layout, discovery of directories that look like skills,
coverage comparison against a set of known paths, and a total reader for the
key-value header block of a skill's SKILL.md descriptor.

The expected layout is:

	skills/
	  .curated/        stable-channel skills
	    my-skill/
	      SKILL.md
	  .experimental/   beta-channel skills
	    other-skill/
	      SKILL.md

A directory counts as a skill if and only if it contains a SKILL.md file.
*/
package skilldir
