// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package skilldir

import (
	"bufio"
	"bytes"
	"os"
	"strings"
)

// DescriptorFile is the file that marks a directory as a skill and carries
// its header metadata.
const DescriptorFile = "SKILL.md"

// headerDelimiter opens and closes the descriptor header block.
const headerDelimiter = "---"

// ParseHeader extracts key/value metadata from the leading delimited header
// block of descriptor content.
//
// The grammar is a delimiter line ("---"), followed by "key: value" lines,
// followed by a closing delimiter line. Surrounding single or double quotes
// on values are stripped. Malformed lines are skipped. ParseHeader is total:
// content without a complete header block yields an empty map, never an
// error.
func ParseHeader(content []byte) map[string]string {
	header := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inBlock := false
	sawOpen := false
	pending := make(map[string]string)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if !sawOpen {
			if line == "" {
				continue
			}
			if line != headerDelimiter {
				// Content does not begin with a header block.
				return header
			}
			sawOpen = true
			inBlock = true
			continue
		}

		if line == headerDelimiter {
			// Closing delimiter reached; commit the block.
			inBlock = false
			for k, v := range pending {
				header[k] = v
			}
			break
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		pending[key] = unquote(strings.TrimSpace(value))
	}

	if inBlock {
		// Unterminated block counts as no block at all.
		return map[string]string{}
	}

	return header
}

// ReadHeaderFile reads a descriptor file and parses its header block.
// Parsing itself never fails; only the file read can.
func ReadHeaderFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path) //#nosec G304 -- path constructed from a validated skill directory
	if err != nil {
		return nil, err
	}
	return ParseHeader(content), nil
}

// unquote strips one pair of surrounding single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
