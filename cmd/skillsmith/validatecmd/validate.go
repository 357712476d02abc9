// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package validatecmd implements the validate-only mode of the pipeline.
package validatecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillsmith/cmd/skillsmith/command"
	"github.com/stacklok/skillsmith/manifest"
)

// NewCmd returns the validate subcommand.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the skill manifest",
		Long:  "Loads the manifest, schema-checks it, and normalizes every entry against the skill directories on disk. No artifacts are written.",
		Args:  cobra.NoArgs,
	}

	var opts command.Common
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		res, err := opts.Resolve()
		if err != nil {
			return err
		}

		doc, err := manifest.Load(res.ManifestPath)
		if err != nil {
			return err
		}

		entries, err := manifest.ResolveAll(doc, res.Root)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "manifest valid: %d entries\n", len(entries))
		return nil
	}

	return cmd
}
