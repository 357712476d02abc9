// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package checkcmd implements the manifest-coverage-check mode.
package checkcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillsmith/cmd/skillsmith/command"
	"github.com/stacklok/skillsmith/manifest"
	"github.com/stacklok/skillsmith/skilldir"
)

// NewCmd returns the check subcommand.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every skill directory on disk has a manifest entry",
		Long:  "Validates the manifest, then diffs the discovered skill directories against the manifest entries. Skills on disk without an entry are a hard failure.",
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

		discovered, err := skilldir.Discover(res.Root, res.Config.SkillsDir)
		if err != nil {
			return err
		}

		covered := make([]string, 0, len(entries))
		for _, entry := range entries {
			covered = append(covered, entry.RelSkillPath)
		}

		if err := skilldir.CheckCoverage(covered, discovered); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "manifest covers all %d discovered skill directories\n", len(discovered))
		return nil
	}

	return cmd
}
