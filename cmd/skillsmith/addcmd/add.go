// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package addcmd implements the manifest-entry-scaffold mode.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillsmith/cmd/skillsmith/command"
	"github.com/stacklok/skillsmith/manifest"
)

// NewCmd returns the add subcommand.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add skill_directory",
		Short: "Scaffold a manifest entry for a skill directory",
		Long:  "Derives a new manifest entry from the given skill directory, validates the updated manifest in full, and persists it. The manifest is left untouched if validation fails.",
		Args:  cobra.ExactArgs(1),
	}

	var opts command.Common
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if dir == "" {
			return fmt.Errorf("%w: skill directory must not be empty", command.ErrInvalidArgs)
		}

		res, err := opts.Resolve()
		if err != nil {
			return err
		}

		doc, err := manifest.Load(res.ManifestPath)
		if err != nil {
			return err
		}

		updated, entry, err := manifest.Scaffold(doc, res.Root, dir)
		if err != nil {
			return err
		}

		if err := updated.Save(res.ManifestPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "added %s (channel %s) at %s\n", entry.ID, entry.Channel, entry.Path)
		return nil
	}

	return cmd
}
