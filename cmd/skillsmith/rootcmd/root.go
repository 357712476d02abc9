// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package rootcmd assembles the skillsmith command tree.
package rootcmd

import (
	"github.com/spf13/cobra"

	"github.com/stacklok/skillsmith/cmd/skillsmith/addcmd"
	"github.com/stacklok/skillsmith/cmd/skillsmith/buildcmd"
	"github.com/stacklok/skillsmith/cmd/skillsmith/checkcmd"
	"github.com/stacklok/skillsmith/cmd/skillsmith/validatecmd"
)

// NewCmd returns the root skillsmith command with all subcommands attached.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skillsmith",
		Short: "Build reproducible release artifacts from a skill manifest",
		Long: "skillsmith turns a declarative skill manifest into reproducible release artifacts: " +
			"per-skill zip archives, a checksum ledger, and channel-partitioned catalog documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		validatecmd.NewCmd(),
		checkcmd.NewCmd(),
		addcmd.NewCmd(),
		buildcmd.NewCmd(),
	)

	return cmd
}
