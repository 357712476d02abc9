// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package buildcmd implements the full build mode of the pipeline.
package buildcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stacklok/skillsmith/catalog"
	"github.com/stacklok/skillsmith/cmd/skillsmith/command"
	"github.com/stacklok/skillsmith/logger"
	"github.com/stacklok/skillsmith/manifest"
)

// NewCmd returns the build subcommand.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build --repo owner/name --tag tag [--output output_dir]",
		Short: "Package every skill and write the channel catalogs",
		Long:  "Validates the manifest, packages every skill into a reproducible zip, and writes the channel catalog documents plus the checksum ledger. The output directory is cleared first.",
		Args:  cobra.NoArgs,
	}

	var opts options
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if opts.Repo == "" {
			return fmt.Errorf("%w: --repo is required when building", command.ErrInvalidArgs)
		}
		if opts.Tag == "" {
			return fmt.Errorf("%w: --tag is required when building", command.ErrInvalidArgs)
		}

		res, err := opts.Common.Resolve()
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

		outputDir := opts.Output
		if outputDir == "" {
			outputDir = res.Config.OutputDir
		}
		outputAbs, err := command.InsideRoot(res.Root, outputDir)
		if err != nil {
			return fmt.Errorf("%w: output %w", command.ErrInvalidArgs, err)
		}
		catalogAbs, err := command.InsideRoot(res.Root, res.Config.CatalogDir)
		if err != nil {
			return fmt.Errorf("%w: catalog %w", command.ErrInvalidArgs, err)
		}

		builder := &catalog.Builder{
			OutputRoot: outputAbs,
			CatalogDir: catalogAbs,
			Host:       res.Config.Host,
		}

		result, err := builder.Build(entries, opts.Repo, opts.Tag)
		if err != nil {
			return err
		}

		logger.Infow("build complete",
			"packaged", result.Packaged,
			"stable", result.PerChannel[manifest.ChannelStable],
			"beta", result.PerChannel[manifest.ChannelBeta],
		)
		fmt.Fprintf(cmd.OutOrStdout(), "packaged %d skills (stable %d, beta %d)\n",
			result.Packaged,
			result.PerChannel[manifest.ChannelStable],
			result.PerChannel[manifest.ChannelBeta],
		)
		return nil
	}

	return cmd
}

type options struct {
	command.Common

	Repo   string
	Tag    string
	Output string
}

func (o *options) AddFlags(flags *pflag.FlagSet) {
	o.Common.AddFlags(flags)
	flags.StringVar(
		&o.Repo,
		"repo",
		"",
		"Target repository slug (owner/name) used in package URLs.",
	)
	flags.StringVar(
		&o.Tag,
		"tag",
		"",
		"Release tag used in package URLs.",
	)
	flags.StringVar(
		&o.Output,
		"output",
		"",
		"Output directory for build artifacts. Cleared before writing. Defaults to the configured location.",
	)
}
