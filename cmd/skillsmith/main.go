// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command skillsmith builds reproducible release artifacts from a skill
// manifest.
package main

import (
	"fmt"
	"os"

	"github.com/stacklok/skillsmith/cmd/skillsmith/rootcmd"
	"github.com/stacklok/skillsmith/logger"
)

func main() {
	logger.Initialize()

	if err := rootcmd.NewCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "skillsmith: %v\n", err)
		os.Exit(1)
	}
}
