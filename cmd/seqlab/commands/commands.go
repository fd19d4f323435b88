// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete seqlab CLI command tree.
package commands

import (
	"fmt"

	"github.com/seqlab-foundation/seqlab/cmd/seqlab/cli"
	"github.com/seqlab-foundation/seqlab/cmd/seqlab/history"
	launchcmd "github.com/seqlab-foundation/seqlab/cmd/seqlab/launch"
	"github.com/seqlab-foundation/seqlab/cmd/seqlab/presetcmd"
	"github.com/seqlab-foundation/seqlab/lib/version"
)

// Root builds and returns the complete seqlab CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "seqlab",
		Description: `Seqlab: guarded launcher for sequence-to-sequence chatbot experiments.

Runs the chatbot delegate (bot/game.py) with a named preset's argument
list, gated on a sentinel file in the experiment root, and records what
ran. The delegate's exit code becomes seqlab's exit code.`,
		Subcommands: []*cli.Command{
			launchcmd.Command(),
			presetcmd.Command(),
			history.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("seqlab %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Run the TEST_5 experiment (requires the launch sentinel)",
				Command:     "seqlab launch TEST_5",
			},
			{
				Description: "See every preset and what it expands to",
				Command:     "seqlab preset list",
			},
			{
				Description: "Show what the last launch actually executed",
				Command:     "seqlab last",
			},
		},
	}
}
