// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package presetcmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/seqlab-foundation/seqlab/cmd/seqlab/cli"
)

type showParams struct {
	cli.JSONOutput
	Config string `flag:"config" desc:"path to seqlab.yaml (overrides SEQLAB_CONFIG)"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show a preset's full argument list",
		Usage:   "seqlab preset show [flags] <name>",
		Examples: []cli.Example{
			{
				Description: "Show what TEST_5 passes to the delegate",
				Command:     "seqlab preset show TEST_5",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("preset show", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly 1 argument (the preset name), got %d", len(args))
			}

			catalog, cfg, err := loadCatalog(params.Config)
			if err != nil {
				return err
			}
			selected, err := catalog.Resolve(args[0])
			if err != nil {
				return err
			}

			entry := struct {
				presetJSON
				Mode string `json:"mode"`
			}{toJSON(selected), cfg.Delegate.Mode}
			if done, err := params.EmitJSON(entry); done {
				return err
			}

			fmt.Printf("Name:    %s\n", selected.Name)
			fmt.Printf("Source:  %s\n", selected.Source)
			if selected.Summary != "" {
				fmt.Printf("Summary: %s\n", selected.Summary)
			}
			fmt.Printf("Mode:    %s\n", cfg.Delegate.Mode)
			fmt.Printf("Args:\n")
			for _, token := range selected.Args {
				fmt.Printf("  %s\n", token)
			}
			return nil
		},
	}
}
