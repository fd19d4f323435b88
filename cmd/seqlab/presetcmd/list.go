// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package presetcmd implements the "seqlab preset" command group:
// listing, inspecting, and validating the experiment preset catalog.
package presetcmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/seqlab-foundation/seqlab/cmd/seqlab/cli"
	"github.com/seqlab-foundation/seqlab/lib/config"
	"github.com/seqlab-foundation/seqlab/lib/preset"
)

// Command returns the "preset" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "preset",
		Summary: "Inspect the experiment preset catalog",
		Description: `Inspect the experiment preset catalog.

The catalog holds the compiled-in experiment series plus any user
presets from the configured catalog file. "seqlab launch <name>" runs
one; these commands let you see what a name expands to before you do.`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			validateCommand(),
		},
	}
}

// loadCatalog builds the effective catalog: built-ins merged with the
// user catalog file from configuration, if one is configured. The
// loaded config is returned too, so callers can report settings that
// travel with a launch (like the execution mode).
func loadCatalog(configPath string) (*preset.Catalog, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	catalog := preset.Builtin()
	if cfg.Launch.PresetsFile != "" {
		userPresets, err := preset.LoadFile(cfg.Launch.PresetsFile)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range userPresets {
			catalog.Add(p)
		}
	}
	return catalog, cfg, nil
}

// presetJSON is the JSON projection of a catalog entry.
type presetJSON struct {
	Name    string   `json:"name"`
	Summary string   `json:"summary,omitempty"`
	Source  string   `json:"source"`
	Args    []string `json:"args"`
}

func toJSON(p preset.Preset) presetJSON {
	return presetJSON{
		Name:    p.Name,
		Summary: p.Summary,
		Source:  string(p.Source),
		Args:    p.Argv(),
	}
}

type listParams struct {
	cli.JSONOutput
	Config string `flag:"config" desc:"path to seqlab.yaml (overrides SEQLAB_CONFIG)"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List available presets",
		Usage:   "seqlab preset list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("preset list", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected arguments: %v", args)
			}

			catalog, _, err := loadCatalog(params.Config)
			if err != nil {
				return err
			}

			entries := make([]presetJSON, 0, catalog.Len())
			for _, p := range catalog.All() {
				entries = append(entries, toJSON(p))
			}
			if done, err := params.EmitJSON(entries); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSOURCE\tTOKENS\tSUMMARY")
			for _, p := range catalog.All() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.Name, p.Source, len(p.Args), p.Summary)
			}
			return tw.Flush()
		},
	}
}

