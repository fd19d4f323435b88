// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package presetcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/seqlab-foundation/seqlab/cmd/seqlab/cli"
	"github.com/seqlab-foundation/seqlab/lib/config"
	"github.com/seqlab-foundation/seqlab/lib/preset"
)

type validateParams struct {
	Config string `flag:"config" desc:"path to seqlab.yaml (overrides SEQLAB_CONFIG)"`
}

func validateCommand() *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Validate a preset catalog file",
		Description: `Validate a preset catalog file without launching anything.

With a file argument, that file is checked. Without one, the catalog
file from configuration (launch.presets_file) is checked; if none is
configured, only the built-ins are checked, which always pass.`,
		Usage: "seqlab preset validate [flags] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("preset validate", &params)
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most 1 argument, got %d", len(args))
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Load(params.Config)
				if err != nil {
					return err
				}
				path = cfg.Launch.PresetsFile
			}

			if path == "" {
				if err := preset.Builtin().Validate(); err != nil {
					return fmt.Errorf("built-in catalog: %w", err)
				}
				fmt.Println("no catalog file configured; built-in presets are valid")
				return nil
			}

			userPresets, err := preset.LoadFile(path)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(userPresets))
			for _, p := range userPresets {
				names = append(names, p.Name)
			}
			fmt.Printf("%s: %d preset(s) valid", path, len(userPresets))
			if len(names) > 0 {
				fmt.Printf(" (%s)", strings.Join(names, ", "))
			}
			fmt.Println()
			return nil
		},
	}
}
