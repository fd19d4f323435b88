// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package history implements "seqlab last": inspection of the most
// recent launch record.
package history

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/seqlab-foundation/seqlab/cmd/seqlab/cli"
	"github.com/seqlab-foundation/seqlab/lib/config"
	"github.com/seqlab-foundation/seqlab/lib/record"
)

type lastParams struct {
	cli.JSONOutput
	Config string `flag:"config" desc:"path to seqlab.yaml (overrides SEQLAB_CONFIG)"`
	Root   string `flag:"root"   desc:"experiment root; rebases the state directory too"`
}

// lastJSON is the JSON projection of a launch record.
type lastJSON struct {
	Preset       string    `json:"preset"`
	Argv         []string  `json:"argv"`
	Mode         string    `json:"mode"`
	ScriptDigest string    `json:"script_digest,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	ExitCode     int       `json:"exit_code"`
	StderrLog    string    `json:"stderr_log,omitempty"`
}

// Command returns the "last" subcommand.
func Command() *cli.Command {
	var params lastParams

	return &cli.Command{
		Name:    "last",
		Summary: "Show the most recent launch record",
		Description: `Show the most recent launch record from the state directory.

The record is written after every delegated run and answers "what did
the last launch actually execute": the preset, the exact argument list,
the delegate script digest, and how the run ended.`,
		Usage: "seqlab last [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("last", &params)
		},
		Run: func(args []string) error {
			return run(&params, args)
		},
	}
}

func run(params *lastParams, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	cfg, err := config.Load(params.Config)
	if err != nil {
		return err
	}
	if params.Root != "" {
		cfg.Paths.Root = params.Root
		cfg.Paths.State = filepath.Join(params.Root, ".seqlab")
	}

	store := record.NewStore(cfg.Paths.State)
	launch, found, err := store.Last()
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no launch record in %s: nothing has been launched yet", cfg.Paths.State)
	}

	if done, err := params.EmitJSON(lastJSON(launch)); done {
		return err
	}

	fmt.Printf("Preset:    %s\n", launch.Preset)
	fmt.Printf("Mode:      %s\n", launch.Mode)
	fmt.Printf("Started:   %s\n", launch.StartedAt.Format(time.RFC3339))
	fmt.Printf("Finished:  %s (%s)\n",
		launch.FinishedAt.Format(time.RFC3339),
		launch.FinishedAt.Sub(launch.StartedAt).Round(time.Millisecond))
	fmt.Printf("Exit code: %d\n", launch.ExitCode)
	if launch.ScriptDigest != "" {
		fmt.Printf("Script:    blake3:%s\n", launch.ScriptDigest)
	}
	if launch.StderrLog != "" {
		fmt.Printf("Stderr:    %s\n", launch.StderrLog)
	}
	fmt.Printf("Argv:\n")
	for _, token := range launch.Argv {
		fmt.Printf("  %s\n", token)
	}
	return nil
}
