// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package launch implements "seqlab launch": the guarded, single-shot
// delegation to the chatbot experiment program.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/seqlab-foundation/seqlab/cmd/seqlab/cli"
	"github.com/seqlab-foundation/seqlab/lib/config"
	"github.com/seqlab-foundation/seqlab/lib/delegate"
	"github.com/seqlab-foundation/seqlab/lib/guard"
	"github.com/seqlab-foundation/seqlab/lib/preset"
	"github.com/seqlab-foundation/seqlab/lib/record"
	"github.com/seqlab-foundation/seqlab/lib/scripthash"
)

// missingSentinelExitCode is the launcher's exit status when the gate
// file is absent. Distinct from 1 (launcher error) so supervisors and
// scripts can tell "not armed" apart from "broken". A delegate that
// itself exits 3 is indistinguishable by code alone; the stderr
// message disambiguates.
const missingSentinelExitCode = 3

type launchParams struct {
	Config string `flag:"config" desc:"path to seqlab.yaml (overrides SEQLAB_CONFIG)"`
	Root   string `flag:"root"   desc:"experiment root; rebases the state directory too"`
	Stderr string `flag:"stderr" desc:"delegate stderr disposition: forward, discard, or capture"`
	DryRun bool   `flag:"dry-run" desc:"print the resolved invocation without running it"`
}

// Command returns the "launch" subcommand.
func Command() *cli.Command {
	var params launchParams

	return &cli.Command{
		Name:    "launch",
		Summary: "Run a chatbot experiment preset",
		Description: `Run the chatbot delegate with a named preset's argument list.

The launch is gated: a sentinel file (default "launch") must exist in
the experiment root, otherwise nothing happens and seqlab exits with
status 3. When the gate is open, the delegate runs from the bot/
directory with CHATBOT_MODE set in its environment, and its exit code
becomes seqlab's exit code. A record of the invocation is written to
the state directory after the delegate exits.`,
		Usage: "seqlab launch [flags] [preset]",
		Examples: []cli.Example{
			{
				Description: "Run the TEST_5 experiment",
				Command:     "seqlab launch TEST_5",
			},
			{
				Description: "Show what TEST_4 would run, without running it",
				Command:     "seqlab launch --dry-run TEST_4",
			},
			{
				Description: "Run with delegate stderr captured to a compressed log",
				Command:     "seqlab launch --stderr=capture TEST_5",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("launch", &params)
		},
		Run: func(args []string) error {
			return run(&params, args)
		},
	}
}

func run(params *launchParams, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most 1 positional argument, got %d", len(args))
	}

	cfg, err := config.Load(params.Config)
	if err != nil {
		return err
	}
	if params.Root != "" {
		cfg.Paths.Root = params.Root
		cfg.Paths.State = filepath.Join(params.Root, ".seqlab")
	}
	if params.Stderr != "" {
		cfg.Delegate.Stderr = params.Stderr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The gate comes first. A missing sentinel must abort before any
	// side effect: no state directory, no record, no child process.
	if err := guard.Check(cfg.Paths.Root, cfg.Guard.Sentinel); err != nil {
		var missing *guard.MissingSentinelError
		if errors.As(err, &missing) {
			fmt.Fprintln(os.Stderr, missing.Error())
			return &cli.ExitError{Code: missingSentinelExitCode}
		}
		return err
	}

	catalog := preset.Builtin()
	logger := cli.NewCommandLogger().With("command", "launch")
	if cfg.Launch.PresetsFile != "" {
		userPresets, err := preset.LoadFile(cfg.Launch.PresetsFile)
		if err != nil {
			return err
		}
		for _, p := range userPresets {
			if catalog.Add(p) {
				logger.Info("user preset overrides built-in", "preset", p.Name)
			}
		}
	}

	name := cfg.Launch.DefaultPreset
	if len(args) == 1 {
		name = args[0]
	}
	if name == "" {
		return fmt.Errorf("preset required: pass a name or set launch.default_preset (available: %v)", catalog.Names())
	}

	selected, err := catalog.Resolve(name)
	if err != nil {
		return err
	}

	stderrMode, err := delegate.ParseStderrMode(cfg.Delegate.Stderr)
	if err != nil {
		return err
	}

	invocation := delegate.Invocation{
		Interpreter: cfg.Delegate.Interpreter,
		Script:      cfg.Delegate.Script,
		Dir:         cfg.DelegateDir(),
		Args:        selected.Argv(),
		Mode:        cfg.Delegate.Mode,
		Stderr:      stderrMode,
	}
	if stderrMode == delegate.StderrCapture {
		invocation.StderrLogPath = filepath.Join(cfg.Paths.State, selected.Name+"-stderr.log.zst")
	}

	if params.DryRun {
		fmt.Printf("%s=%s %s\n", delegate.ModeEnvVar, invocation.Mode, invocation.String())
		fmt.Printf("  (in %s)\n", invocation.Dir)
		return nil
	}

	if err := cfg.EnsureStateDir(); err != nil {
		return err
	}

	// The digest ties the record to the script bytes that ran. A hash
	// failure is diagnostic, not a gate: the launch proceeds and the
	// record carries an empty digest.
	digest := ""
	if hashed, err := scripthash.HashScript(cfg.ScriptPath()); err != nil {
		logger.Warn("cannot hash delegate script", "path", cfg.ScriptPath(), "error", err)
	} else {
		digest = hashed.String()
	}

	started := time.Now()
	result, err := delegate.New(logger).Run(context.Background(), invocation)
	if err != nil {
		return err
	}
	finished := time.Now()

	launchRecord := record.Launch{
		Preset:       selected.Name,
		Argv:         selected.Argv(),
		Mode:         invocation.Mode,
		ScriptDigest: digest,
		StartedAt:    started,
		FinishedAt:   finished,
		ExitCode:     result.ExitCode,
		StderrLog:    result.StderrLog,
	}
	// The delegate's result is the result. A record write failure is
	// reported but must not change the exit code.
	if err := record.NewStore(cfg.Paths.State).Write(launchRecord); err != nil {
		logger.Error("writing launch record", "error", err)
	}

	logger.Info("delegate exited",
		"preset", selected.Name,
		"exit_code", result.ExitCode,
		"duration", finished.Sub(started).Round(time.Millisecond),
	)

	if result.ExitCode != 0 {
		return &cli.ExitError{Code: result.ExitCode}
	}
	return nil
}
