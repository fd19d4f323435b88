// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_Types(t *testing.T) {
	type params struct {
		Config  string   `flag:"config" desc:"config file"`
		DryRun  bool     `flag:"dry-run" desc:"print without running"`
		Retries int      `flag:"retries" default:"2"`
		Rate    float64  `flag:"rate" default:"0.5"`
		Tags    []string `flag:"tags"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--config=seqlab.yaml",
		"--dry-run",
		"--retries=5",
		"--rate=0.25",
		"--tags=a,b",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Config != "seqlab.yaml" {
		t.Errorf("Config: got %q", p.Config)
	}
	if !p.DryRun {
		t.Error("DryRun: expected true")
	}
	if p.Retries != 5 {
		t.Errorf("Retries: got %d", p.Retries)
	}
	if p.Rate != 0.25 {
		t.Errorf("Rate: got %v", p.Rate)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "a" || p.Tags[1] != "b" {
		t.Errorf("Tags: got %v", p.Tags)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Stderr string `flag:"stderr" default:"forward"`
		Count  int    `flag:"count" default:"3"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatal(err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatal(err)
	}

	if p.Stderr != "forward" {
		t.Errorf("expected default forward, got %q", p.Stderr)
	}
	if p.Count != 3 {
		t.Errorf("expected default 3, got %d", p.Count)
	}
}

func TestBindFlags_Shorthand(t *testing.T) {
	type params struct {
		Config string `flag:"config,c"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatal(err)
	}
	if err := flagSet.Parse([]string{"-c", "x.yaml"}); err != nil {
		t.Fatal(err)
	}
	if p.Config != "x.yaml" {
		t.Errorf("shorthand binding failed: %q", p.Config)
	}
}

func TestBindFlags_EmbeddedJSONOutput(t *testing.T) {
	type params struct {
		JSONOutput
		Name string `flag:"name"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatal(err)
	}
	if err := flagSet.Parse([]string{"--json", "--name=TEST_1"}); err != nil {
		t.Fatal(err)
	}
	if !p.OutputJSON {
		t.Error("embedded --json flag not bound")
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(struct{}{}, flagSet); err == nil {
		t.Fatal("expected error for non-pointer params")
	}
}

func TestBindFlags_RejectsUnsupportedType(t *testing.T) {
	type params struct {
		Bad map[string]string `flag:"bad"`
	}
	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err == nil {
		t.Fatal("expected error for unsupported field type")
	}
}
