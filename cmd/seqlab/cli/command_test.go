// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecute_DispatchesSubcommand(t *testing.T) {
	ran := false
	root := &Command{
		Name: "seqlab",
		Subcommands: []*Command{
			{
				Name: "launch",
				Run: func(args []string) error {
					ran = true
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"launch"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !ran {
		t.Error("subcommand Run was not called")
	}
}

func TestExecute_PassesRemainingArgs(t *testing.T) {
	var got []string
	root := &Command{
		Name: "seqlab",
		Subcommands: []*Command{
			{
				Name: "launch",
				Run: func(args []string) error {
					got = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"launch", "TEST_5"}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "TEST_5" {
		t.Errorf("expected [TEST_5], got %v", got)
	}
}

func TestExecute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "seqlab",
		Subcommands: []*Command{
			{Name: "launch", Run: func([]string) error { return nil }},
			{Name: "preset", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"lanch"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "launch"`) {
		t.Errorf("expected suggestion for lanch, got %q", err.Error())
	}
}

func TestExecute_ParsesFlags(t *testing.T) {
	var preset string
	command := &Command{
		Name: "launch",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("launch", pflag.ContinueOnError)
			flagSet.StringVar(&preset, "preset", "", "preset name")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	if err := command.Execute([]string{"--preset=TEST_4"}); err != nil {
		t.Fatal(err)
	}
	if preset != "TEST_4" {
		t.Errorf("expected preset=TEST_4, got %q", preset)
	}
}

func TestExecute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "launch",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("launch", pflag.ContinueOnError)
			flagSet.String("dry-run", "", "")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--dry-rn"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--dry-run") {
		t.Errorf("expected flag suggestion, got %q", err.Error())
	}
}

func TestExecute_HelpIsNotAnError(t *testing.T) {
	root := &Command{
		Name:        "seqlab",
		Subcommands: []*Command{{Name: "launch", Run: func([]string) error { return nil }}},
	}

	for _, helpArg := range []string{"--help", "-h", "help"} {
		if err := root.Execute([]string{helpArg}); err != nil {
			t.Errorf("%s: expected nil, got %v", helpArg, err)
		}
	}
}

func TestExecute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "seqlab",
		Subcommands: []*Command{{Name: "launch", Run: func([]string) error { return nil }}},
	}

	if err := root.Execute(nil); err == nil {
		t.Fatal("expected error when no subcommand given")
	}
}

func TestPrintHelp_ListsSubcommands(t *testing.T) {
	root := &Command{
		Name: "seqlab",
		Subcommands: []*Command{
			{Name: "launch", Summary: "run an experiment"},
			{Name: "preset", Summary: "inspect the preset catalog"},
		},
	}

	var out strings.Builder
	root.PrintHelp(&out)

	help := out.String()
	for _, want := range []string{"launch", "run an experiment", "preset", "inspect the preset catalog"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}
