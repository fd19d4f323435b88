// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Seqlab is the CLI for launching sequence-to-sequence chatbot
// experiments. It gates every launch on a sentinel file, resolves a
// named preset to the delegate's argument list, runs the delegate with
// CHATBOT_MODE set, and mirrors the delegate's exit code.
package main

import (
	"os"

	"github.com/seqlab-foundation/seqlab/cmd/seqlab/commands"
	"github.com/seqlab-foundation/seqlab/lib/process"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own diagnostics (like launch when
		// the sentinel is missing, or when mirroring the delegate's
		// exit code) return an ExitError with the desired status.
		// Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		process.Fatal(err)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
