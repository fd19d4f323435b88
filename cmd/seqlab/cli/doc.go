// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the seqlab binary: a small
// subcommand tree over pflag with structured help, typo suggestions
// for unknown commands and flags, struct-tag flag binding, optional
// --json output, and a slog logger that picks its handler by TTY.
package cli
