// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package preset

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Source identifies where a preset was defined.
type Source string

const (
	// SourceBuiltin marks presets compiled into the binary.
	SourceBuiltin Source = "builtin"

	// SourceFile marks presets loaded from a user catalog file.
	SourceFile Source = "file"
)

// Preset is a named, ordered bundle of delegate command-line tokens.
// The token list is opaque to the launcher: tokens are validated for
// shape (they must look like long-form flags) but never interpreted.
type Preset struct {
	// Name identifies the preset in the catalog and on the command
	// line (e.g. "TEST_5").
	Name string

	// Summary is a one-line description shown in listings.
	Summary string

	// Args is the ordered token list forwarded to the delegate.
	// Treated as immutable after catalog construction; use Argv for a
	// caller-owned copy.
	Args []string

	// Source records whether the preset is built-in or user-defined.
	Source Source
}

// Argv returns a copy of the token list. Callers may append to or
// reorder the copy without affecting the catalog.
func (p Preset) Argv() []string {
	argv := make([]string, len(p.Args))
	copy(argv, p.Args)
	return argv
}

// namePattern constrains preset names: a letter followed by letters,
// digits, underscores, or hyphens. Keeps names usable as CLI
// arguments, YAML keys, and log file stems.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// tokenPattern constrains delegate tokens to long-form flags with an
// optional value: "--load-babi", "--lr=0.001", "--units=300". The
// launcher forwards tokens verbatim, so the only invariants worth
// enforcing are the ones that catch catalog typos.
var tokenPattern = regexp.MustCompile(`^--[a-z][a-z0-9-]*(=[^\s]+)?$`)

// Validate checks the preset's name and token list. It returns all
// problems joined, not just the first, so a catalog author can fix a
// file in one pass.
func (p Preset) Validate() error {
	var errs []error

	if !namePattern.MatchString(p.Name) {
		errs = append(errs, fmt.Errorf("invalid preset name %q", p.Name))
	}
	if len(p.Args) == 0 {
		errs = append(errs, fmt.Errorf("preset %q has no arguments", p.Name))
	}

	seen := make(map[string]bool, len(p.Args))
	for i, token := range p.Args {
		if !tokenPattern.MatchString(token) {
			errs = append(errs, fmt.Errorf("preset %q: token %d (%q) is not a long-form flag", p.Name, i, token))
			continue
		}
		flag, _, _ := strings.Cut(token, "=")
		if seen[flag] {
			errs = append(errs, fmt.Errorf("preset %q: duplicate flag %s", p.Name, flag))
		}
		seen[flag] = true
	}

	return errors.Join(errs...)
}
