// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package guard implements the launch gate: a sentinel file whose
// existence (not content) permits execution. The gate exists so that a
// half-configured experiment directory, or a machine that should not
// be running training jobs, fails fast before any side effect — no
// environment mutation, no child process, no state write.
package guard

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSentinel is the sentinel filename checked in the experiment
// root when the configuration does not name one.
const DefaultSentinel = "launch"

// MissingSentinelError reports that the gate file is absent. Callers
// match it with errors.As to distinguish "not armed" from filesystem
// errors, and translate it into the launcher's distinct exit code.
type MissingSentinelError struct {
	// Path is the full path that was checked.
	Path string
}

func (e *MissingSentinelError) Error() string {
	return fmt.Sprintf("no launch file at %s: create an empty %q file in the experiment root to permit launching", e.Path, filepath.Base(e.Path))
}

// Check verifies that the sentinel file exists in root. The sentinel
// must be a regular file; its content is never read. A zero-byte file
// is sufficient.
//
// Returns *MissingSentinelError when the file is absent, a wrapped
// filesystem error for anything else that goes wrong, and nil when the
// gate is open.
func Check(root, sentinel string) error {
	path := filepath.Join(root, sentinel)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &MissingSentinelError{Path: path}
	}
	if err != nil {
		return fmt.Errorf("checking launch sentinel %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("launch sentinel %s is not a regular file", path)
	}
	return nil
}
