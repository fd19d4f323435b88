// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package record persists launch records: what was launched, with
// which argument list, and how it ended. The record is the launcher's
// only durable state. It exists so an operator can answer "what did
// the last run actually execute" without trusting shell history, and
// so two runs of the same preset can be verified as identical.
package record

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/seqlab-foundation/seqlab/lib/codec"
)

// lastFilename is the record file inside the state directory. A
// single slot: every launch overwrites the previous record.
const lastFilename = "last-launch.cbor"

// Launch is one delegated run.
type Launch struct {
	// Preset is the resolved preset name.
	Preset string `cbor:"preset"`

	// Argv is the exact argument list handed to the delegate, in
	// order, excluding the interpreter and script path.
	Argv []string `cbor:"argv"`

	// Mode is the execution mode the delegate received via its
	// environment.
	Mode string `cbor:"mode"`

	// ScriptDigest is the hex BLAKE3 digest of the delegate script at
	// launch time. Empty when the script could not be hashed (the
	// launch proceeds anyway; the digest is diagnostic, not a gate).
	ScriptDigest string `cbor:"script_digest,omitempty"`

	// StartedAt and FinishedAt bound the delegate's execution.
	StartedAt  time.Time `cbor:"started_at"`
	FinishedAt time.Time `cbor:"finished_at"`

	// ExitCode is the delegate's exit status, propagated verbatim.
	ExitCode int `cbor:"exit_code"`

	// StderrLog is the path of the captured stderr log, when the
	// stderr disposition was "capture".
	StderrLog string `cbor:"stderr_log,omitempty"`
}

// Store reads and writes launch records under a state directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory must exist
// before Write is called.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the record file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, lastFilename)
}

// Write serializes the launch record and moves it into place
// atomically (temp file + fsync + rename), so a reader never sees a
// partial record even if the launcher dies mid-write.
func (s *Store) Write(launch Launch) error {
	data, err := codec.Marshal(launch)
	if err != nil {
		return fmt.Errorf("marshaling launch record: %w", err)
	}

	recordPath := s.Path()
	temporaryPath := recordPath + ".tmp"

	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary record file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary record file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary record file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary record file: %w", err)
	}

	if err := os.Rename(temporaryPath, recordPath); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming record file into place: %w", err)
	}

	return nil
}

// Last reads the most recent launch record. The second return value
// is false when no record exists (no launch has completed yet), which
// is not an error.
func (s *Store) Last() (Launch, bool, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return Launch{}, false, nil
	}
	if err != nil {
		return Launch{}, false, fmt.Errorf("reading launch record: %w", err)
	}

	var launch Launch
	if err := codec.Unmarshal(data, &launch); err != nil {
		return Launch{}, false, fmt.Errorf("parsing launch record %s: %w", s.Path(), err)
	}
	return launch, true, nil
}
