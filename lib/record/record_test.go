// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"os"
	"strings"
	"testing"
	"time"
)

func sampleLaunch() Launch {
	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return Launch{
		Preset:       "TEST_5",
		Argv:         []string{"--mode=long", "--units=300"},
		Mode:         "sequence",
		ScriptDigest: strings.Repeat("ab", 32),
		StartedAt:    started,
		FinishedAt:   started.Add(90 * time.Minute),
		ExitCode:     0,
	}
}

func TestWriteAndLast(t *testing.T) {
	store := NewStore(t.TempDir())
	in := sampleLaunch()

	if err := store.Write(in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, found, err := store.Last()
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if !found {
		t.Fatal("expected a record after Write")
	}

	if out.Preset != in.Preset || out.Mode != in.Mode || out.ExitCode != in.ExitCode {
		t.Errorf("record mismatch: got %+v", out)
	}
	if !out.StartedAt.Equal(in.StartedAt) || !out.FinishedAt.Equal(in.FinishedAt) {
		t.Errorf("timestamp mismatch: got %v..%v", out.StartedAt, out.FinishedAt)
	}
	if len(out.Argv) != len(in.Argv) {
		t.Fatalf("argv length mismatch: %d vs %d", len(out.Argv), len(in.Argv))
	}
	for i := range in.Argv {
		if out.Argv[i] != in.Argv[i] {
			t.Errorf("argv %d: got %q, want %q", i, out.Argv[i], in.Argv[i])
		}
	}
}

func TestLast_NoRecord(t *testing.T) {
	store := NewStore(t.TempDir())

	_, found, err := store.Last()
	if err != nil {
		t.Fatalf("Last on empty store: %v", err)
	}
	if found {
		t.Error("expected found=false before any Write")
	}
}

func TestWrite_Overwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	first := sampleLaunch()
	if err := store.Write(first); err != nil {
		t.Fatal(err)
	}

	second := sampleLaunch()
	second.Preset = "TEST_4"
	second.ExitCode = 1
	if err := store.Write(second); err != nil {
		t.Fatal(err)
	}

	out, found, err := store.Last()
	if err != nil || !found {
		t.Fatalf("Last: found=%v err=%v", found, err)
	}
	if out.Preset != "TEST_4" || out.ExitCode != 1 {
		t.Errorf("expected second record to win, got %+v", out)
	}
}

func TestWrite_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := store.Write(sampleLaunch()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestLast_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := os.WriteFile(store.Path(), []byte("not cbor at all"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := store.Last(); err == nil {
		t.Fatal("expected error for corrupt record")
	}
}
