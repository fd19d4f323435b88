// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package delegate

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func testRunner() *Runner {
	r := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.stdout = io.Discard
	r.stderr = io.Discard
	return r
}

// writeScript writes a shell script into dir and returns an
// invocation that runs it with /bin/sh. Tests drive a real child
// process; the launcher's whole job is process plumbing, so the tests
// exercise real plumbing.
func writeScript(t *testing.T, dir, content string) Invocation {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("delegate tests require a POSIX shell")
	}
	if err := os.WriteFile(filepath.Join(dir, "run.sh"), []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
	return Invocation{
		Interpreter: "/bin/sh",
		Script:      "run.sh",
		Dir:         dir,
		Mode:        "sequence",
		Stderr:      StderrForward,
	}
}

func TestRun_ExitCodePropagates(t *testing.T) {
	inv := writeScript(t, t.TempDir(), "exit 7\n")

	result, err := testRunner().Run(context.Background(), inv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 7 {
		t.Errorf("expected exit code 7, got %d", result.ExitCode)
	}
}

func TestRun_Success(t *testing.T) {
	inv := writeScript(t, t.TempDir(), "exit 0\n")

	result, err := testRunner().Run(context.Background(), inv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", result.ExitCode)
	}
}

func TestRun_ModeInChildEnvironment(t *testing.T) {
	dir := t.TempDir()
	inv := writeScript(t, dir, "printf '%s' \"$CHATBOT_MODE\" > mode.txt\n")

	if _, err := testRunner().Run(context.Background(), inv); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "mode.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "sequence" {
		t.Errorf("delegate saw CHATBOT_MODE=%q, want \"sequence\"", got)
	}
}

func TestRun_DoesNotMutateOwnEnvironment(t *testing.T) {
	inv := writeScript(t, t.TempDir(), "exit 0\n")

	os.Unsetenv(ModeEnvVar)
	if _, err := testRunner().Run(context.Background(), inv); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, present := os.LookupEnv(ModeEnvVar); present {
		t.Errorf("%s must only be set for the child, not the launcher", ModeEnvVar)
	}
}

func TestRun_ArgumentOrderPreserved(t *testing.T) {
	dir := t.TempDir()
	inv := writeScript(t, dir, "printf '%s\\n' \"$@\" > args.txt\n")
	inv.Args = []string{"--mode=long", "--lr=0.001", "--units=300", "--skip-unk"}

	if _, err := testRunner().Run(context.Background(), inv); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "args.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "--mode=long\n--lr=0.001\n--units=300\n--skip-unk\n"
	if string(got) != want {
		t.Errorf("delegate saw args:\n%s\nwant:\n%s", got, want)
	}
}

func TestRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	inv := writeScript(t, dir, "pwd > cwd.txt\n")

	if _, err := testRunner().Run(context.Background(), inv); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "cwd.txt"))
	if err != nil {
		t.Fatal(err)
	}
	// Compare resolved paths: the tmp dir may be behind a symlink.
	gotPath, _ := filepath.EvalSymlinks(strings.TrimSpace(string(got)))
	wantPath, _ := filepath.EvalSymlinks(dir)
	if gotPath != wantPath {
		t.Errorf("delegate ran in %q, want %q", gotPath, wantPath)
	}
}

func TestRun_StderrCapture(t *testing.T) {
	dir := t.TempDir()
	inv := writeScript(t, dir, "echo 'epoch 1 loss 3.4' >&2\nexit 0\n")
	inv.Stderr = StderrCapture
	inv.StderrLogPath = filepath.Join(dir, "stderr.log.zst")

	result, err := testRunner().Run(context.Background(), inv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.StderrLog != inv.StderrLogPath {
		t.Errorf("result should carry the log path, got %q", result.StderrLog)
	}

	file, err := os.Open(inv.StderrLogPath)
	if err != nil {
		t.Fatalf("opening capture log: %v", err)
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		t.Fatalf("capture log is not a zstd stream: %v", err)
	}
	defer decoder.Close()

	content, err := io.ReadAll(decoder)
	if err != nil {
		t.Fatalf("decompressing capture log: %v", err)
	}
	if !strings.Contains(string(content), "epoch 1 loss 3.4") {
		t.Errorf("capture log missing delegate stderr, got %q", content)
	}
}

func TestRun_StderrDiscard(t *testing.T) {
	var stderr bytes.Buffer
	r := testRunner()
	r.stderr = &stderr

	inv := writeScript(t, t.TempDir(), "echo noisy >&2\nexit 0\n")
	inv.Stderr = StderrDiscard

	if _, err := r.Run(context.Background(), inv); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("discard mode leaked stderr: %q", stderr.String())
	}
}

func TestRun_StderrForward(t *testing.T) {
	var stderr bytes.Buffer
	r := testRunner()
	r.stderr = &stderr

	inv := writeScript(t, t.TempDir(), "echo traceback >&2\nexit 0\n")

	if _, err := r.Run(context.Background(), inv); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(stderr.String(), "traceback") {
		t.Errorf("forward mode should pass stderr through, got %q", stderr.String())
	}
}

func TestRun_SignalDeath(t *testing.T) {
	inv := writeScript(t, t.TempDir(), "kill -TERM $$\n")

	result, err := testRunner().Run(context.Background(), inv)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 143 { // 128 + SIGTERM(15)
		t.Errorf("expected exit code 143 for SIGTERM death, got %d", result.ExitCode)
	}
}

func TestRun_MissingInterpreter(t *testing.T) {
	inv := writeScript(t, t.TempDir(), "exit 0\n")
	inv.Interpreter = "/nonexistent/python99"

	_, err := testRunner().Run(context.Background(), inv)
	if err == nil {
		t.Fatal("expected error for missing interpreter")
	}
	if !strings.Contains(err.Error(), "running delegate") {
		t.Errorf("error should identify the delegate command line, got %v", err)
	}
}

func TestInvocation_Validate(t *testing.T) {
	valid := Invocation{
		Interpreter: "python3",
		Script:      "game.py",
		Mode:        "sequence",
		Stderr:      StderrForward,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid invocation rejected: %v", err)
	}

	missing := valid
	missing.Mode = ""
	if err := missing.Validate(); err == nil {
		t.Error("expected error for empty mode")
	}

	capture := valid
	capture.Stderr = StderrCapture
	if err := capture.Validate(); err == nil {
		t.Error("capture without a log path must be rejected")
	}
}

func TestCommandLine(t *testing.T) {
	inv := Invocation{
		Interpreter: "python3",
		Script:      "game.py",
		Args:        []string{"--mode=long", "--units=300"},
	}
	want := "python3 game.py --mode=long --units=300"
	if inv.String() != want {
		t.Errorf("got %q, want %q", inv.String(), want)
	}
}

func TestParseStderrMode(t *testing.T) {
	for _, valid := range []string{"forward", "discard", "capture"} {
		if _, err := ParseStderrMode(valid); err != nil {
			t.Errorf("%s: %v", valid, err)
		}
	}
	if _, err := ParseStderrMode("tee"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
