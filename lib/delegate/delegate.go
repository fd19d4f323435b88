// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package delegate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// ModeEnvVar is the environment variable carrying the execution mode
// to the delegate. The name is a published contract with game.py.
const ModeEnvVar = "CHATBOT_MODE"

// Invocation describes one delegated run. It is assembled from the
// resolved preset and the launcher configuration, then executed by
// Runner.Run.
type Invocation struct {
	// Interpreter runs the script (e.g. "python3").
	Interpreter string

	// Script is the delegate entry point, relative to Dir.
	Script string

	// Dir is the child's working directory. The delegate resolves its
	// data and checkpoint paths relative to this.
	Dir string

	// Args is the ordered token list appended after the script path.
	Args []string

	// Mode is the value for ModeEnvVar in the child environment.
	Mode string

	// Stderr is the stderr disposition.
	Stderr StderrMode

	// StderrLogPath is the capture target. Required when Stderr is
	// StderrCapture, ignored otherwise.
	StderrLogPath string
}

// Validate checks that the invocation is runnable.
func (inv Invocation) Validate() error {
	var errs []error
	if inv.Interpreter == "" {
		errs = append(errs, fmt.Errorf("interpreter is required"))
	}
	if inv.Script == "" {
		errs = append(errs, fmt.Errorf("script is required"))
	}
	if inv.Mode == "" {
		errs = append(errs, fmt.Errorf("mode is required"))
	}
	if _, err := ParseStderrMode(string(inv.Stderr)); err != nil {
		errs = append(errs, err)
	}
	if inv.Stderr == StderrCapture && inv.StderrLogPath == "" {
		errs = append(errs, fmt.Errorf("stderr capture requires a log path"))
	}
	return errors.Join(errs...)
}

// CommandLine returns the full command line for display (dry runs,
// logs): interpreter, script, then the token list.
func (inv Invocation) CommandLine() []string {
	line := make([]string, 0, len(inv.Args)+2)
	line = append(line, inv.Interpreter, inv.Script)
	line = append(line, inv.Args...)
	return line
}

// String renders the command line as a single shell-like string for
// log output. Tokens never contain whitespace (preset validation
// enforces this), so plain joining is unambiguous.
func (inv Invocation) String() string {
	return strings.Join(inv.CommandLine(), " ")
}

// Result is the outcome of a delegated run that actually started.
type Result struct {
	// ExitCode is the delegate's exit status. Signal death maps to
	// 128+signal, the shell convention.
	ExitCode int

	// StderrLog is the captured log path, when capture was active.
	StderrLog string
}

// Runner executes invocations. The zero value is not usable; use New.
type Runner struct {
	logger *slog.Logger

	// stdout and stderr are the forwarding targets, overridable in
	// tests. The delegate's stdin is always inherited.
	stdout io.Writer
	stderr io.Writer
}

// New returns a Runner that forwards delegate output to this process's
// stdout and stderr.
func New(logger *slog.Logger) *Runner {
	return &Runner{
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run executes the invocation and blocks until the delegate exits.
//
// The returned error is non-nil only when the delegate could not be
// run at all (bad invocation, missing interpreter, unwritable capture
// log). A delegate that started and exited non-zero is NOT an error
// here: it produces a Result carrying the exit code, which the caller
// propagates. The launcher never interprets delegate failures.
func (r *Runner) Run(ctx context.Context, inv Invocation) (Result, error) {
	if err := inv.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid invocation: %w", err)
	}

	cmd := exec.CommandContext(ctx, inv.Interpreter, append([]string{inv.Script}, inv.Args...)...)
	cmd.Dir = inv.Dir
	// One variable added to the inherited environment, for the child
	// only. The launcher's own environment is never mutated.
	cmd.Env = append(os.Environ(), ModeEnvVar+"="+inv.Mode)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout

	result := Result{}

	switch inv.Stderr {
	case StderrForward:
		cmd.Stderr = r.stderr
	case StderrDiscard:
		// nil routes the child's stderr to the null device.
		cmd.Stderr = nil
	case StderrCapture:
		capture, err := newCaptureWriter(inv.StderrLogPath)
		if err != nil {
			return Result{}, err
		}
		cmd.Stderr = capture
		result.StderrLog = inv.StderrLogPath
		defer func() {
			if err := capture.Close(); err != nil {
				r.logger.Error("closing stderr capture log", "path", inv.StderrLogPath, "error", err)
			}
		}()
	}

	r.logger.Info("launching delegate",
		"command", inv.String(),
		"dir", inv.Dir,
		"mode", inv.Mode,
		"stderr", string(inv.Stderr),
	)

	err := cmd.Run()
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitStatus(exitErr)
		return result, nil
	}

	return Result{}, fmt.Errorf("running delegate %s: %w", inv.String(), err)
}

// exitStatus extracts the delegate's exit code from a completed
// process. Signal death maps to 128+signal so the launcher's own exit
// status stays meaningful to shells and supervisors.
func exitStatus(exitErr *exec.ExitError) int {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return exitErr.ExitCode()
}
