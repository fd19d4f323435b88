// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a specific exit code without printing an extra
// error message. When a command returns an ExitError, main exits with
// the code and no redundant "error:" line — the command is expected
// to have written its own output already.
//
// The launcher uses it for the two exits that are outcomes rather
// than launcher errors: mirroring the delegate's non-zero status, and
// the distinct missing-sentinel code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
