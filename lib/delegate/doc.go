// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package delegate assembles and runs the external chatbot program.
// The launcher's contract with the delegate is deliberately thin: an
// ordered argument list, one environment variable carrying the
// execution mode, a working directory, and a stderr disposition. The
// delegate's output and flags are never interpreted; its exit status
// propagates verbatim.
package delegate
