// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for the seqlab
// launcher. Fatal centralizes the one legitimate raw stderr write that
// happens outside the structured logger's lifetime: reporting an
// unrecoverable error from main().
package process
