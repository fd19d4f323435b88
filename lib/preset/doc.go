// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package preset defines the experiment preset catalog: named,
// immutable bundles of command-line tokens forwarded verbatim to the
// chatbot delegate. Presets are plain data — they carry no logic and
// can be validated without launching anything.
//
// The built-in catalog covers the standard babi-task experiment
// series (TEST_1 through TEST_5). User catalogs loaded from a YAML
// file are merged over the built-ins; a user preset with the same name
// replaces the built-in one.
package preset
