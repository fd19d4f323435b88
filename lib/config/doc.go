// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the seqlab
// launcher.
//
// Configuration is loaded from a single YAML file specified by:
//   - SEQLAB_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery; when neither is set,
// the compiled-in defaults apply (experiment root = current directory,
// matching the original wrapper's behavior). This keeps configuration
// deterministic and auditable with no hidden overrides.
package config
