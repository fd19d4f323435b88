// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/seqlab-foundation/seqlab/lib/guard"
)

// EnvVar names the environment variable that points at the config
// file when no --config flag is given.
const EnvVar = "SEQLAB_CONFIG"

// Config is the launcher configuration.
type Config struct {
	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Delegate configures the external program that does the actual
	// work.
	Delegate DelegateConfig `yaml:"delegate"`

	// Guard configures the launch gate.
	Guard GuardConfig `yaml:"guard"`

	// Launch configures preset selection.
	Launch LaunchConfig `yaml:"launch"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the experiment root: the directory holding the sentinel
	// file and the delegate subdirectory. Default: current directory.
	Root string `yaml:"root"`

	// State is where launch records and captured stderr logs are
	// written. Default: ${SEQLAB_ROOT}/.seqlab
	State string `yaml:"state"`
}

// DelegateConfig configures the external chatbot program.
type DelegateConfig struct {
	// Dir is the delegate's directory, relative to the experiment
	// root. The child process runs with this as its working
	// directory. Default: bot
	Dir string `yaml:"dir"`

	// Script is the delegate entry point inside Dir. Default: game.py
	Script string `yaml:"script"`

	// Interpreter runs the script. Default: python3
	Interpreter string `yaml:"interpreter"`

	// Mode is the execution mode handed to the delegate via the
	// CHATBOT_MODE environment variable. Default: sequence
	Mode string `yaml:"mode"`

	// Stderr is the delegate stderr disposition: "forward" (inherit
	// the launcher's stderr), "discard", or "capture" (compressed log
	// in the state directory). Default: forward
	Stderr string `yaml:"stderr"`
}

// GuardConfig configures the launch gate.
type GuardConfig struct {
	// Sentinel is the gate filename checked in the experiment root.
	// Default: launch
	Sentinel string `yaml:"sentinel"`
}

// LaunchConfig configures preset selection.
type LaunchConfig struct {
	// DefaultPreset is used when "seqlab launch" is run without a
	// preset argument. Empty means a preset argument is required.
	DefaultPreset string `yaml:"default_preset"`

	// PresetsFile is an optional YAML catalog of user presets merged
	// over the built-ins.
	PresetsFile string `yaml:"presets_file"`
}

// Default returns the compiled-in configuration. Unlike most seqlab
// state, the config file is optional: the defaults reproduce the
// original wrapper's contract (sentinel "launch" and delegate
// "bot/game.py" under the current directory).
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Root:  ".",
			State: "${SEQLAB_ROOT}/.seqlab",
		},
		Delegate: DelegateConfig{
			Dir:         "bot",
			Script:      "game.py",
			Interpreter: "python3",
			Mode:        "sequence",
			Stderr:      "forward",
		},
		Guard: GuardConfig{
			Sentinel: guard.DefaultSentinel,
		},
	}
}

// Load resolves the config file path from flag and environment and
// loads it. Precedence: explicit flag path, then SEQLAB_CONFIG, then
// compiled-in defaults.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. The file is
// merged over the defaults; absent keys keep their default values.
// Environment variables never override config values — the only
// expansion performed is ${VAR} path substitution for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"SEQLAB_ROOT": c.Paths.Root,
		"HOME":        os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["SEQLAB_ROOT"] = c.Paths.Root // update for dependent paths

	c.Paths.State = expandVars(c.Paths.State, vars)
	c.Launch.PresetsFile = expandVars(c.Launch.PresetsFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// stderrModes are the valid delegate stderr dispositions.
var stderrModes = []string{"forward", "discard", "capture"}

// Validate checks the configuration for errors, returning all problems
// joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}
	if c.Delegate.Dir == "" {
		errs = append(errs, fmt.Errorf("delegate.dir is required"))
	}
	if c.Delegate.Script == "" {
		errs = append(errs, fmt.Errorf("delegate.script is required"))
	}
	if c.Delegate.Interpreter == "" {
		errs = append(errs, fmt.Errorf("delegate.interpreter is required"))
	}
	if c.Delegate.Mode == "" {
		errs = append(errs, fmt.Errorf("delegate.mode is required"))
	}
	if !contains(stderrModes, c.Delegate.Stderr) {
		errs = append(errs, fmt.Errorf("delegate.stderr must be one of: %v", stderrModes))
	}
	if c.Guard.Sentinel == "" {
		errs = append(errs, fmt.Errorf("guard.sentinel is required"))
	}

	return errors.Join(errs...)
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// DelegateDir returns the delegate's working directory (experiment
// root joined with the delegate subdirectory).
func (c *Config) DelegateDir() string {
	return filepath.Join(c.Paths.Root, c.Delegate.Dir)
}

// ScriptPath returns the full path to the delegate entry point.
func (c *Config) ScriptPath() string {
	return filepath.Join(c.DelegateDir(), c.Delegate.Script)
}

// EnsureStateDir creates the state directory if it does not exist.
func (c *Config) EnsureStateDir() error {
	if c.Paths.State == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.State, 0755); err != nil {
		return fmt.Errorf("creating state directory %s: %w", c.Paths.State, err)
	}
	return nil
}
