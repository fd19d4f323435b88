// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package preset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is an enumerable table of presets. Lookups are by exact
// name; listings preserve definition order (built-ins first, then user
// presets in sorted order).
type Catalog struct {
	presets map[string]Preset
	order   []string
}

// Builtin returns a catalog containing only the compiled-in presets.
func Builtin() *Catalog {
	catalog := &Catalog{presets: make(map[string]Preset, len(builtins))}
	for _, p := range builtins {
		catalog.presets[p.Name] = p
		catalog.order = append(catalog.order, p.Name)
	}
	return catalog
}

// Add inserts a preset, replacing any existing preset with the same
// name. Returns true when an existing entry was replaced (the caller
// decides whether that is worth logging).
func (c *Catalog) Add(p Preset) bool {
	_, replaced := c.presets[p.Name]
	c.presets[p.Name] = p
	if !replaced {
		c.order = append(c.order, p.Name)
	}
	return replaced
}

// Resolve looks up a preset by name. The returned preset's Args slice
// is the caller's own copy; mutating it cannot corrupt the catalog. An
// unknown name produces an error listing every valid name, since the
// whole point of runtime selection is that the operator never has to
// read source to find one.
func (c *Catalog) Resolve(name string) (Preset, error) {
	p, ok := c.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(c.Names(), ", "))
	}
	p.Args = p.Argv()
	return p, nil
}

// Names returns preset names in listing order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// All returns presets in listing order.
func (c *Catalog) All() []Preset {
	all := make([]Preset, 0, len(c.order))
	for _, name := range c.order {
		all = append(all, c.presets[name])
	}
	return all
}

// Len returns the number of presets in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Validate checks every preset in the catalog and returns all problems
// joined.
func (c *Catalog) Validate() error {
	var errs []error
	for _, name := range c.order {
		if err := c.presets[name].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// catalogFile is the on-disk shape of a user preset catalog.
type catalogFile struct {
	Presets map[string]filePreset `yaml:"presets"`
}

type filePreset struct {
	Summary string   `yaml:"summary"`
	Args    []string `yaml:"args"`
}

// LoadFile reads a user preset catalog from a YAML file. The file may
// be empty or define no presets (valid: built-ins only). Presets are
// returned in sorted name order so merging is deterministic. Each
// preset is validated before being returned; an invalid file is
// rejected as a whole.
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing preset catalog %s: %w", path, err)
	}

	names := make([]string, 0, len(file.Presets))
	for name := range file.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	var presets []Preset
	var errs []error
	for _, name := range names {
		p := Preset{
			Name:    name,
			Summary: file.Presets[name].Summary,
			Args:    file.Presets[name].Args,
			Source:  SourceFile,
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		presets = append(presets, p)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("preset catalog %s: %w", path, errors.Join(errs...))
	}

	return presets, nil
}
