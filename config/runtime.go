package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Runtime is the live-edited customization buffer. Sessions never read it
// directly; they take a validated Snapshot when combat starts.
type Runtime struct {
	catalog *Catalog
	preset  string
	current CombatConfig
}

// NewRuntime returns a buffer holding the first preset of the catalog.
func NewRuntime(catalog *Catalog) (*Runtime, error) {
	p, err := catalog.ByIndex(0)
	if err != nil {
		return nil, err
	}
	return &Runtime{catalog: catalog, preset: p.Name, current: p.Config}, nil
}

// Catalog returns the preset catalog backing this buffer.
func (r *Runtime) Catalog() *Catalog {
	return r.catalog
}

// PresetName is the preset most recently loaded. Edits do not clear it.
func (r *Runtime) PresetName() string {
	return r.preset
}

// LoadPreset fully replaces the buffer, combo list included.
func (r *Runtime) LoadPreset(name string) error {
	p, err := r.catalog.ByName(name)
	if err != nil {
		return err
	}
	r.preset, r.current = p.Name, p.Config
	return nil
}

// LoadPresetIndex is LoadPreset by catalog position.
func (r *Runtime) LoadPresetIndex(i int) error {
	p, err := r.catalog.ByIndex(i)
	if err != nil {
		return err
	}
	r.preset, r.current = p.Name, p.Config
	return nil
}

// Replace swaps in an arbitrary config, e.g. one restored from disk.
func (r *Runtime) Replace(presetName string, cfg CombatConfig) {
	r.preset, r.current = presetName, cfg.Clone()
}

// Current returns a deep copy of the buffer without validating it.
func (r *Runtime) Current() CombatConfig {
	return r.current.Clone()
}

// Snapshot returns a validated deep copy for a new encounter.
func (r *Runtime) Snapshot() (CombatConfig, error) {
	if err := r.current.Validate(); err != nil {
		return CombatConfig{}, err
	}
	return r.current.Clone(), nil
}

// Keys lists the editable field keys in sorted order.
func (r *Runtime) Keys() []string {
	fields, err := r.fields()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get renders one field as YAML text.
func (r *Runtime) Get(key string) (string, error) {
	fields, err := r.fields()
	if err != nil {
		return "", err
	}
	v, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Set parses value as YAML and assigns it to key. The edit is applied only if
// the result still decodes into CombatConfig; range checks wait for Snapshot.
func (r *Runtime) Set(key, value string) error {
	fields, err := r.fields()
	if err != nil {
		return err
	}
	if _, ok := fields[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	var parsed yaml.Node
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	if len(parsed.Content) == 0 {
		return fmt.Errorf("parse %s: empty value", key)
	}
	fields[key] = parsed.Content[0]

	raw, err := yaml.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	var next CombatConfig
	if err := decodeStrictBytes(raw, &next); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	r.current = next
	return nil
}

func (r *Runtime) fields() (map[string]interface{}, error) {
	raw, err := yaml.Marshal(r.current)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	fields := make(map[string]interface{})
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fields, nil
}
