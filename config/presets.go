package config

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset is a named, complete snapshot of all combat tunables.
type Preset struct {
	Name   string
	Config CombatConfig
}

// Catalog is the fixed list of presets available to the customization buffer.
type Catalog struct {
	presets []Preset
}

type presetFile struct {
	Presets []struct {
		Name   string    `yaml:"name"`
		Config yaml.Node `yaml:"config"`
	} `yaml:"presets"`
}

// BuiltinCatalog parses the embedded preset file.
func BuiltinCatalog() (*Catalog, error) {
	return ParseCatalog(presetsYAML)
}

// ParseCatalog decodes a preset file. Each preset is decoded over Defaults and
// validated; unknown keys are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("parse presets: no presets defined")
	}

	cat := &Catalog{presets: make([]Preset, 0, len(file.Presets))}
	seen := make(map[string]bool, len(file.Presets))
	for i, p := range file.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("parse presets: preset %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("parse presets: duplicate preset %q", p.Name)
		}
		seen[p.Name] = true

		cfg := Defaults()
		if p.Config.Kind != 0 {
			if err := decodeStrict(&p.Config, &cfg); err != nil {
				return nil, fmt.Errorf("parse preset %q: %w", p.Name, err)
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		cat.presets = append(cat.presets, Preset{Name: p.Name, Config: cfg})
	}
	return cat, nil
}

// decodeStrict decodes node into out, rejecting keys out does not declare.
func decodeStrict(node *yaml.Node, out *CombatConfig) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	return decodeStrictBytes(raw, out)
}

func decodeStrictBytes(raw []byte, out *CombatConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	return len(c.presets)
}

// Names lists preset names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}
	return names
}

// ByIndex returns a deep copy of the preset at index i.
func (c *Catalog) ByIndex(i int) (Preset, error) {
	if i < 0 || i >= len(c.presets) {
		return Preset{}, fmt.Errorf("%w: index %d out of range [0, %d)", ErrUnknownPreset, i, len(c.presets))
	}
	p := c.presets[i]
	return Preset{Name: p.Name, Config: p.Config.Clone()}, nil
}

// ByName returns a deep copy of the named preset.
func (c *Catalog) ByName(name string) (Preset, error) {
	for _, p := range c.presets {
		if p.Name == name {
			return Preset{Name: p.Name, Config: p.Config.Clone()}, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
