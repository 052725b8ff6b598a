package systems

import (
	"bytes"
	"fmt"
	"log"

	"github.com/automoto/doomerang-duel/config"
	"github.com/quasilyte/gdata"
	"gopkg.in/yaml.v3"
)

// ItemStore is the slice of *gdata.Manager persistence needs.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

const customizationItem = "customization"

// SavedCustomization is the customization buffer as stored on disk
type SavedCustomization struct {
	Preset string              `yaml:"preset"`
	Config config.CombatConfig `yaml:"config"`
}

// OpenPersistence opens the gdata store for appName.
func OpenPersistence(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return nil, err
	}
	return m, nil
}

// SaveCustomization writes the current buffer, valid or not, so an edit
// session can be resumed.
func SaveCustomization(store ItemStore, rt *config.Runtime) error {
	data, err := yaml.Marshal(SavedCustomization{
		Preset: rt.PresetName(),
		Config: rt.Current(),
	})
	if err != nil {
		log.Printf("Warning: Could not serialize customization: %v", err)
		return fmt.Errorf("encode customization: %w", err)
	}
	if err := store.SaveItem(customizationItem, data); err != nil {
		log.Printf("Warning: Could not save customization: %v", err)
		return fmt.Errorf("save customization: %w", err)
	}
	return nil
}

// LoadCustomization restores a saved buffer into rt. It reports false when
// nothing was saved. A stored config that no longer validates is rejected
// and rt is left unchanged.
func LoadCustomization(store ItemStore, rt *config.Runtime) (bool, error) {
	data, err := store.LoadItem(customizationItem)
	if err != nil {
		log.Printf("Warning: Could not load customization: %v", err)
		return false, fmt.Errorf("load customization: %w", err)
	}
	if len(data) == 0 {
		// Nothing saved yet, keep the preset
		return false, nil
	}

	saved := SavedCustomization{Config: config.Defaults()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&saved); err != nil {
		log.Printf("Warning: Could not parse saved customization: %v", err)
		return false, fmt.Errorf("parse customization: %w", err)
	}
	if err := saved.Config.Validate(); err != nil {
		return false, fmt.Errorf("saved customization: %w", err)
	}

	rt.Replace(saved.Preset, saved.Config)
	return true, nil
}

// ClearCustomization forgets the saved buffer.
func ClearCustomization(store ItemStore) error {
	if err := store.SaveItem(customizationItem, nil); err != nil {
		log.Printf("Warning: Could not clear customization: %v", err)
		return err
	}
	return nil
}
