// Package config provides YAML project file loading, multi-file layering,
// and per-variant resolution against the build option schema.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
)

// Config is the content of one project file.
type Config struct {
	// Options are registered on top of the built-in Android schema.
	Options []schema.BuildOption `yaml:"options"`

	// Base holds the values shared by every variant.
	Base variant.Values `yaml:"base"`

	// Variants maps a variant name to its override layers.
	Variants map[string]*VariantConfig `yaml:"variants"`
}

// VariantConfig holds the override layers of one variant, applied in order.
// In YAML a mapping is a single layer and a sequence is successive layers.
type VariantConfig struct {
	Layers []variant.Values
}

// UnmarshalYAML accepts either a mapping or a sequence of mappings.
func (v *VariantConfig) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var layer variant.Values
		if err := value.Decode(&layer); err != nil {
			return err
		}
		v.Layers = []variant.Values{layer}
	case yaml.SequenceNode:
		var layers []variant.Values
		if err := value.Decode(&layers); err != nil {
			return err
		}
		v.Layers = layers
	case yaml.ScalarNode:
		if value.Tag != "!!null" {
			return fmt.Errorf("line %d: variant must be a mapping or a list of mappings", value.Line)
		}
		v.Layers = nil
	default:
		return fmt.Errorf("line %d: variant must be a mapping or a list of mappings", value.Line)
	}
	return nil
}

// MarshalYAML writes a single layer as a mapping and several as a sequence.
func (v VariantConfig) MarshalYAML() (any, error) {
	if len(v.Layers) == 1 {
		return v.Layers[0], nil
	}
	return v.Layers, nil
}
