package emit

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
)

// YAMLEmitter writes the resolved values as a YAML document.
type YAMLEmitter struct {
	schema *schema.Schema
}

type yamlDocument struct {
	Variant string         `yaml:"variant"`
	Options map[string]any `yaml:"options"`
}

// Format implements Emitter.
func (e *YAMLEmitter) Format() Format { return FormatYAML }

// Emit implements Emitter. Mapping keys are sorted by the encoder.
func (e *YAMLEmitter) Emit(cfg *variant.ResolvedConfig) ([]byte, error) {
	if err := checkEmittable(cfg, e.schema); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(yamlDocument{Variant: cfg.Variant(), Options: cfg.Values()})
	if err != nil {
		return nil, fmt.Errorf("marshaling variant %q to YAML: %w", cfg.Variant(), err)
	}
	return data, nil
}
