package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
)

// ErrUnknownVariant is returned when resolving a variant that was not declared.
var ErrUnknownVariant = errors.New("unknown variant")

// defaultVariants are the build types the Android Gradle plugin always creates.
var defaultVariants = []string{"debug", "release"}

// Builder constructs a Project by layering project files.
type Builder struct {
	configs []*Config
}

// NewBuilder creates a new project builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a project file. Files are applied in order: later base values
// take precedence and later variant layers stack on top of earlier ones.
func (b *Builder) Add(cfg *Config) *Builder {
	if cfg != nil {
		b.configs = append(b.configs, cfg)
	}
	return b
}

// Build registers extra options on the Android schema, merges base values
// and variant layers, and checks that every referenced key is known.
func (b *Builder) Build() (*Project, error) {
	s := schema.Android()
	for _, cfg := range b.configs {
		for _, opt := range cfg.Options {
			if err := s.Register(opt); err != nil {
				return nil, fmt.Errorf("registering option: %w", err)
			}
		}
	}

	p := &Project{
		Schema:   s,
		Base:     variant.Values{},
		variants: make(map[string][]variant.Values),
	}
	for _, name := range defaultVariants {
		p.variants[name] = nil
	}

	for _, cfg := range b.configs {
		for key, value := range cfg.Base {
			// ~ leaves the value from an earlier file in place.
			if value == nil {
				if !s.Has(key) {
					return nil, fmt.Errorf("base: %w: %q", schema.ErrUnknownKey, key)
				}
				continue
			}
			p.Base[key] = value
		}
		for name, vc := range cfg.Variants {
			if vc == nil {
				// Declared without layers.
				if _, ok := p.variants[name]; !ok {
					p.variants[name] = nil
				}
				continue
			}
			p.variants[name] = append(p.variants[name], vc.Layers...)
		}
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Project is a loaded set of project files: the schema, the shared base
// configuration and the override layers of every declared variant.
type Project struct {
	Schema *schema.Schema
	Base   variant.Values

	variants map[string][]variant.Values
}

// VariantNames returns the declared variants in lexicographic order.
func (p *Project) VariantNames() []string {
	names := make([]string, 0, len(p.variants))
	for name := range p.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layers returns the override layers of a variant.
func (p *Project) Layers(name string) ([]variant.Values, error) {
	layers, ok := p.variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return layers, nil
}

// Resolve resolves a variant. Extra layers are applied after the base and
// before the variant's own layers.
func (p *Project) Resolve(name string, extra ...variant.Values) (*variant.ResolvedConfig, error) {
	layers, err := p.Layers(name)
	if err != nil {
		return nil, err
	}
	all := make([]variant.Values, 0, len(extra)+len(layers))
	all = append(all, extra...)
	all = append(all, layers...)
	return variant.ResolveLayers(name, p.Base, all, p.Schema)
}

func (p *Project) validate() error {
	if err := checkKnown(p.Base, p.Schema); err != nil {
		return fmt.Errorf("base: %w", err)
	}
	for _, name := range p.VariantNames() {
		for i, layer := range p.variants[name] {
			if err := checkKnown(layer, p.Schema); err != nil {
				return fmt.Errorf("variant %q layer %d: %w", name, i, err)
			}
		}
	}
	return nil
}

func checkKnown(values variant.Values, s *schema.Schema) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := s.Get(k); err != nil {
			return err
		}
	}
	return nil
}
