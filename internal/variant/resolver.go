// Package variant merges a base configuration with per-variant override
// layers into a fully resolved configuration.
package variant

import (
	"fmt"
	"sort"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
)

// Values is a loosely typed mapping from option key to value, as written in
// a project file. A nil value means "not set".
type Values map[string]any

// Override is a partial configuration applied on top of a base for one variant.
type Override struct {
	Variant string
	Values  Values
}

// Resolve merges base and override against s. For every schema key the
// override wins over the base, and the base wins over the option default.
// Append-merged lists are concatenated instead, without duplicates.
func Resolve(base Values, override Override, s *schema.Schema) (*ResolvedConfig, error) {
	return ResolveLayers(override.Variant, base, []Values{override.Values}, s)
}

// ResolveLayers applies zero or more override layers over base in order.
// The last layer to set a replace-merged key wins.
func ResolveLayers(name string, base Values, layers []Values, s *schema.Schema) (*ResolvedConfig, error) {
	if err := checkKeys(base, s); err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	for i, layer := range layers {
		if err := checkKeys(layer, s); err != nil {
			return nil, fmt.Errorf("variant %q layer %d: %w", name, i, err)
		}
	}

	values := make(map[string]any, s.Len())
	for _, opt := range s.Options() {
		v, err := resolveOption(opt, base, layers)
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", name, err)
		}
		if v == nil {
			if opt.Required {
				return nil, fmt.Errorf("variant %q: %w: required option %q has no value", name, schema.ErrIncompleteConfig, opt.Key)
			}
			continue
		}
		values[opt.Key] = v
	}

	return &ResolvedConfig{variant: name, values: values}, nil
}

func resolveOption(opt schema.BuildOption, base Values, layers []Values) (any, error) {
	// The base replaces the default; only override layers append.
	current := opt.Default
	if v, ok := lookup(base, opt.Key); ok {
		n, err := schema.Normalize(opt, v)
		if err != nil {
			return nil, err
		}
		current = mergeValue(opt, nil, n)
	}
	for _, layer := range layers {
		v, ok := lookup(layer, opt.Key)
		if !ok {
			continue
		}
		n, err := schema.Normalize(opt, v)
		if err != nil {
			return nil, err
		}
		current = mergeValue(opt, current, n)
	}
	return schema.CopyValue(current), nil
}

// mergeValue combines the value below with the next layer's value.
func mergeValue(opt schema.BuildOption, lower, upper any) any {
	if opt.Merge != schema.MergeAppend {
		return upper
	}
	lowerList, _ := lower.([]string)
	upperList, _ := upper.([]string)
	return appendUnique(lowerList, upperList)
}

// appendUnique concatenates lists, keeping the first occurrence of each element.
func appendUnique(lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, list := range lists {
		for _, item := range list {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

func lookup(values Values, key string) (any, bool) {
	v, ok := values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func checkKeys(values Values, s *schema.Schema) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !s.Has(k) {
			return fmt.Errorf("%w: %q", schema.ErrUnknownKey, k)
		}
	}
	return nil
}
