package variant

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
)

// ResolvedConfig is the merged, concrete configuration of one variant.
// It is immutable: accessors return copies and never expose internal state.
type ResolvedConfig struct {
	variant string
	values  map[string]any
}

// NewResolvedConfig builds a ResolvedConfig from already normalized values
// without consulting a schema. Values are copied.
func NewResolvedConfig(name string, values Values) *ResolvedConfig {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		if v == nil {
			continue
		}
		copied[k] = schema.CopyValue(v)
	}
	return &ResolvedConfig{variant: name, values: copied}
}

// Variant returns the variant name.
func (c *ResolvedConfig) Variant() string {
	return c.variant
}

// Has reports whether key has a concrete value.
func (c *ResolvedConfig) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Value returns a copy of the value stored under key.
func (c *ResolvedConfig) Value(key string) (any, bool) {
	v, ok := c.values[key]
	if !ok {
		return nil, false
	}
	return schema.CopyValue(v), true
}

// Bool returns the boolean value of key, or false when unset.
func (c *ResolvedConfig) Bool(key string) bool {
	b, _ := c.values[key].(bool)
	return b
}

// Int returns the integer value of key and whether it was set.
func (c *ResolvedConfig) Int(key string) (int, bool) {
	n, ok := c.values[key].(int)
	return n, ok
}

// String returns the string value of key, or "" when unset.
func (c *ResolvedConfig) String(key string) string {
	s, _ := c.values[key].(string)
	return s
}

// Strings returns a copy of the list value of key.
func (c *ResolvedConfig) Strings(key string) []string {
	list, _ := c.values[key].([]string)
	return append([]string{}, list...)
}

// Keys returns the keys that have values, in lexicographic order.
func (c *ResolvedConfig) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a deep copy of all values.
func (c *ResolvedConfig) Values() Values {
	out := make(Values, len(c.values))
	for k, v := range c.values {
		out[k] = schema.CopyValue(v)
	}
	return out
}

// Equal reports whether both configs have the same variant and values.
func (c *ResolvedConfig) Equal(other *ResolvedConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.variant == other.variant && reflect.DeepEqual(c.values, other.values)
}

// MissingRequired returns the required keys of s that have no value.
func (c *ResolvedConfig) MissingRequired(s *schema.Schema) []string {
	var missing []string
	for _, opt := range s.Options() {
		if opt.Required && !c.Has(opt.Key) {
			missing = append(missing, opt.Key)
		}
	}
	return missing
}

// CheckComplete returns ErrIncompleteConfig when a required key of s is unset.
func (c *ResolvedConfig) CheckComplete(s *schema.Schema) error {
	if missing := c.MissingRequired(s); len(missing) > 0 {
		return fmt.Errorf("variant %q: %w: missing %v", c.variant, schema.ErrIncompleteConfig, missing)
	}
	return nil
}
