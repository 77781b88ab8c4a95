package schema

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	// ErrDuplicateKey is returned when registering a key that already exists.
	ErrDuplicateKey = errors.New("duplicate option key")
	// ErrUnknownKey is returned when a key is not part of the schema.
	ErrUnknownKey = errors.New("unknown option key")
	// ErrIncompleteConfig is returned when a required option has no value.
	ErrIncompleteConfig = errors.New("incomplete configuration")
	// ErrTypeMismatch is returned when a value does not match the declared type.
	ErrTypeMismatch = errors.New("option type mismatch")
	// ErrInvalidOption is returned when an option definition is malformed.
	ErrInvalidOption = errors.New("invalid option definition")
)

// BuildOption is a named, typed configuration setting.
type BuildOption struct {
	Key         string     `yaml:"key"`
	Type        OptionType `yaml:"type"`
	Default     any        `yaml:"default"`
	Merge       MergeMode  `yaml:"merge"`
	Required    bool       `yaml:"required"`
	Block       string     `yaml:"block"`
	Property    string     `yaml:"property"`
	Render      RenderKind `yaml:"render"`
	Description string     `yaml:"description"`
}

// PropertyName returns the emitted property name, falling back to the key.
func (o BuildOption) PropertyName() string {
	if o.Property != "" {
		return o.Property
	}
	return o.Key
}

// Schema is the registry of recognized build options. It is populated during
// initialization and must not be mutated once resolution begins.
type Schema struct {
	options map[string]BuildOption
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{options: make(map[string]BuildOption)}
}

// Register adds an option to the schema.
func (s *Schema) Register(opt BuildOption) error {
	if opt.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidOption)
	}
	if _, ok := s.options[opt.Key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, opt.Key)
	}
	if opt.Merge == MergeAppend && opt.Type != TypeStringList {
		return fmt.Errorf("%w: %q: append merge requires a list type, got %s", ErrInvalidOption, opt.Key, opt.Type)
	}
	if opt.Default != nil {
		def, err := Normalize(opt, opt.Default)
		if err != nil {
			return fmt.Errorf("%w: %q default: %w", ErrInvalidOption, opt.Key, err)
		}
		opt.Default = def
	}
	s.options[opt.Key] = opt
	return nil
}

// MustRegister is like Register but panics on error.
func (s *Schema) MustRegister(opt BuildOption) {
	if err := s.Register(opt); err != nil {
		panic(err)
	}
}

// Get returns the option registered under key.
func (s *Schema) Get(key string) (BuildOption, error) {
	opt, ok := s.options[key]
	if !ok {
		return BuildOption{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	opt.Default = CopyValue(opt.Default)
	return opt, nil
}

// Has reports whether key is registered.
func (s *Schema) Has(key string) bool {
	_, ok := s.options[key]
	return ok
}

// Len returns the number of registered options.
func (s *Schema) Len() int {
	return len(s.options)
}

// Keys returns all registered keys in lexicographic order.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.options))
	for k := range s.options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Options returns all registered options ordered by key.
func (s *Schema) Options() []BuildOption {
	keys := s.Keys()
	opts := make([]BuildOption, 0, len(keys))
	for _, k := range keys {
		opt := s.options[k]
		opt.Default = CopyValue(opt.Default)
		opts = append(opts, opt)
	}
	return opts
}

// Normalize coerces a loosely typed value, as produced by YAML or JSON
// decoding, into the Go type used for opt: bool, int, string or []string.
// The returned value never aliases v.
func Normalize(opt BuildOption, v any) (any, error) {
	switch opt.Type {
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeInt:
		if n, ok := toInt(v); ok {
			return n, nil
		}
	case TypeVersion:
		switch x := v.(type) {
		case string:
			return x, nil
		case float64:
			// 27.0 and 27.10 lose digits once decoded as a number.
			return nil, fmt.Errorf("%w: %q expects a version string, got number %v; quote the value",
				ErrTypeMismatch, opt.Key, x)
		default:
			if n, ok := toInt(v); ok {
				return strconv.Itoa(n), nil
			}
		}
	case TypeString:
		if str, ok := v.(string); ok {
			return str, nil
		}
	case TypeStringList:
		switch x := v.(type) {
		case []string:
			return append([]string{}, x...), nil
		case []any:
			out := make([]string, 0, len(x))
			for _, item := range x {
				str, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %q expects a list of strings, got element %T", ErrTypeMismatch, opt.Key, item)
				}
				out = append(out, str)
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %q expects %s, got %T", ErrTypeMismatch, opt.Key, opt.Type, v)
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		if x >= math.MinInt && x <= math.MaxInt {
			return int(x), true
		}
	case uint:
		if x <= math.MaxInt {
			return int(x), true
		}
	case uint64:
		if x <= math.MaxInt {
			return int(x), true
		}
	case float64:
		// float64(math.MaxInt) rounds up to 2^63, which overflows int.
		if x == math.Trunc(x) && x >= math.MinInt && x < math.MaxInt {
			return int(x), true
		}
	}
	return 0, false
}

// CopyValue returns a copy of a normalized value that shares no memory with v.
func CopyValue(v any) any {
	if list, ok := v.([]string); ok {
		return append([]string{}, list...)
	}
	return v
}
