// Package emit renders a resolved variant configuration as build-tool text.
// Every emitter is deterministic: identical configurations produce
// byte-identical output.
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
)

// Format names an output syntax.
type Format string

const (
	FormatKotlin Format = "kts"
	FormatHCL    Format = "hcl"
	FormatYAML   Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatKotlin, FormatHCL, FormatYAML}

// ParseFormat parses a format name. The empty string selects FormatKotlin.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "kts", "kotlin", "gradle":
		return FormatKotlin, nil
	case "hcl":
		return FormatHCL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Emitter serializes a resolved configuration.
type Emitter interface {
	// Format returns the syntax produced by Emit.
	Format() Format

	// Emit renders cfg. It fails with schema.ErrIncompleteConfig when a
	// required option has no value.
	Emit(cfg *variant.ResolvedConfig) ([]byte, error)
}

// New returns the emitter for format, using s for option metadata.
func New(format Format, s *schema.Schema) (Emitter, error) {
	switch format {
	case FormatKotlin:
		return &KotlinEmitter{schema: s}, nil
	case FormatHCL:
		return &HCLEmitter{schema: s}, nil
	case FormatYAML:
		return &YAMLEmitter{schema: s}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Write emits cfg with e and writes the result to w.
func Write(w io.Writer, e Emitter, cfg *variant.ResolvedConfig) error {
	data, err := e.Emit(cfg)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s output: %w", e.Format(), err)
	}
	return nil
}

// checkEmittable verifies that cfg is complete and only holds known keys.
func checkEmittable(cfg *variant.ResolvedConfig, s *schema.Schema) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil configuration", schema.ErrIncompleteConfig)
	}
	if err := cfg.CheckComplete(s); err != nil {
		return err
	}
	for _, key := range cfg.Keys() {
		if !s.Has(key) {
			return fmt.Errorf("variant %q: %w: %q", cfg.Variant(), schema.ErrUnknownKey, key)
		}
	}
	return nil
}
