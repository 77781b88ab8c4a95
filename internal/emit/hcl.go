package emit

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
)

// HCLEmitter writes a `variant "<name>" { ... }` block with one attribute
// per resolved option, ordered by key.
type HCLEmitter struct {
	schema *schema.Schema
}

// Format implements Emitter.
func (e *HCLEmitter) Format() Format { return FormatHCL }

// Emit implements Emitter.
func (e *HCLEmitter) Emit(cfg *variant.ResolvedConfig) ([]byte, error) {
	if err := checkEmittable(cfg, e.schema); err != nil {
		return nil, err
	}

	f := hclwrite.NewEmptyFile()
	block := f.Body().AppendNewBlock("variant", []string{cfg.Variant()})
	body := block.Body()
	for _, key := range cfg.Keys() {
		value, _ := cfg.Value(key)
		v, err := toCty(value)
		if err != nil {
			return nil, fmt.Errorf("variant %q option %q: %w", cfg.Variant(), key, err)
		}
		body.SetAttributeValue(key, v)
	}
	return hclwrite.Format(f.Bytes()), nil
}

func toCty(value any) (cty.Value, error) {
	switch v := value.(type) {
	case bool:
		return cty.BoolVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case string:
		return cty.StringVal(v), nil
	case []string:
		if len(v) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		vals := make([]cty.Value, 0, len(v))
		for _, item := range v {
			vals = append(vals, cty.StringVal(item))
		}
		return cty.ListVal(vals), nil
	default:
		return cty.NilVal, fmt.Errorf("%w: unsupported value %T", schema.ErrTypeMismatch, value)
	}
}
