package emit

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
)

const indent = "    "

// builtinBuildTypes are created by the Android Gradle plugin and must be
// looked up rather than created.
var builtinBuildTypes = map[string]bool{"debug": true, "release": true}

// KotlinEmitter writes a Gradle Kotlin DSL module build file.
type KotlinEmitter struct {
	schema *schema.Schema
}

// Format implements Emitter.
func (e *KotlinEmitter) Format() Format { return FormatKotlin }

type kotlinBlock struct {
	header   string
	lines    []string
	children map[string]*kotlinBlock
}

func newKotlinBlock(header string) *kotlinBlock {
	return &kotlinBlock{header: header, children: make(map[string]*kotlinBlock)}
}

func (b *kotlinBlock) child(header string) *kotlinBlock {
	c, ok := b.children[header]
	if !ok {
		c = newKotlinBlock(header)
		b.children[header] = c
	}
	return c
}

// Emit implements Emitter. The plugins block comes first as Gradle requires;
// all other blocks and entries are ordered lexicographically.
func (e *KotlinEmitter) Emit(cfg *variant.ResolvedConfig) ([]byte, error) {
	if err := checkEmittable(cfg, e.schema); err != nil {
		return nil, err
	}

	root := newKotlinBlock("")
	for _, key := range cfg.Keys() {
		opt, err := e.schema.Get(key)
		if err != nil {
			return nil, err
		}
		value, _ := cfg.Value(key)
		lines := renderKotlin(opt, value)
		if len(lines) == 0 {
			continue
		}
		target := root
		if opt.Block != "" {
			for _, segment := range strings.Split(opt.Block, ".") {
				target = target.child(blockHeader(segment, cfg.Variant()))
			}
		}
		target.lines = append(target.lines, lines...)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Generated by gradlevariant for variant %s. Do not edit.\n", kotlinString(cfg.Variant()))
	for _, line := range root.lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	for _, header := range topLevelOrder(root) {
		buf.WriteByte('\n')
		writeKotlinBlock(&buf, root.children[header], 0)
	}
	return buf.Bytes(), nil
}

func topLevelOrder(root *kotlinBlock) []string {
	headers := sortedHeaders(root)
	sort.SliceStable(headers, func(i, j int) bool {
		return headers[i] == schema.BlockPlugins && headers[j] != schema.BlockPlugins
	})
	return headers
}

func sortedHeaders(b *kotlinBlock) []string {
	headers := make([]string, 0, len(b.children))
	for h := range b.children {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	return headers
}

func writeKotlinBlock(buf *bytes.Buffer, b *kotlinBlock, depth int) {
	pad := strings.Repeat(indent, depth)
	fmt.Fprintf(buf, "%s%s {\n", pad, b.header)
	for _, line := range b.lines {
		fmt.Fprintf(buf, "%s%s%s\n", pad, indent, line)
	}
	for _, header := range sortedHeaders(b) {
		writeKotlinBlock(buf, b.children[header], depth+1)
	}
	fmt.Fprintf(buf, "%s}\n", pad)
}

func blockHeader(segment, variantName string) string {
	if segment != schema.VariantBlockSegment {
		return segment
	}
	if builtinBuildTypes[variantName] {
		return "getByName(" + kotlinString(variantName) + ")"
	}
	return "create(" + kotlinString(variantName) + ")"
}

// renderKotlin returns the statements for one option; nil when the value is
// empty and nothing needs to be written.
func renderKotlin(opt schema.BuildOption, value any) []string {
	prop := opt.PropertyName()
	list, isList := value.([]string)
	if isList && len(list) == 0 {
		return nil
	}
	if s, ok := value.(string); ok && s == "" {
		return nil
	}

	switch opt.Render {
	case schema.RenderCall:
		if !isList {
			return []string{prop + "(" + kotlinLiteral(value) + ")"}
		}
		lines := make([]string, 0, len(list))
		for _, item := range list {
			lines = append(lines, prop+"("+kotlinString(item)+")")
		}
		return lines
	case schema.RenderProjectCall:
		if !isList {
			list = []string{fmt.Sprint(value)}
		}
		lines := make([]string, 0, len(list))
		for _, item := range list {
			if !strings.HasPrefix(item, ":") {
				item = ":" + item
			}
			lines = append(lines, prop+"(project("+kotlinString(item)+"))")
		}
		return lines
	case schema.RenderFileCall:
		if !isList {
			list = []string{fmt.Sprint(value)}
		}
		args := make([]string, 0, len(list))
		for _, item := range list {
			if name, ok := strings.CutPrefix(item, schema.DefaultFilePrefix); ok {
				args = append(args, "getDefaultProguardFile("+kotlinString(name)+")")
				continue
			}
			args = append(args, kotlinString(item))
		}
		return []string{prop + "(" + strings.Join(args, ", ") + ")"}
	case schema.RenderSetAppend:
		if !isList {
			list = []string{fmt.Sprint(value)}
		}
		quoted := make([]string, 0, len(list))
		for _, item := range list {
			quoted = append(quoted, kotlinString(item))
		}
		return []string{prop + " += setOf(" + strings.Join(quoted, ", ") + ")"}
	case schema.RenderMapEntries:
		var lines []string
		for _, item := range list {
			k, v, ok := strings.Cut(item, "=")
			if !ok || strings.TrimSpace(k) == "" {
				continue
			}
			lines = append(lines, prop+"["+kotlinString(strings.TrimSpace(k))+"] = "+kotlinString(v))
		}
		return lines
	case schema.RenderSigningRef:
		return []string{prop + " = signingConfigs.getByName(" + kotlinLiteral(value) + ")"}
	default:
		return []string{prop + " = " + kotlinLiteral(value)}
	}
}

func kotlinLiteral(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case string:
		return kotlinString(v)
	case []string:
		quoted := make([]string, 0, len(v))
		for _, item := range v {
			quoted = append(quoted, kotlinString(item))
		}
		return "listOf(" + strings.Join(quoted, ", ") + ")"
	default:
		return kotlinString(fmt.Sprint(v))
	}
}

var kotlinEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// kotlinString quotes s as a Kotlin string literal with templates disabled.
func kotlinString(s string) string {
	return `"` + kotlinEscaper.Replace(s) + `"`
}
