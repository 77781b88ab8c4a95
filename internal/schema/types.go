// Package schema defines the typed set of build options a variant may set,
// their defaults, merge behavior and where the Gradle emitter places them.
package schema

import (
	"fmt"
	"strings"
)

// OptionType is the declared value type of a BuildOption.
type OptionType int

const (
	TypeBool OptionType = iota
	TypeInt
	TypeVersion
	TypeString
	TypeStringList
)

func (t OptionType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeVersion:
		return "version"
	case TypeString:
		return "string"
	case TypeStringList:
		return "list"
	default:
		return "unknown"
	}
}

// ParseOptionType parses a type name (case-insensitive).
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(s) {
	case "bool", "boolean":
		return TypeBool, nil
	case "int", "integer":
		return TypeInt, nil
	case "version", "version-string":
		return TypeVersion, nil
	case "string":
		return TypeString, nil
	case "list", "string-list", "list-of-strings":
		return TypeStringList, nil
	default:
		return 0, fmt.Errorf("unknown option type %q", s)
	}
}

// MergeMode controls how an override layer combines with the value below it.
type MergeMode int

const (
	// MergeReplace makes the override replace the lower value entirely.
	MergeReplace MergeMode = iota
	// MergeAppend concatenates list values, dropping duplicates.
	MergeAppend
)

func (m MergeMode) String() string {
	switch m {
	case MergeReplace:
		return "replace"
	case MergeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// ParseMergeMode parses a merge mode name (case-insensitive).
func ParseMergeMode(s string) (MergeMode, error) {
	switch strings.ToLower(s) {
	case "", "replace":
		return MergeReplace, nil
	case "append":
		return MergeAppend, nil
	default:
		return 0, fmt.Errorf("unknown merge mode %q", s)
	}
}

// RenderKind selects how the Gradle emitter writes an option.
type RenderKind int

const (
	// RenderAssign writes `property = literal`.
	RenderAssign RenderKind = iota
	// RenderCall writes `property("x")` once per list element, or once for a scalar.
	RenderCall
	// RenderSetAppend writes `property += setOf("a", "b")`.
	RenderSetAppend
	// RenderMapEntries writes `property["k"] = "v"` for each `k=v` element.
	RenderMapEntries
	// RenderSigningRef writes `property = signingConfigs.getByName("x")`.
	RenderSigningRef
	// RenderProjectCall writes `property(project(":x"))` once per element.
	RenderProjectCall
	// RenderFileCall writes one `property("a", "b")` call. Elements prefixed
	// with DefaultFilePrefix name a file shipped with the Android Gradle
	// plugin and are written as getDefaultProguardFile("name").
	RenderFileCall
)

// DefaultFilePrefix marks an Android Gradle plugin default file in a
// RenderFileCall list, e.g. "@default/proguard-android-optimize.txt".
const DefaultFilePrefix = "@default/"

func (k RenderKind) String() string {
	switch k {
	case RenderAssign:
		return "assign"
	case RenderCall:
		return "call"
	case RenderSetAppend:
		return "set-append"
	case RenderMapEntries:
		return "map-entries"
	case RenderSigningRef:
		return "signing-ref"
	case RenderProjectCall:
		return "project-call"
	case RenderFileCall:
		return "file-call"
	default:
		return "unknown"
	}
}

// ParseRenderKind parses a render kind name (case-insensitive).
func ParseRenderKind(s string) (RenderKind, error) {
	switch strings.ToLower(s) {
	case "", "assign":
		return RenderAssign, nil
	case "call":
		return RenderCall, nil
	case "set-append":
		return RenderSetAppend, nil
	case "map-entries":
		return RenderMapEntries, nil
	case "signing-ref":
		return RenderSigningRef, nil
	case "project-call":
		return RenderProjectCall, nil
	case "file-call":
		return RenderFileCall, nil
	default:
		return 0, fmt.Errorf("unknown render kind %q", s)
	}
}
