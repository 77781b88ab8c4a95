// Package validate checks a resolved variant configuration for internal
// consistency. Problems are reported as data; validation never fails.
package validate

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
)

// Severity classifies an Issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity name (case-insensitive).
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// Issue describes one failed consistency rule.
type Issue struct {
	Severity Severity
	Rule     string
	Keys     []string
	Message  string
}

// String returns a single-line description of the issue.
func (i Issue) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", i.Severity, i.Rule, strings.Join(i.Keys, ","), i.Message)
}

// Rule is one independent consistency check.
type Rule interface {
	// Name returns the identifier reported in Issue.Rule.
	Name() string

	// Check returns the issues found in cfg, or nil.
	Check(cfg *variant.ResolvedConfig) []Issue
}

// Validate runs every rule from AllRules against cfg.
func Validate(cfg *variant.ResolvedConfig) []Issue {
	return ValidateWith(cfg, AllRules())
}

// ValidateWith runs each rule against cfg. Every rule is evaluated so the
// caller sees all problems at once. Issues are ordered by severity, rule
// and keys.
func ValidateWith(cfg *variant.ResolvedConfig, rules []Rule) []Issue {
	var issues []Issue
	for _, r := range rules {
		for _, issue := range r.Check(cfg) {
			issue.Rule = r.Name()
			issues = append(issues, issue)
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return strings.Join(a.Keys, ",") < strings.Join(b.Keys, ",")
	})
	return issues
}

// Count returns the number of issues with the given severity.
func Count(issues []Issue, severity Severity) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	return Count(issues, SeverityError) > 0
}

// Blocking returns the issues that should fail a build: errors, plus
// warnings when strict is set.
func Blocking(issues []Issue, strict bool) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Severity == SeverityError || strict {
			out = append(out, issue)
		}
	}
	return out
}

// References reports whether the issue names key.
func (i Issue) References(key string) bool {
	return slices.Contains(i.Keys, key)
}
