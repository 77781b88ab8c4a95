package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MyCarrier-DevOps/go-gradlevariant/pkg/buildvariant"
)

// Report is the validation outcome of one variant.
type Report struct {
	Variant string               `json:"variant"`
	Valid   bool                 `json:"valid"`
	Issues  []buildvariant.Issue `json:"issues"`
}

// Reports summarizes results. A variant is valid when it has no errors, or
// no issues at all when strict is set.
func Reports(results []*buildvariant.Result, strict bool) []Report {
	out := make([]Report, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		issues := r.Issues
		if issues == nil {
			issues = []buildvariant.Issue{}
		}
		out = append(out, Report{
			Variant: r.Variant,
			Valid:   blocking(issues, strict) == 0,
			Issues:  issues,
		})
	}
	return out
}

func blocking(issues []buildvariant.Issue, strict bool) int {
	n := 0
	for _, i := range issues {
		if strict || i.Severity == "error" {
			n++
		}
	}
	return n
}

// WriteReport writes one summary line per variant followed by its issues.
func WriteReport(w io.Writer, reports []Report) error {
	for _, r := range reports {
		errs, warns := 0, 0
		for _, i := range r.Issues {
			if i.Severity == "error" {
				errs++
			} else {
				warns++
			}
		}
		status := "ok"
		if !r.Valid {
			status = "failed"
		}
		if _, err := fmt.Fprintf(w, "%s: %s (%d error(s), %d warning(s))\n", r.Variant, status, errs, warns); err != nil {
			return err
		}
		if err := WriteIssues(w, r.Issues); err != nil {
			return err
		}
	}
	return nil
}

// WriteIssues writes one indented line per issue.
func WriteIssues(w io.Writer, issues []buildvariant.Issue) error {
	for _, i := range issues {
		if _, err := fmt.Fprintf(w, "  %-7s [%s] %s: %s\n",
			i.Severity, i.Rule, FormatValue(i.Keys), i.Message); err != nil {
			return err
		}
	}
	return nil
}

// WriteOptions writes the schema as an aligned table.
func WriteOptions(w io.Writer, opts []buildvariant.Option) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTYPE\tMERGE\tREQUIRED\tDEFAULT\tBLOCK")
	for _, o := range opts {
		required := ""
		if o.Required {
			required = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.Key, o.Type, o.Merge, required, FormatValue(o.Default), o.Block)
	}
	return tw.Flush()
}
