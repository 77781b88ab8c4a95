// Example program demonstrating the buildvariant library API.
//
// Run from a project directory containing buildvariants.yml:
//
//	go run ./example/
//
// Derive versionCode and versionName from git history:
//
//	GIT_VERSION=1 go run ./example/
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/MyCarrier-DevOps/go-gradlevariant/pkg/buildvariant"
)

func main() {
	opts := buildvariant.Options{
		Dir:        ".",
		GitVersion: os.Getenv("GIT_VERSION") != "",
	}

	results, err := buildvariant.ResolveAll(context.Background(), opts)
	if err != nil && !errors.Is(err, buildvariant.ErrValidationFailed) {
		log.Fatalf("resolving variants failed: %v", err)
	}

	for _, r := range results {
		printVariant(r)
	}
}

func printVariant(result *buildvariant.Result) {
	fmt.Printf("=== %s ===\n", result.Variant)

	keys := make([]string, 0, len(result.Values))
	for k := range result.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-30s %v\n", k, result.Values[k])
	}
	for _, issue := range result.Issues {
		fmt.Printf("%-30s %s: %s\n", "("+issue.Severity+")", issue.Rule, issue.Message)
	}
	fmt.Println()
}
