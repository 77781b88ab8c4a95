package buildvariant_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/testutil"
	"github.com/MyCarrier-DevOps/go-gradlevariant/pkg/buildvariant"

	"github.com/stretchr/testify/require"
)

const project = `
base:
  applicationId: com.example.trenix
  minSdk: 23
  packagingExcludes: ["META-INF/*"]
  dependencies:
    - androidx.work:work-runtime:2.7.1
variants:
  release:
    minifyEnabled: true
    signingConfig: release
    packagingExcludes: ["META-INF/{AL2.0,LGPL2.1}"]
  staging:
    minifyEnabled: true
  preview:
    compileSdk: 33
`

func writeProject(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolve_DefaultsToReleaseKotlin(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", project)

	result, err := buildvariant.Resolve(buildvariant.Options{Dir: dir})
	require.NoError(t, err)
	require.Equal(t, "release", result.Variant)
	require.Empty(t, result.Issues)
	require.Equal(t, []string{"META-INF/*", "META-INF/{AL2.0,LGPL2.1}"}, result.Values["packagingExcludes"])

	out := string(result.Output)
	require.Contains(t, out, `applicationId = "com.example.trenix"`)
	require.Contains(t, out, `getByName("release") {`)
	require.Contains(t, out, "isMinifyEnabled = true")
	require.Contains(t, out, `signingConfig = signingConfigs.getByName("release")`)
	require.Contains(t, out, `excludes += setOf("META-INF/*", "META-INF/{AL2.0,LGPL2.1}")`)
}

func TestResolve_NestedProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "android/buildvariants.yml", project)

	result, err := buildvariant.Resolve(buildvariant.Options{Dir: dir, Variant: "debug", Format: "yaml"})
	require.NoError(t, err)
	require.Contains(t, string(result.Output), "variant: debug")
}

func TestResolve_ValidationFailed(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", project)

	result, err := buildvariant.Resolve(buildvariant.Options{Dir: dir, Variant: "staging"})
	require.ErrorIs(t, err, buildvariant.ErrValidationFailed)
	require.NotNil(t, result)
	require.Empty(t, result.Output)
	require.Len(t, result.Issues, 1)
	require.Equal(t, "error", result.Issues[0].Severity)
	require.Equal(t, "minify-signing", result.Issues[0].Rule)
	require.Equal(t, []string{"signingConfig"}, result.Issues[0].Keys)
}

func TestResolve_StrictWarnings(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", project)

	result, err := buildvariant.Resolve(buildvariant.Options{Dir: dir, Variant: "preview"})
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	require.Equal(t, "warning", result.Issues[0].Severity)
	require.NotEmpty(t, result.Output)

	result, err = buildvariant.Resolve(buildvariant.Options{Dir: dir, Variant: "preview", Strict: true})
	require.ErrorIs(t, err, buildvariant.ErrValidationFailed)
	require.Empty(t, result.Output)
}

func TestResolve_ConfigPathsLayered(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "base.yml", project)
	writeProject(t, dir, "ci.yml", "variants:\n  release:\n    signingConfig: upload\n")

	result, err := buildvariant.Resolve(buildvariant.Options{
		Dir:         dir,
		ConfigPaths: []string{"base.yml", "ci.yml"},
		Format:      "hcl",
	})
	require.NoError(t, err)
	require.Equal(t, "upload", result.Values["signingConfig"])
	require.Contains(t, string(result.Output), `variant "release"`)
}

func TestResolve_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := buildvariant.Resolve(buildvariant.Options{Dir: dir})
	require.ErrorIs(t, err, buildvariant.ErrConfigNotFound)

	writeProject(t, dir, "buildvariants.yml", project)
	_, err = buildvariant.Resolve(buildvariant.Options{Dir: dir, Format: "groovy"})
	require.Error(t, err)

	_, err = buildvariant.Resolve(buildvariant.Options{Dir: dir, Variant: "nightly"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown variant")

	writeProject(t, dir, "buildvariants.yml", "variants:\n  release:\n    nonexistentOption: true\n")
	_, err = buildvariant.Resolve(buildvariant.Options{Dir: dir})
	require.Error(t, err)
	require.Contains(t, err.Error(), "nonexistentOption")
}

func TestResolve_GitVersion(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	sha := repo.AddCommits(4)
	repo.CreateTag("v3.1.0", sha)
	repo.WriteFile("buildvariants.yml", project)

	result, err := buildvariant.Resolve(buildvariant.Options{Dir: repo.Path(), GitVersion: true})
	require.NoError(t, err)
	require.Equal(t, 4, result.Values["versionCode"])
	require.Equal(t, "3.1.0", result.Values["versionName"])
	require.Contains(t, string(result.Output), `versionName = "3.1.0"`)
}

func TestResolve_GitVersionVariantWins(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommits(2)
	repo.WriteFile("buildvariants.yml", project+"  debug:\n    versionName: dev\n")

	result, err := buildvariant.Resolve(buildvariant.Options{Dir: repo.Path(), Variant: "debug", GitVersion: true})
	require.NoError(t, err)
	require.Equal(t, 2, result.Values["versionCode"])
	require.Equal(t, "dev", result.Values["versionName"])
}

func TestResolve_GitVersionOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", project)

	_, err := buildvariant.Resolve(buildvariant.Options{Dir: dir, GitVersion: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "opening repository")
}

func TestResolve_Logger(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", project)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := buildvariant.Resolve(buildvariant.Options{Dir: dir, Logger: logger})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "loading project file")
	require.Contains(t, buf.String(), "variant emitted")
}

func TestResolveAll(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", project)

	results, err := buildvariant.ResolveAll(context.Background(), buildvariant.Options{Dir: dir})
	require.ErrorIs(t, err, buildvariant.ErrValidationFailed)
	require.Contains(t, err.Error(), `"staging"`)
	require.Len(t, results, 4)

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Variant)
	}
	require.Equal(t, []string{"debug", "preview", "release", "staging"}, names)
	require.NotEmpty(t, results[0].Output)
	require.Empty(t, results[3].Output)
}

func TestResolveAll_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", project)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := buildvariant.ResolveAll(ctx, buildvariant.Options{Dir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResolveAll_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", "base:\n  applicationId: a.b\n")

	first, err := buildvariant.ResolveAll(context.Background(), buildvariant.Options{Dir: dir})
	require.NoError(t, err)
	second, err := buildvariant.ResolveAll(context.Background(), buildvariant.Options{Dir: dir})
	require.NoError(t, err)
	require.Len(t, first, 2)
	for i := range first {
		require.Equal(t, first[i].Output, second[i].Output)
	}
}

func TestListOptions(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "buildvariants.yml", `
options:
  - key: flavor
    type: string
    default: full
    block: android.defaultConfig
base:
  applicationId: a.b
`)

	opts, err := buildvariant.ListOptions(buildvariant.Options{Dir: dir})
	require.NoError(t, err)

	byKey := make(map[string]buildvariant.Option, len(opts))
	for _, o := range opts {
		byKey[o.Key] = o
	}
	require.Equal(t, "string", byKey["flavor"].Type)
	require.Equal(t, "full", byKey["flavor"].Default)
	require.Equal(t, "flavor", byKey["flavor"].Property)
	require.True(t, byKey["applicationId"].Required)
	require.Equal(t, "append", byKey["packagingExcludes"].Merge)
	require.Equal(t, "isMinifyEnabled", byKey["minifyEnabled"].Property)

	variants, err := buildvariant.Variants(buildvariant.Options{Dir: dir})
	require.NoError(t, err)
	require.Equal(t, []string{"debug", "release"}, variants)
}
