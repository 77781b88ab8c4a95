package config

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"

	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, data string) *Config {
	t.Helper()
	cfg, err := LoadFromBytes([]byte(data))
	require.NoError(t, err)
	return cfg
}

func TestBuilder_NoConfigs(t *testing.T) {
	p, err := NewBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, []string{"debug", "release"}, p.VariantNames())
	require.Empty(t, p.Base)

	// applicationId is required and nothing sets it.
	_, err = p.Resolve("debug")
	require.ErrorIs(t, err, schema.ErrIncompleteConfig)
}

func TestBuilder_NilConfig(t *testing.T) {
	p, err := NewBuilder().Add(nil).Build()
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestBuilder_FullProject(t *testing.T) {
	p, err := NewBuilder().Add(mustLoad(t, trenixProject)).Build()
	require.NoError(t, err)
	require.Equal(t, []string{"debug", "profile", "release"}, p.VariantNames())
	require.True(t, p.Schema.Has("flavor"))

	release, err := p.Resolve("release")
	require.NoError(t, err)
	require.True(t, release.Bool("minifyEnabled"))
	require.True(t, release.Bool("shrinkResources"))
	require.Equal(t, "debug", release.String("signingConfig"))
	require.Equal(t, "27.0.12077973", release.String("ndkVersion"))
	require.Equal(t, "full", release.String("flavor"))
	require.Equal(t, []string{"META-INF/*", "META-INF/{AL2.0,LGPL2.1}"}, release.Strings("packagingExcludes"))

	debug, err := p.Resolve("debug")
	require.NoError(t, err)
	require.False(t, debug.Bool("minifyEnabled"))
	require.Equal(t, []string{"META-INF/*"}, debug.Strings("packagingExcludes"))

	profile, err := p.Resolve("profile")
	require.NoError(t, err)
	require.Equal(t, "profile", profile.Variant())
}

func TestBuilder_LaterFilesWin(t *testing.T) {
	first := mustLoad(t, `
base:
  applicationId: com.example.trenix
  targetSdk: 33
variants:
  release:
    minifyEnabled: true
    signingConfig: debug
`)
	second := mustLoad(t, `
base:
  targetSdk: 34
variants:
  release:
    signingConfig: upload
`)
	p, err := NewBuilder().Add(first).Add(second).Build()
	require.NoError(t, err)

	layers, err := p.Layers("release")
	require.NoError(t, err)
	require.Len(t, layers, 2)

	cfg, err := p.Resolve("release")
	require.NoError(t, err)
	target, _ := cfg.Int("targetSdk")
	require.Equal(t, 34, target)
	require.Equal(t, "com.example.trenix", cfg.String("applicationId"))
	require.Equal(t, "upload", cfg.String("signingConfig"))
	require.True(t, cfg.Bool("minifyEnabled"))
}

func TestBuilder_DuplicateOption(t *testing.T) {
	cfg := mustLoad(t, `
options:
  - key: minSdk
    type: int
`)
	_, err := NewBuilder().Add(cfg).Build()
	require.ErrorIs(t, err, schema.ErrDuplicateKey)
}

func TestBuilder_DuplicateOptionAcrossFiles(t *testing.T) {
	cfg := mustLoad(t, "options:\n  - {key: flavor, type: string}\n")
	_, err := NewBuilder().Add(cfg).Add(cfg).Build()
	require.ErrorIs(t, err, schema.ErrDuplicateKey)
}

func TestBuilder_UnknownKeyInVariant(t *testing.T) {
	cfg := mustLoad(t, `
base:
  applicationId: a.b
variants:
  release:
    - nonexistentOption: true
`)
	_, err := NewBuilder().Add(cfg).Build()
	require.ErrorIs(t, err, schema.ErrUnknownKey)
	require.Contains(t, err.Error(), `variant "release" layer 0`)
}

func TestBuilder_UnknownKeyInBase(t *testing.T) {
	cfg := mustLoad(t, "base:\n  compileSdkVersion: 34\n")
	_, err := NewBuilder().Add(cfg).Build()
	require.ErrorIs(t, err, schema.ErrUnknownKey)
	require.Contains(t, err.Error(), "base")
}

func TestProject_UnknownVariant(t *testing.T) {
	p, err := NewBuilder().Build()
	require.NoError(t, err)

	_, err = p.Resolve("staging")
	require.ErrorIs(t, err, ErrUnknownVariant)
	_, err = p.Layers("staging")
	require.ErrorIs(t, err, ErrUnknownVariant)
}

func TestProject_ExtraLayersBelowVariant(t *testing.T) {
	cfg := mustLoad(t, `
base:
  applicationId: a.b
  versionCode: 3
variants:
  release:
    versionName: "2.0"
`)
	p, err := NewBuilder().Add(cfg).Build()
	require.NoError(t, err)

	resolved, err := p.Resolve("release", variant.Values{"versionCode": 42, "versionName": "1.4.0"})
	require.NoError(t, err)
	code, _ := resolved.Int("versionCode")
	require.Equal(t, 42, code)
	require.Equal(t, "2.0", resolved.String("versionName"))
}

func TestProject_UnquotedVersionRejected(t *testing.T) {
	p, err := NewBuilder().Add(mustLoad(t, "base:\n  applicationId: a.b\n  ndkVersion: 27.0\n")).Build()
	require.NoError(t, err)

	_, err = p.Resolve("release")
	require.ErrorIs(t, err, schema.ErrTypeMismatch)
	require.Contains(t, err.Error(), "ndkVersion")
}

func TestBuilder_NullBaseValueKeepsEarlierFile(t *testing.T) {
	first := mustLoad(t, "base:\n  applicationId: a.b\n  minSdk: 26\n")
	second := mustLoad(t, "base:\n  minSdk: ~\n  targetSdk: 33\n")

	p, err := NewBuilder().Add(first).Add(second).Build()
	require.NoError(t, err)
	require.Equal(t, 26, p.Base["minSdk"])

	cfg, err := p.Resolve("release")
	require.NoError(t, err)
	minSdk, _ := cfg.Int("minSdk")
	require.Equal(t, 26, minSdk)
	target, _ := cfg.Int("targetSdk")
	require.Equal(t, 33, target)
}

func TestBuilder_NullUnknownBaseKey(t *testing.T) {
	_, err := NewBuilder().Add(mustLoad(t, "base:\n  compileSdkVersion: ~\n")).Build()
	require.ErrorIs(t, err, schema.ErrUnknownKey)
}
