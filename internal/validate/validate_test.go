package validate

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"

	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, override variant.Values) *variant.ResolvedConfig {
	t.Helper()
	base := variant.Values{
		"applicationId": "com.example.trenix",
		"minSdk":        23,
		"targetSdk":     34,
	}
	cfg, err := variant.Resolve(base, variant.Override{Variant: "release", Values: override}, schema.Android())
	require.NoError(t, err)
	return cfg
}

func TestValidate_Consistent(t *testing.T) {
	cfg := resolve(t, variant.Values{
		"minifyEnabled":                true,
		"shrinkResources":              true,
		"signingConfig":                "release",
		"coreLibraryDesugaringEnabled": true,
		"desugarLibrary":               "com.android.tools:desugar_jdk_libs:2.0.4",
		"ndkVersion":                   "27.0.12077973",
		"dependencies": []string{
			"androidx.work:work-runtime:2.7.1",
			"com.google.android.gms:play-services-location:21.0.1",
		},
		"manifestPlaceholders": []string{"backgroundLocationPermission=Allow access?"},
	})
	require.Empty(t, Validate(cfg))
}

func TestValidate_MinifyWithoutSigning(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{"minifyEnabled": true}))

	require.Len(t, issues, 1)
	require.Equal(t, SeverityError, issues[0].Severity)
	require.Equal(t, "minify-signing", issues[0].Rule)
	require.True(t, issues[0].References(schema.KeySigningConfig))
}

func TestValidate_SdkVersions(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{"minSdk": 0, "targetSdk": 0}))
	require.Len(t, issues, 1)
	require.Equal(t, "sdk-versions", issues[0].Rule)
	require.Contains(t, issues[0].Message, "at least 1")

	issues = Validate(resolve(t, variant.Values{"minSdk": 26, "targetSdk": 24}))
	require.Len(t, issues, 1)
	require.Equal(t, "sdk-versions", issues[0].Rule)
	require.Equal(t, []string{"minSdk", "targetSdk"}, issues[0].Keys)
}

func TestValidate_CompileSdkWarning(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{"compileSdk": 33, "targetSdk": 34}))
	require.Len(t, issues, 1)
	require.Equal(t, SeverityWarning, issues[0].Severity)
	require.False(t, HasErrors(issues))
}

func TestValidate_ShrinkWithoutMinify(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{"shrinkResources": true}))
	require.Len(t, issues, 1)
	require.Equal(t, "shrink-resources", issues[0].Rule)
}

func TestValidate_Desugaring(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{"coreLibraryDesugaringEnabled": true}))
	require.Len(t, issues, 1)
	require.Equal(t, "desugaring", issues[0].Rule)
	require.True(t, issues[0].References(schema.KeyDesugarLibrary))

	issues = Validate(resolve(t, variant.Values{
		"coreLibraryDesugaringEnabled": true,
		"desugarLibrary":               "com.android.tools:desugar_jdk_libs",
	}))
	// Missing version is reported by both the desugaring and dependency rules.
	require.Len(t, issues, 2)
	require.Equal(t, "dependency-versions", issues[0].Rule)
	require.Equal(t, "desugaring", issues[1].Rule)
}

func TestValidate_MalformedDependencyVersions(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{
		"dependencies": []string{
			"androidx.work:work-runtime:2.7.1",
			"com.google.android.gms:play-services-location:21.+",
			"not-a-coordinate",
		},
	}))
	require.Len(t, issues, 2)
	for _, issue := range issues {
		require.Equal(t, SeverityError, issue.Severity)
		require.Equal(t, "dependency-versions", issue.Rule)
	}
	require.Contains(t, issues[0].Message, "21.+")
}

func TestValidate_MalformedNdkVersion(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{"ndkVersion": "r27"}))
	require.Len(t, issues, 1)
	require.Equal(t, "version-format", issues[0].Rule)
}

func TestValidate_MultiDexWarning(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{"minSdk": 19}))
	require.Len(t, issues, 1)
	require.Equal(t, SeverityWarning, issues[0].Severity)
	require.Equal(t, "multidex", issues[0].Rule)

	require.Empty(t, Validate(resolve(t, variant.Values{"minSdk": 19, "multiDexEnabled": true})))
}

func TestValidate_ManifestPlaceholders(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{"manifestPlaceholders": []string{"ok=1", "broken", "=x"}}))
	require.Len(t, issues, 2)
}

func TestValidate_ReportsEverything(t *testing.T) {
	issues := Validate(resolve(t, variant.Values{
		"minifyEnabled":                true,
		"coreLibraryDesugaringEnabled": true,
		"compileSdk":                   30,
		"dependencies":                 []string{"a:b:latest"},
	}))
	require.Equal(t, 3, Count(issues, SeverityError))
	require.Equal(t, 1, Count(issues, SeverityWarning))

	// Errors sort before warnings.
	require.Equal(t, SeverityWarning, issues[len(issues)-1].Severity)
}

func TestBlocking(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityError, Rule: "a"},
		{Severity: SeverityWarning, Rule: "b"},
	}
	require.Len(t, Blocking(issues, false), 1)
	require.Len(t, Blocking(issues, true), 2)
	require.Empty(t, Blocking(nil, true))
}

func TestValidateWith_CustomRule(t *testing.T) {
	cfg := resolve(t, nil)
	issues := ValidateWith(cfg, []Rule{ruleFunc{name: "always", issue: Issue{Severity: SeverityWarning, Message: "x"}}})
	require.Len(t, issues, 1)
	require.Equal(t, "always", issues[0].Rule)
	require.Equal(t, "warning [always] : x", issues[0].String())
}

func TestRulesFor_CustomVersionOption(t *testing.T) {
	s := schema.Android()
	require.NoError(t, s.Register(schema.BuildOption{Key: "kotlinVersion", Type: schema.TypeVersion}))

	cfg, err := variant.Resolve(variant.Values{"applicationId": "a.b"}, variant.Override{
		Variant: "debug",
		Values:  variant.Values{"kotlinVersion": "two"},
	}, s)
	require.NoError(t, err)

	issues := ValidateWith(cfg, RulesFor(s))
	require.Len(t, issues, 1)
	require.True(t, issues[0].References("kotlinVersion"))
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("WARN")
	require.NoError(t, err)
	require.Equal(t, SeverityWarning, s)

	s, err = ParseSeverity("error")
	require.NoError(t, err)
	require.Equal(t, SeverityError, s)

	_, err = ParseSeverity("fatal")
	require.Error(t, err)
}

type ruleFunc struct {
	name  string
	issue Issue
}

func (r ruleFunc) Name() string { return r.name }

func (r ruleFunc) Check(*variant.ResolvedConfig) []Issue { return []Issue{r.issue} }
