package validate

import (
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/schema"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/version"
)

// multiDexNativeMinSdk is the first API level with native multidex support.
const multiDexNativeMinSdk = 21

// AllRules returns every built-in rule for the Android schema.
func AllRules() []Rule {
	return RulesFor(schema.Android())
}

// RulesFor returns every built-in rule, checking the version-typed options of s.
func RulesFor(s *schema.Schema) []Rule {
	var versionKeys []string
	for _, opt := range s.Options() {
		if opt.Type == schema.TypeVersion {
			versionKeys = append(versionKeys, opt.Key)
		}
	}
	return []Rule{
		SdkVersionsRule{},
		CompileSdkRule{},
		MinifySigningRule{},
		ShrinkResourcesRule{},
		DesugaringRule{},
		DependencyVersionsRule{},
		VersionFormatRule{Keys: versionKeys},
		MultiDexRule{},
		ManifestPlaceholdersRule{},
	}
}

func errorf(keys []string, format string, args ...any) Issue {
	return Issue{Severity: SeverityError, Keys: keys, Message: fmt.Sprintf(format, args...)}
}

func warningf(keys []string, format string, args ...any) Issue {
	return Issue{Severity: SeverityWarning, Keys: keys, Message: fmt.Sprintf(format, args...)}
}

// SdkVersionsRule requires targetSdk >= minSdk >= 1.
type SdkVersionsRule struct{}

func (SdkVersionsRule) Name() string { return "sdk-versions" }

func (SdkVersionsRule) Check(cfg *variant.ResolvedConfig) []Issue {
	var issues []Issue
	minSdk, hasMin := cfg.Int(schema.KeyMinSdk)
	target, hasTarget := cfg.Int(schema.KeyTargetSdk)
	if hasMin && minSdk < 1 {
		issues = append(issues, errorf([]string{schema.KeyMinSdk}, "minSdk must be at least 1, got %d", minSdk))
	}
	if hasMin && hasTarget && target < minSdk {
		issues = append(issues, errorf([]string{schema.KeyMinSdk, schema.KeyTargetSdk},
			"targetSdk %d is lower than minSdk %d", target, minSdk))
	}
	return issues
}

// CompileSdkRule warns when compiling against an older API than targeted.
type CompileSdkRule struct{}

func (CompileSdkRule) Name() string { return "compile-sdk" }

func (CompileSdkRule) Check(cfg *variant.ResolvedConfig) []Issue {
	compile, hasCompile := cfg.Int(schema.KeyCompileSdk)
	target, hasTarget := cfg.Int(schema.KeyTargetSdk)
	if hasCompile && hasTarget && compile < target {
		return []Issue{warningf([]string{schema.KeyCompileSdk, schema.KeyTargetSdk},
			"compileSdk %d is lower than targetSdk %d", compile, target)}
	}
	return nil
}

// MinifySigningRule requires a signing config when minification is on.
type MinifySigningRule struct{}

func (MinifySigningRule) Name() string { return "minify-signing" }

func (MinifySigningRule) Check(cfg *variant.ResolvedConfig) []Issue {
	if cfg.Bool(schema.KeyMinifyEnabled) && strings.TrimSpace(cfg.String(schema.KeySigningConfig)) == "" {
		return []Issue{errorf([]string{schema.KeySigningConfig},
			"minifyEnabled requires a signingConfig")}
	}
	return nil
}

// ShrinkResourcesRule requires code shrinking for resource shrinking.
type ShrinkResourcesRule struct{}

func (ShrinkResourcesRule) Name() string { return "shrink-resources" }

func (ShrinkResourcesRule) Check(cfg *variant.ResolvedConfig) []Issue {
	if cfg.Bool(schema.KeyShrinkResources) && !cfg.Bool(schema.KeyMinifyEnabled) {
		return []Issue{errorf([]string{schema.KeyMinifyEnabled, schema.KeyShrinkResources},
			"shrinkResources requires minifyEnabled")}
	}
	return nil
}

// DesugaringRule requires a versioned desugaring library when core library
// desugaring is enabled.
type DesugaringRule struct{}

func (DesugaringRule) Name() string { return "desugaring" }

func (DesugaringRule) Check(cfg *variant.ResolvedConfig) []Issue {
	if !cfg.Bool(schema.KeyCoreLibraryDesugaringEnabled) {
		return nil
	}
	keys := []string{schema.KeyCoreLibraryDesugaringEnabled, schema.KeyDesugarLibrary}
	lib := cfg.String(schema.KeyDesugarLibrary)
	if lib == "" {
		return []Issue{errorf(keys, "coreLibraryDesugaringEnabled requires a desugarLibrary dependency")}
	}
	c, err := version.ParseCoordinate(lib)
	if err != nil || c.Version == "" {
		return []Issue{errorf(keys, "desugarLibrary %q must be group:artifact:version", lib)}
	}
	return nil
}

// DependencyVersionsRule checks every dependency coordinate for a
// well-formed version.
type DependencyVersionsRule struct{}

func (DependencyVersionsRule) Name() string { return "dependency-versions" }

func (DependencyVersionsRule) Check(cfg *variant.ResolvedConfig) []Issue {
	var issues []Issue
	for _, dep := range cfg.Strings(schema.KeyDependencies) {
		if msg := checkCoordinate(dep); msg != "" {
			issues = append(issues, errorf([]string{schema.KeyDependencies}, "%s", msg))
		}
	}
	if lib := cfg.String(schema.KeyDesugarLibrary); lib != "" {
		if msg := checkCoordinate(lib); msg != "" {
			issues = append(issues, errorf([]string{schema.KeyDesugarLibrary}, "%s", msg))
		}
	}
	return issues
}

func checkCoordinate(dep string) string {
	c, err := version.ParseCoordinate(dep)
	if err != nil {
		return err.Error()
	}
	if c.Version == "" {
		return fmt.Sprintf("dependency %q has no version", dep)
	}
	if !version.IsWellFormed(c.Version) {
		return fmt.Sprintf("dependency %q has malformed version %q", dep, c.Version)
	}
	return ""
}

// VersionFormatRule checks the listed version-typed options that are set.
type VersionFormatRule struct {
	Keys []string
}

func (VersionFormatRule) Name() string { return "version-format" }

func (r VersionFormatRule) Check(cfg *variant.ResolvedConfig) []Issue {
	var issues []Issue
	for _, key := range r.Keys {
		v := cfg.String(key)
		if v != "" && !version.IsWellFormed(v) {
			issues = append(issues, errorf([]string{key}, "malformed version %q", v))
		}
	}
	return issues
}

// MultiDexRule warns when a pre-Lollipop minSdk lacks multidex.
type MultiDexRule struct{}

func (MultiDexRule) Name() string { return "multidex" }

func (MultiDexRule) Check(cfg *variant.ResolvedConfig) []Issue {
	minSdk, ok := cfg.Int(schema.KeyMinSdk)
	if ok && minSdk >= 1 && minSdk < multiDexNativeMinSdk && !cfg.Bool(schema.KeyMultiDexEnabled) {
		return []Issue{warningf([]string{schema.KeyMinSdk, schema.KeyMultiDexEnabled},
			"minSdk %d below %d usually needs multiDexEnabled", minSdk, multiDexNativeMinSdk)}
	}
	return nil
}

// ManifestPlaceholdersRule requires key=value entries.
type ManifestPlaceholdersRule struct{}

func (ManifestPlaceholdersRule) Name() string { return "manifest-placeholders" }

func (ManifestPlaceholdersRule) Check(cfg *variant.ResolvedConfig) []Issue {
	var issues []Issue
	for _, entry := range cfg.Strings(schema.KeyManifestPlaceholders) {
		if k, _, ok := strings.Cut(entry, "="); !ok || strings.TrimSpace(k) == "" {
			issues = append(issues, errorf([]string{schema.KeyManifestPlaceholders},
				"placeholder %q must be key=value", entry))
		}
	}
	return issues
}
