// Package buildvariant provides a public Go API for resolving Android build
// variant configurations from project files and emitting them as Gradle
// Kotlin DSL, HCL or YAML.
//
// Basic usage:
//
//	result, err := buildvariant.Resolve(buildvariant.Options{
//	    Dir:     "/path/to/project",
//	    Variant: "release",
//	})
//	os.Stdout.Write(result.Output)
//
//	results, err := buildvariant.ResolveAll(ctx, buildvariant.Options{
//	    Dir:        "/path/to/project",
//	    GitVersion: true,
//	})
package buildvariant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/config"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/emit"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/git"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/validate"
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/variant"
)

// DefaultVariant is resolved when Options.Variant is empty.
const DefaultVariant = "release"

var (
	// ErrValidationFailed is returned when a resolved configuration has
	// blocking validation issues. The Result is still returned.
	ErrValidationFailed = errors.New("validation failed")

	// ErrConfigNotFound is returned when no project file is given and none
	// is found in the project directory.
	ErrConfigNotFound = errors.New("no project file found")
)

// Options configures resolution.
type Options struct {
	// Dir is the project directory. Defaults to "." if empty.
	Dir string

	// ConfigPaths are project files applied in order, later files taking
	// precedence. If empty, the first of buildvariants.yml,
	// buildvariants.yaml, android/buildvariants.yml and
	// android/buildvariants.yaml found in Dir is used. Relative paths are
	// resolved against Dir.
	ConfigPaths []string

	// Variant is the variant to resolve. Defaults to "release". Ignored by
	// ResolveAll.
	Variant string

	// Format is the output format: "kts" (default), "hcl" or "yaml".
	Format string

	// GitVersion derives versionCode and versionName from the git history
	// of Dir. Values set explicitly by a variant still take precedence.
	GitVersion bool

	// Strict treats warnings as blocking.
	Strict bool

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Issue is a validation finding.
type Issue struct {
	// Severity is "error" or "warning".
	Severity string `json:"severity"`

	// Rule is the name of the rule that raised the issue.
	Rule string `json:"rule"`

	// Keys are the option keys involved.
	Keys []string `json:"keys"`

	// Message describes the problem.
	Message string `json:"message"`
}

// Result holds one resolved variant.
type Result struct {
	// Variant is the variant name.
	Variant string `json:"variant"`

	// Values contains every option with a concrete value, keyed by option key.
	Values map[string]any `json:"values"`

	// Issues lists all validation findings, errors first.
	Issues []Issue `json:"issues"`

	// Output is the emitted configuration. Empty when validation blocked.
	Output []byte `json:"-"`
}

// Option describes one build option of the project schema.
type Option struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Default     any    `json:"default,omitempty"`
	Merge       string `json:"merge"`
	Required    bool   `json:"required"`
	Block       string `json:"block"`
	Property    string `json:"property"`
	Render      string `json:"render"`
	Description string `json:"description,omitempty"`
}

// Resolve loads the project, resolves one variant, validates it and emits it.
func Resolve(opts Options) (*Result, error) {
	log := opts.logger()

	format, err := emit.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	project, err := loadProject(opts, log)
	if err != nil {
		return nil, err
	}

	extra, err := gitLayers(opts, log)
	if err != nil {
		return nil, err
	}

	name := opts.Variant
	if name == "" {
		name = DefaultVariant
	}
	return resolveVariant(project, name, extra, format, opts.Strict, log)
}

// ResolveAll resolves every declared variant concurrently. Results are in
// variant name order. Variants with blocking issues are still returned and the
// error wraps ErrValidationFailed.
func ResolveAll(ctx context.Context, opts Options) ([]*Result, error) {
	log := opts.logger()

	format, err := emit.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	project, err := loadProject(opts, log)
	if err != nil {
		return nil, err
	}

	extra, err := gitLayers(opts, log)
	if err != nil {
		return nil, err
	}

	names := project.VariantNames()
	results := make([]*Result, len(names))
	failures := make([]error, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := resolveVariant(project, name, extra, format, opts.Strict, log)
			if errors.Is(err, ErrValidationFailed) {
				results[i], failures[i] = res, err
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, errors.Join(failures...)
}

// ListOptions returns the options of the project schema: the built-in Android
// options plus any declared by the project files, sorted by key.
func ListOptions(opts Options) ([]Option, error) {
	project, err := loadProject(opts, opts.logger())
	if err != nil {
		return nil, err
	}

	defs := project.Schema.Options()
	out := make([]Option, 0, len(defs))
	for _, d := range defs {
		out = append(out, Option{
			Key:         d.Key,
			Type:        d.Type.String(),
			Default:     d.Default,
			Merge:       d.Merge.String(),
			Required:    d.Required,
			Block:       d.Block,
			Property:    d.PropertyName(),
			Render:      d.Render.String(),
			Description: d.Description,
		})
	}
	return out, nil
}

// Variants returns the declared variant names in lexicographic order.
func Variants(opts Options) ([]string, error) {
	project, err := loadProject(opts, opts.logger())
	if err != nil {
		return nil, err
	}
	return project.VariantNames(), nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) dir() string {
	if o.Dir == "" {
		return "."
	}
	return o.Dir
}

func loadProject(opts Options, log *slog.Logger) (*config.Project, error) {
	paths := opts.ConfigPaths
	if len(paths) == 0 {
		found := config.FindConfigFile(opts.dir())
		if found == "" {
			return nil, fmt.Errorf("%w in %s", ErrConfigNotFound, opts.dir())
		}
		paths = []string{found}
	}

	b := config.NewBuilder()
	for _, p := range paths {
		if !filepath.IsAbs(p) && len(opts.ConfigPaths) > 0 && opts.Dir != "" {
			p = filepath.Join(opts.Dir, p)
		}
		log.Debug("loading project file", "path", p)
		cfg, err := config.LoadFromFile(p)
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
		b.Add(cfg)
	}

	project, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building project: %w", err)
	}
	log.Debug("project loaded", "options", project.Schema.Len(), "variants", project.VariantNames())
	return project, nil
}

func gitLayers(opts Options, log *slog.Logger) ([]variant.Values, error) {
	if !opts.GitVersion {
		return nil, nil
	}
	repo, err := git.Open(opts.dir())
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	info, err := repo.Describe()
	if err != nil {
		return nil, fmt.Errorf("describing repository: %w", err)
	}
	log.Debug("git version", "commits", info.CommitCount, "tag", info.LatestTag)
	return []variant.Values{info.Layer()}, nil
}

func resolveVariant(project *config.Project, name string, extra []variant.Values, format emit.Format, strict bool, log *slog.Logger) (*Result, error) {
	cfg, err := project.Resolve(name, extra...)
	if err != nil {
		return nil, fmt.Errorf("resolving variant %q: %w", name, err)
	}

	issues := validate.ValidateWith(cfg, validate.RulesFor(project.Schema))
	res := &Result{
		Variant: name,
		Values:  cfg.Values(),
		Issues:  toIssues(issues),
	}
	for _, issue := range issues {
		log.Debug("validation issue", "variant", name, "severity", issue.Severity.String(), "rule", issue.Rule, "message", issue.Message)
	}

	if blocking := validate.Blocking(issues, strict); len(blocking) > 0 {
		return res, fmt.Errorf("%w: variant %q has %d blocking issue(s)", ErrValidationFailed, name, len(blocking))
	}

	e, err := emit.New(format, project.Schema)
	if err != nil {
		return nil, err
	}
	out, err := e.Emit(cfg)
	if err != nil {
		return nil, fmt.Errorf("emitting variant %q: %w", name, err)
	}
	res.Output = out
	log.Debug("variant emitted", "variant", name, "format", string(format), "bytes", len(out))
	return res, nil
}

func toIssues(issues []validate.Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, Issue{
			Severity: i.Severity.String(),
			Rule:     i.Rule,
			Keys:     append([]string(nil), i.Keys...),
			Message:  i.Message,
		})
	}
	return out
}
