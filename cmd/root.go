package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/output"
	"github.com/MyCarrier-DevOps/go-gradlevariant/pkg/buildvariant"

	"github.com/spf13/cobra"
)

// flags holds the values of the command line flags of one command tree.
type flags struct {
	path       string
	configs    []string
	variant    string
	strict     bool
	gitVersion bool
	verbosity  string

	output     string
	write      string
	showValue  string
	showValues bool
}

// newRootCmd builds the gradlevariant command tree.
func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "gradlevariant",
		Short: "Resolve Android build variant configuration",
		Long: "gradlevariant layers per-variant overrides over a shared base configuration, " +
			"validates the result and emits it as Gradle Kotlin DSL, HCL or YAML.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Default action is resolve and emit.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resolveRunE(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.path, "path", "p", ".", "path to the Android project")
	pf.StringArrayVar(&f.configs, "config", nil, "project file, repeatable; later files win (default: auto-detect)")
	pf.StringVar(&f.variant, "variant", "", "variant to resolve (default: release)")
	pf.BoolVar(&f.strict, "strict", false, "treat validation warnings as errors")
	pf.BoolVar(&f.gitVersion, "git-version", false, "derive versionCode and versionName from git history")
	pf.StringVarP(&f.verbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")

	root.Flags().StringVarP(&f.output, "output", "o", "kts", "output format: kts, hcl, yaml")
	root.Flags().StringVarP(&f.write, "write", "w", "", "write output to a file instead of stdout")
	root.Flags().StringVar(&f.showValue, "show-value", "", "print a single resolved value (e.g. minSdk) instead of emitting")
	root.Flags().BoolVar(&f.showValues, "show-values", false, "print all resolved values as key=value instead of emitting")

	root.AddCommand(
		newValidateCmd(f),
		newSchemaCmd(f),
		newVariantsCmd(f),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options converts the flags to library options. Config paths are made
// absolute so they stay relative to the working directory.
func (f *flags) options(cmd *cobra.Command) (buildvariant.Options, error) {
	configs := make([]string, 0, len(f.configs))
	for _, c := range f.configs {
		abs, err := filepath.Abs(c)
		if err != nil {
			return buildvariant.Options{}, fmt.Errorf("resolving config path %s: %w", c, err)
		}
		configs = append(configs, abs)
	}

	return buildvariant.Options{
		Dir:         f.path,
		ConfigPaths: configs,
		Variant:     f.variant,
		Format:      f.output,
		GitVersion:  f.gitVersion,
		Strict:      f.strict,
		Logger:      newLogger(f.verbosity, cmd.ErrOrStderr()),
	}, nil
}

func resolveRunE(cmd *cobra.Command, f *flags) error {
	opts, err := f.options(cmd)
	if err != nil {
		return err
	}

	result, err := buildvariant.Resolve(opts)
	if result != nil && len(result.Issues) > 0 {
		if werr := output.WriteIssues(cmd.ErrOrStderr(), result.Issues); werr != nil {
			return werr
		}
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case f.showValue != "":
		return output.WriteValue(w, result.Values, f.showValue)
	case f.showValues:
		return output.WriteValues(w, result.Values)
	case f.write != "":
		if err := os.WriteFile(f.write, result.Output, 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		opts.Logger.Info("wrote variant", "variant", result.Variant, "path", f.write)
		return nil
	default:
		_, err := w.Write(result.Output)
		return err
	}
}
