package cmd

import (
	"errors"

	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/output"
	"github.com/MyCarrier-DevOps/go-gradlevariant/pkg/buildvariant"

	"github.com/spf13/cobra"
)

func newValidateCmd(f *flags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every variant, or only the one named by --variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}

			var results []*buildvariant.Result
			if f.variant != "" {
				var res *buildvariant.Result
				res, err = buildvariant.Resolve(opts)
				if res != nil {
					results = []*buildvariant.Result{res}
				}
			} else {
				results, err = buildvariant.ResolveAll(cmd.Context(), opts)
			}
			if err != nil && !errors.Is(err, buildvariant.ErrValidationFailed) {
				return err
			}

			reports := output.Reports(results, f.strict)
			if asJSON {
				if werr := output.WriteJSON(cmd.OutOrStdout(), reports); werr != nil {
					return werr
				}
			} else if werr := output.WriteReport(cmd.OutOrStdout(), reports); werr != nil {
				return werr
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write the report as JSON")
	return cmd
}
