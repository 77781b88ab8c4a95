package cmd

import (
	"github.com/MyCarrier-DevOps/go-gradlevariant/internal/output"
	"github.com/MyCarrier-DevOps/go-gradlevariant/pkg/buildvariant"

	"github.com/spf13/cobra"
)

func newSchemaCmd(f *flags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "List the build options known to the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}
			defs, err := buildvariant.ListOptions(opts)
			if err != nil {
				return err
			}
			if asJSON {
				return output.WriteJSON(cmd.OutOrStdout(), defs)
			}
			return output.WriteOptions(cmd.OutOrStdout(), defs)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write the schema as JSON")
	return cmd
}
