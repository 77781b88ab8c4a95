package cmd

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-gradlevariant/pkg/buildvariant"

	"github.com/spf13/cobra"
)

func newVariantsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the declared variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}
			names, err := buildvariant.Variants(opts)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
