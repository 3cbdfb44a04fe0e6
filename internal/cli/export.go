package cli

import (
	"github.com/spf13/cobra"
)

func newExportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export tasks as JSON",
		Long:  "Export tasks as a JSON array that import accepts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return printJSON(cmd.OutOrStdout(), s.tasks.List())
		},
	}
}
