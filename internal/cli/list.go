package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in the order they were added",
		RunE: func(cmd *cobra.Command, args []string) error {
			idsOnly, _ := cmd.Flags().GetBool("ids-only")

			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			list := s.tasks.List()
			if idsOnly {
				for _, t := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", t.ID, t.Title)
				}
				return nil
			}
			if o.format == formatText {
				return renderTasks(cmd.OutOrStdout(), list)
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().Bool("ids-only", false, "Only output id and title")
	return cmd
}
