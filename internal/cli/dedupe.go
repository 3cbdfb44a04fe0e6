package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDedupeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Drop tasks whose title repeats an earlier one (ignoring case)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			removed := s.tasks.Dedupe(cmd.Context())
			s.warnUnsaved(cmd)

			fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"removed":%d}`+"\n", removed)
			return nil
		},
	}
}
