package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func newRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return zerr.Wrap(err, "task id must be an integer")
			}

			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			removed := s.tasks.Remove(cmd.Context(), id)
			s.warnUnsaved(cmd)

			fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%d,"removed":%t}`+"\n", id, removed)
			return nil
		},
	}
}
