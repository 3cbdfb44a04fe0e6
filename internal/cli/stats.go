package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/task-analyzer/internal/store"
)

func newStatsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			st := store.CollectStats(s.cfg.Storage.Backend, s.cfg.Storage.Path, s.tasks.Len(), s.tasks.NextID())
			return printJSON(cmd.OutOrStdout(), st)
		},
	}
}
