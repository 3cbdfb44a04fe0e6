package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/task-analyzer/internal/analysis"
)

func newStrategiesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List scoring strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.format == formatText {
				for _, st := range analysis.Strategies {
					fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", st, st.Description())
				}
				return nil
			}

			type entry struct {
				Name        string `json:"name"`
				Description string `json:"description"`
				Default     bool   `json:"default,omitempty"`
			}
			out := make([]entry, 0, len(analysis.Strategies))
			for _, st := range analysis.Strategies {
				out = append(out, entry{string(st), st.Description(), st == analysis.DefaultStrategy})
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
