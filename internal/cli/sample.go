package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const sampleBatch = `[
  {
    "title": "Fix critical login bug",
    "due_date": "2025-11-28",
    "estimated_hours": 4,
    "importance": 9,
    "dependencies": [2, 3]
  },
  {
    "title": "Write API documentation",
    "due_date": "2025-12-05",
    "estimated_hours": 6,
    "importance": 7,
    "dependencies": [1]
  },
  {
    "title": "Update CSS styling",
    "due_date": null,
    "estimated_hours": 2,
    "importance": 5,
    "dependencies": []
  },
  {
    "title": "Implement user authentication",
    "due_date": "2025-12-10",
    "estimated_hours": 8,
    "importance": 8,
    "dependencies": []
  }
]`

func newSampleCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print a sample import batch",
		Long:  "Print a sample import batch. Pipe it into import: task-analyzer sample | task-analyzer import",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), sampleBatch)
			return err
		},
	}
}
