package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/rcliao/task-analyzer/internal/model"
	"github.com/rcliao/task-analyzer/internal/tasks"
)

var errInvalidDueDate = zerr.New("due date must be YYYY-MM-DD")

func newAddCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, _ := cmd.Flags().GetString("due")
			hours, _ := cmd.Flags().GetFloat64("hours")
			importance, _ := cmd.Flags().GetInt("importance")
			deps, _ := cmd.Flags().GetString("deps")

			due = strings.TrimSpace(due)
			if due != "" {
				if _, err := time.Parse(time.DateOnly, due); err != nil {
					return zerr.With(errInvalidDueDate, "due", due)
				}
			}

			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			task, err := s.tasks.Add(cmd.Context(), tasks.Candidate{
				Title:          strings.Join(args, " "),
				DueDate:        due,
				EstimatedHours: hours,
				Importance:     importance,
				Dependencies:   deps,
			})
			if err != nil {
				return err
			}
			s.warnUnsaved(cmd)

			if o.format == formatText {
				return renderTasks(cmd.OutOrStdout(), []model.Task{task})
			}
			return printJSON(cmd.OutOrStdout(), task)
		},
	}

	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Float64P("hours", "H", 0, "Estimated hours, greater than 0 (required)")
	cmd.Flags().IntP("importance", "i", 0, "Importance from 1 to 10 (required)")
	cmd.Flags().String("deps", "", "Comma-separated ids of tasks this one depends on")

	cmd.MarkFlagRequired("hours")
	cmd.MarkFlagRequired("importance")
	return cmd
}
