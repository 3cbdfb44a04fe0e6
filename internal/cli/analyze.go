package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/task-analyzer/internal/analysis"
	"github.com/rcliao/task-analyzer/internal/reconcile"
)

// analyzeOutput is the JSON shape printed by analyze.
type analyzeOutput struct {
	RequestID string   `json:"request_id"`
	Strategy  string   `json:"strategy"`
	Warnings  []string `json:"warnings,omitempty"`
	reconcile.Report
}

func newAnalyzeCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Rank tasks with the scoring service",
		Long:  "Send all tasks to the scoring service and show the top suggestions and full results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategyFlag, _ := cmd.Flags().GetString("strategy")
			top, _ := cmd.Flags().GetInt("top")

			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if strategyFlag == "" {
				strategyFlag = s.cfg.Analysis.Strategy
			}
			strategy, err := analysis.ParseStrategy(strategyFlag)
			if err != nil {
				return err
			}

			client := analysis.NewClient(s.cfg.Analysis.BaseURL, s.cfg.Analysis.Timeout, s.log)
			res, err := client.Analyze(cmd.Context(), s.tasks.List(), strategy)
			if err != nil {
				return err
			}

			report := reconcile.BuildReport(res.Tasks, top)
			if report.Dropped > 0 {
				s.log.Warn("dropped duplicate results", "count", report.Dropped, "request_id", res.RequestID)
			}

			if o.format == formatText {
				return renderReport(cmd.OutOrStdout(), res, report)
			}
			return printJSON(cmd.OutOrStdout(), analyzeOutput{
				RequestID: res.RequestID,
				Strategy:  string(res.Strategy),
				Warnings:  res.Warnings,
				Report:    report,
			})
		},
	}

	cmd.Flags().StringP("strategy", "s", "", "Strategy: smart_balance, fastest_wins, high_impact, deadline_driven")
	cmd.Flags().IntP("top", "n", reconcile.DefaultTopN, "Number of top suggestions")
	return cmd
}
