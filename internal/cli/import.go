package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func newImportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import tasks from a JSON array",
		Long: "Import tasks from a JSON array (file argument or stdin). Missing fields get defaults; " +
			"tasks whose title already exists are skipped.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 && args[0] != "-" {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return zerr.Wrap(err, "read input")
			}

			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.tasks.ImportBatch(cmd.Context(), data)
			if err != nil {
				return err
			}
			s.warnUnsaved(cmd)

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"ok":       true,
				"imported": report.Imported,
				"skipped":  report.Skipped,
			})
		},
	}
}
