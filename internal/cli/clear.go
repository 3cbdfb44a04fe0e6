package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

var (
	errNothingToClear = zerr.New("no tasks to clear")
	errClearAborted   = zerr.New("clear aborted")
)

func newClearCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all tasks and restart ids at 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")

			s, err := o.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			n := s.tasks.Len()
			if n == 0 {
				return errNothingToClear
			}
			if !yes && !confirm(cmd, fmt.Sprintf("Clear all %d tasks? [y/N] ", n)) {
				return errClearAborted
			}

			s.tasks.Clear(cmd.Context())
			s.warnUnsaved(cmd)

			fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"cleared":%d}`+"\n", n)
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
