package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activitylog"
	"github.com/tally-dev/tally/internal/confirm"
)

func newClearCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var c confirm.Confirmer = confirm.Prompt{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if yes {
				c = confirm.Always(true)
			}
			return runClear(cmd, opts, c)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func runClear(cmd *cobra.Command, opts *rootOptions, c confirm.Confirmer) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	n := s.store.Len()
	cleared, err := s.store.Clear(commandContext(cmd), c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !cleared {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	s.record(activitylog.ActionClear, fmt.Sprintf("removed %d statements", n), "")
	fmt.Fprintf(out, "Cleared %d statements.\n", n)
	return nil
}
