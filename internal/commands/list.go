package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/id"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List statements and the running total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}
}

func runList(cmd *cobra.Command, opts *rootOptions) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.store.State()
	out := cmd.OutOrStdout()

	if len(state.Statements) == 0 {
		fmt.Fprintln(out, "No statements.")
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "ID\tDATE\tNAME\tAMOUNT\t")
		for _, st := range state.Statements {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", id.Short(st.ID), st.Date, st.Name, formatAmount(st))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing list: %w", err)
		}
	}

	fmt.Fprintf(out, "Total: %s\n", formatTotal(state.Total()))
	return nil
}

func newTotalCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the running total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintln(cmd.OutOrStdout(), formatTotal(s.store.Total()))
			return nil
		},
	}
}
