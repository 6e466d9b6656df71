package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activitylog"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

func newAddCommand(opts *rootOptions) *cobra.Command {
	var statementType string

	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Record an income or expense statement",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := model.ParseStatementType(statementType)
			if err != nil {
				return err
			}

			// Missing arguments reach the ledger as empty fields so it
			// reports them the same way as empty input.
			in := ledger.RawInput{Type: typ}
			if len(args) > 0 {
				in.Name = args[0]
			}
			if len(args) > 1 {
				in.Amount = args[1]
			}
			return runAdd(cmd, opts, in)
		},
	}

	cmd.Flags().StringVarP(&statementType, "type", "t", string(model.StatementIncome), "statement type: income or expense")

	return cmd
}

func runAdd(cmd *cobra.Command, opts *rootOptions, in ledger.RawInput) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.store.Append(commandContext(cmd), in)
	if err != nil {
		flags := ledger.FlagsFor(err)
		switch {
		case flags.MissingName:
			return fmt.Errorf("a statement name is required: %w", err)
		case flags.MissingAmount:
			return fmt.Errorf("a non-negative amount is required: %w", err)
		}
		return err
	}

	details := fmt.Sprintf("%s (%s)", st.Name, formatAmount(st))
	s.record(activitylog.ActionAppend, details, st.ID)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Added %s %s [%s]\n", st.Name, formatAmount(st), id.Short(st.ID))
	fmt.Fprintf(out, "Total: %s\n", formatTotal(s.store.Total()))
	return nil
}
