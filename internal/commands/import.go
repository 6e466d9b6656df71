package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/activitylog"
	"github.com/tally-dev/tally/internal/importer"
	"github.com/tally-dev/tally/internal/ledger"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import statements from CSV exports",
		Long: "Import statements from CSV files. With no file arguments, every CSV in\n" +
			"<dir>/import/ is imported and then moved to <dir>/import/processed/.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := importer.ParserFor(format)
			if err != nil {
				return err
			}
			return runImport(cmd, opts, p, args)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "chase", "file format: chase or tally")

	return cmd
}

func runImport(cmd *cobra.Command, opts *rootOptions, p importer.Parser, files []string) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := commandContext(cmd)
	inbox := importer.NewInbox(s.dir)
	fromInbox := len(files) == 0
	if fromInbox {
		if files, err = inbox.Pending(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "Nothing to import.")
		return nil
	}

	for _, path := range files {
		var res importer.Result
		if fromInbox {
			res, err = inbox.Import(ctx, s.store, p, path)
		} else {
			res, err = importFile(ctx, s.store, p, path)
		}
		name := filepath.Base(path)

		for _, skipped := range res.Skipped {
			fmt.Fprintf(out, "  skipped %s\n", skipped.Error())
		}
		// Rows appended before a failure stay in the ledger, so they are
		// reported and recorded like a complete import.
		if err == nil || len(res.Appended) > 0 {
			fmt.Fprintf(out, "Imported %d statements from %s (%d skipped)\n", len(res.Appended), name, len(res.Skipped))
			s.record(activitylog.ActionImport, fmt.Sprintf("%d statements from %s", len(res.Appended), name), "")
		}
		if err != nil {
			return fmt.Errorf("importing %s: %w", name, err)
		}
	}

	fmt.Fprintf(out, "Total: %s\n", formatTotal(s.store.Total()))
	return nil
}

func importFile(ctx context.Context, store *ledger.Store, p importer.Parser, path string) (importer.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return importer.Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return importer.Import(ctx, store, p, f)
}
