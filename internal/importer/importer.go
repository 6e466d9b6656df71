// Package importer turns bank and ledger exports into statements.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

// Parser converts an export file into raw statement input.
type Parser interface {
	Parse(r io.Reader) ([]ledger.RawInput, error)
}

var parsers = map[string]Parser{
	"chase": ChaseParser{},
	"tally": TallyParser{},
}

// Formats lists the accepted format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParserFor returns the parser for format, ignoring case.
func ParserFor(format string) (Parser, error) {
	p, ok := parsers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown import format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return p, nil
}

// RowError is an input row the ledger rejected.
type RowError struct {
	Row   int // 1-based, header excluded
	Input ledger.RawInput
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (%q): %v", e.Row, e.Input.Name, e.Err)
}

// Result summarizes one import.
type Result struct {
	Appended []model.Statement
	Skipped  []RowError
}

// Import parses r and appends every row through the store, so imported rows
// pass the same validation as typed ones. Rows failing validation are skipped;
// any other error stops the import, and Result holds what was appended so far.
func Import(ctx context.Context, store *ledger.Store, p Parser, r io.Reader) (Result, error) {
	inputs, err := p.Parse(r)
	if err != nil {
		return Result{}, fmt.Errorf("parsing: %w", err)
	}

	var res Result
	for i, in := range inputs {
		st, err := store.Append(ctx, in)
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			res.Skipped = append(res.Skipped, RowError{Row: i + 1, Input: in, Err: err})
			continue
		}
		if err != nil {
			return res, fmt.Errorf("row %d: %w", i+1, err)
		}
		res.Appended = append(res.Appended, st)
	}
	return res, nil
}

// Inbox is the import/ directory of a ledger. Files dropped there are
// imported by `tally import` and then moved to import/processed/.
type Inbox struct {
	dir string
}

// NewInbox returns the inbox of the ledger at ledgerDir.
func NewInbox(ledgerDir string) Inbox {
	return Inbox{dir: filepath.Join(ledgerDir, "import")}
}

// Dir is the inbox directory.
func (b Inbox) Dir() string { return b.dir }

// ProcessedDir holds files that were already imported.
func (b Inbox) ProcessedDir() string { return filepath.Join(b.dir, "processed") }

// Pending returns the paths of CSV files waiting in the inbox, by name.
func (b Inbox) Pending() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			paths = append(paths, filepath.Join(b.dir, e.Name()))
		}
	}
	return paths, nil
}

// Import imports one inbox file and archives it. A file that fails before any
// row is appended stays in the inbox to be fixed. Once rows have been
// appended the file is archived even if a later row fails, so a rerun cannot
// append them twice.
func (b Inbox) Import(ctx context.Context, store *ledger.Store, p Parser, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", path, err)
	}
	res, importErr := Import(ctx, store, p, f)
	f.Close()

	if importErr != nil && len(res.Appended) == 0 {
		return res, importErr
	}
	if err := b.archive(path); err != nil {
		return res, errors.Join(importErr, err)
	}
	return res, importErr
}

// archive moves path into the processed directory. A name already taken
// there gets a numeric suffix: january.csv, january-1.csv, ...
func (b Inbox) archive(path string) error {
	if err := os.MkdirAll(b.ProcessedDir(), 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	name := filepath.Base(path)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	dst := filepath.Join(b.ProcessedDir(), name)
	for n := 1; ; n++ {
		if _, err := os.Stat(dst); errors.Is(err, fs.ErrNotExist) {
			break
		} else if err != nil {
			return fmt.Errorf("checking %s: %w", dst, err)
		}
		dst = filepath.Join(b.ProcessedDir(), fmt.Sprintf("%s-%d%s", stem, n, ext))
	}

	if err := os.Rename(path, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", name, err)
	}
	return nil
}
