// Package activitylog records every change made to a ledger, with the total
// it left behind, in logs/activity-log.csv.
package activitylog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// Action is the kind of ledger change.
type Action string

const (
	ActionAppend Action = "append"
	ActionClear  Action = "clear"
	ActionImport Action = "import"
)

func parseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionAppend, ActionClear, ActionImport:
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Entry is one change. StatementID is set only for appends; Commit only when
// the change was committed to git.
type Entry struct {
	Time        time.Time
	Action      Action
	StatementID string
	Summary     string
	Total       decimal.Decimal // ledger total after the change
	Commit      string
}

// Columns is the header row of the log.
var Columns = []string{"time", "action", "statement_id", "summary", "total", "commit"}

func (e Entry) record() []string {
	return []string{
		e.Time.UTC().Format(time.RFC3339),
		string(e.Action),
		e.StatementID,
		e.Summary,
		e.Total.StringFixed(2),
		e.Commit,
	}
}

func parseEntry(rec []string) (Entry, error) {
	ts, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing time %q: %w", rec[0], err)
	}
	action, err := parseAction(rec[1])
	if err != nil {
		return Entry{}, err
	}
	// Totals are written with exactly two decimals; anything else, such as an
	// exponent form, did not come from Record.
	total, err := decimal.NewFromString(rec[4])
	if err == nil && total.Exponent() != -2 {
		err = errors.New("not a two-decimal amount")
	}
	if err != nil {
		return Entry{}, fmt.Errorf("parsing total %q: %w", rec[4], err)
	}
	return Entry{
		Time:        ts,
		Action:      action,
		StatementID: rec[2],
		Summary:     rec[3],
		Total:       total,
		Commit:      rec[5],
	}, nil
}

// Log is the activity log of one ledger directory.
type Log struct {
	path string
}

// New returns the log of the ledger at ledgerDir. Nothing is created until
// the first Record.
func New(ledgerDir string) *Log {
	return &Log{path: filepath.Join(ledgerDir, "logs", "activity-log.csv")}
}

// Path is the CSV file backing the log.
func (l *Log) Path() string { return l.path }

// Record appends e to the log, writing the header into a new or empty file.
func (l *Log) Record(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat activity log: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(Columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := cw.Write(e.record()); err != nil {
		return fmt.Errorf("writing %s entry: %w", e.Action, err)
	}
	cw.Flush()
	return cw.Error()
}

// Entries returns the log oldest first. A log that was never written is empty.
func (l *Log) Entries() ([]Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(Columns)
	if _, err := cr.Read(); errors.Is(err, io.EOF) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading activity log header: %w", err)
	}

	var entries []Entry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading activity log: %w", err)
		}
		e, err := parseEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("activity log line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}
