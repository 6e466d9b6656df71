package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tally-dev/tally/internal/model"
)

// CSVHeader is the header row of an exported ledger.
const CSVHeader = "id,date,name,type,amount"

const (
	numFields = 5
	colID     = 0
	colDate   = 1
	colName   = 2
	colType   = 3
	colAmount = 4
)

// WriteCSV writes statements (including header) in ledger order.
func WriteCSV(w io.Writer, statements []model.Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, s := range statements {
		if err := cw.Write(MarshalStatement(s)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a file written by WriteCSV.
func ReadCSV(r io.Reader) ([]model.Statement, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var statements []model.Statement
	for i, rec := range records[1:] {
		s, err := UnmarshalStatement(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		statements = append(statements, s)
	}
	return statements, nil
}

// MarshalStatement converts a Statement to a CSV row.
func MarshalStatement(s model.Statement) []string {
	row := make([]string, numFields)
	row[colID] = s.ID
	row[colDate] = s.Date
	row[colName] = s.Name
	row[colType] = string(s.Type)
	row[colAmount] = s.Amount.StringFixed(2)
	return row
}

// UnmarshalStatement converts a CSV row to a Statement.
func UnmarshalStatement(record []string) (model.Statement, error) {
	if len(record) != numFields {
		return model.Statement{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	typ, err := model.ParseStatementType(record[colType])
	if err != nil {
		return model.Statement{}, err
	}

	amount, err := parseAmount(record[colAmount])
	if err != nil {
		return model.Statement{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Statement{
		ID:     record[colID],
		Date:   record[colDate],
		Name:   record[colName],
		Type:   typ,
		Amount: amount,
	}, nil
}
