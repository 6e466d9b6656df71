package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/tally-dev/tally/internal/model"
)

// snapshotRecord is the persisted shape of a statement.
type snapshotRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"` // two-decimal fixed, e.g. "300.50"
	Type   string `json:"type"`
	Date   string `json:"date"`
}

// EncodeSnapshot serializes statements in order as a JSON array.
func EncodeSnapshot(statements []model.Statement) ([]byte, error) {
	records := make([]snapshotRecord, len(statements))
	for i, s := range statements {
		records[i] = snapshotRecord{
			ID:     s.ID,
			Name:   s.Name,
			Amount: s.Amount.StringFixed(2),
			Type:   string(s.Type),
			Date:   s.Date,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot written by EncodeSnapshot. A JSON null
// decodes to an empty ledger. Any record that would break a ledger invariant
// makes the whole snapshot invalid.
func DecodeSnapshot(data []byte) ([]model.Statement, error) {
	var records []snapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	statements := make([]model.Statement, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("record %d: empty id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("record %d: duplicate id %s", i, r.ID)
		}
		seen[r.ID] = true

		if r.Name == "" {
			return nil, fmt.Errorf("record %d: empty name", i)
		}
		amount, err := parseStoredAmount(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("record %d: amount %q: %w", i, r.Amount, err)
		}
		typ, err := model.ParseStatementType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		statements = append(statements, model.Statement{
			ID:     r.ID,
			Name:   r.Name,
			Amount: amount,
			Type:   typ,
			Date:   r.Date,
		})
	}
	return statements, nil
}
