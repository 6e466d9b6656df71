package importer

import (
	"io"

	"github.com/tally-dev/tally/internal/ledger"
)

// TallyParser reads the CSV written by `tally export`. Imported rows get new
// IDs and dates; only name, type and amount carry over.
type TallyParser struct{}

func (TallyParser) Parse(r io.Reader) ([]ledger.RawInput, error) {
	statements, err := ledger.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	inputs := make([]ledger.RawInput, 0, len(statements))
	for _, s := range statements {
		inputs = append(inputs, ledger.RawInput{
			Name:   s.Name,
			Amount: s.Amount.StringFixed(2),
			Type:   s.Type,
		})
	}
	return inputs, nil
}
