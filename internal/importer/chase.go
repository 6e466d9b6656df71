package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

// ChaseParser reads Chase checking account CSV exports. Each row becomes one
// statement named after its description: debits (negative amounts) are
// expenses, credits are income.
type ChaseParser struct{}

// chaseColumns is the header row of a Chase checking export.
var chaseColumns = []string{"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #"}

const (
	chaseDateFormat = "01/02/2006"
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
)

func (ChaseParser) Parse(r io.Reader) ([]ledger.RawInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(chaseColumns)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading chase header: %w", err)
	}
	for _, col := range []int{chaseColDate, chaseColDesc, chaseColAmount} {
		if !strings.EqualFold(strings.TrimSpace(header[col]), chaseColumns[col]) {
			return nil, fmt.Errorf("not a chase checking export: column %d is %q, want %q", col+1, header[col], chaseColumns[col])
		}
	}

	var inputs []ledger.RawInput
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return inputs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading chase CSV: %w", err)
		}

		in, err := chaseInput(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		inputs = append(inputs, in)
	}
}

// chaseInput keeps the amount text as exported, minus its sign, so the ledger
// applies its own amount rules to it.
func chaseInput(rec []string) (ledger.RawInput, error) {
	if _, err := time.Parse(chaseDateFormat, rec[chaseColDate]); err != nil {
		return ledger.RawInput{}, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount := strings.TrimSpace(rec[chaseColAmount])
	if _, err := decimal.NewFromString(amount); err != nil {
		return ledger.RawInput{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}

	in := ledger.RawInput{
		Name: strings.TrimSpace(rec[chaseColDesc]),
		Type: model.StatementIncome,
	}
	if debit, ok := strings.CutPrefix(amount, "-"); ok {
		in.Amount = debit
		in.Type = model.StatementExpense
	} else {
		in.Amount = strings.TrimPrefix(amount, "+")
	}
	return in, nil
}
