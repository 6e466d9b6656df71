package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

var (
	// ErrMissingName is reported when the statement name is empty.
	ErrMissingName = errors.New("missing name")
	// ErrMissingAmount is reported when the amount is empty, not a number, or negative.
	ErrMissingAmount = errors.New("missing amount")
	// ErrInvalidType is returned for a statement type other than income or expense.
	ErrInvalidType = errors.New("invalid statement type")
)

// RawInput is what the user typed, before validation.
type RawInput struct {
	Name   string
	Amount string
	Type   model.StatementType // empty means income
}

// ValidationError describes the first invalid field of a RawInput.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Flags is the per-field error indication the view highlights.
type Flags struct {
	MissingName   bool
	MissingAmount bool
}

// Any reports whether any flag is set.
func (f Flags) Any() bool {
	return f.MissingName || f.MissingAmount
}

// FlagsFor converts an Append error into view flags. Non-validation errors
// produce no flags.
func FlagsFor(err error) Flags {
	return Flags{
		MissingName:   errors.Is(err, ErrMissingName),
		MissingAmount: errors.Is(err, ErrMissingAmount),
	}
}

// validateInput checks name, then amount, then type, stopping at the first
// failure. It returns the amount rounded to two places and the resolved type.
func validateInput(in RawInput) (decimal.Decimal, model.StatementType, error) {
	if strings.TrimSpace(in.Name) == "" {
		return decimal.Zero, "", &ValidationError{Field: "name", Err: ErrMissingName}
	}

	amount, err := parseAmount(in.Amount)
	if err != nil {
		return decimal.Zero, "", &ValidationError{Field: "amount", Value: in.Amount, Err: ErrMissingAmount}
	}

	typ := in.Type
	if typ == "" {
		typ = model.StatementIncome
	}
	if _, err := model.ParseStatementType(string(typ)); err != nil {
		return decimal.Zero, "", &ValidationError{Field: "type", Value: string(typ), Err: ErrInvalidType}
	}

	return amount, typ, nil
}

// Amounts are bounded before rounding: "1e20000000" parses to a tiny
// coefficient but Round would expand it to twenty million digits.
const (
	maxAmountIntDigits = 15
	maxAmountScale     = 20
)

// parseAmount accepts a non-negative decimal and rounds it to cents.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("negative")
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	exp := int64(d.Exponent())
	if exp < -maxAmountScale || int64(d.NumDigits())+exp > maxAmountIntDigits {
		return decimal.Zero, errors.New("out of range")
	}
	return d.Round(2), nil
}

// parseStoredAmount accepts only the canonical two-decimal form written by
// EncodeSnapshot, e.g. "300.50".
func parseStoredAmount(s string) (decimal.Decimal, error) {
	d, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.StringFixed(2) != s {
		return decimal.Zero, errors.New("not a two-decimal amount")
	}
	return d, nil
}
