package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StatementType says which way a statement moves the balance.
type StatementType string

const (
	StatementIncome  StatementType = "income"
	StatementExpense StatementType = "expense"
)

// DateLayout is the human-readable creation date stamped on each statement,
// e.g. "Mon Oct 19 2026".
const DateLayout = "Mon Jan 02 2006"

// ParseStatementType parses "income" or "expense".
func ParseStatementType(s string) (StatementType, error) {
	switch t := StatementType(s); t {
	case StatementIncome, StatementExpense:
		return t, nil
	default:
		return "", fmt.Errorf("unknown statement type %q (want income or expense)", s)
	}
}

// Statement is one ledger entry.
type Statement struct {
	ID     string
	Name   string
	Amount decimal.Decimal // non-negative, two decimal places
	Type   StatementType
	Date   string // DateLayout
}

// Signed returns the amount with the sign applied by the statement type.
func (s Statement) Signed() decimal.Decimal {
	if s.Type == StatementExpense {
		return s.Amount.Neg()
	}
	return s.Amount
}
