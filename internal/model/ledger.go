package model

import "github.com/shopspring/decimal"

// Ledger is the ordered statement list. The total is never stored.
type Ledger struct {
	Statements []Statement
}

// Total returns the signed sum of the ledger's statements.
func (l Ledger) Total() decimal.Decimal {
	return Total(l.Statements)
}

// Total sums statements: income adds, expense subtracts.
func Total(statements []Statement) decimal.Decimal {
	total := decimal.Zero
	for _, s := range statements {
		total = total.Add(s.Signed())
	}
	return total
}
