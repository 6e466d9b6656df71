package commands

import (
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// formatTotal renders the balance as "+X", "-X" or "0".
func formatTotal(total decimal.Decimal) string {
	switch total.Sign() {
	case 1:
		return "+" + total.String()
	case -1:
		return "-" + total.Abs().String()
	default:
		return "0"
	}
}

// formatAmount renders a statement amount with its sign, e.g. "-300.50".
func formatAmount(s model.Statement) string {
	if s.Type == model.StatementExpense {
		return "-" + s.Amount.StringFixed(2)
	}
	return "+" + s.Amount.StringFixed(2)
}
