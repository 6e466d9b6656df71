package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name       string
		statements []Statement
		want       string
	}{
		{"empty", nil, "0"},
		{"income only", []Statement{
			{Amount: dec("10.00"), Type: StatementIncome},
			{Amount: dec("2.50"), Type: StatementIncome},
		}, "12.5"},
		{"expense only", []Statement{
			{Amount: dec("4.00"), Type: StatementExpense},
		}, "-4"},
		{"mixed", []Statement{
			{Amount: dec("1000.00"), Type: StatementIncome},
			{Amount: dec("300.50"), Type: StatementExpense},
		}, "699.5"},
		{"back to zero", []Statement{
			{Amount: dec("5.25"), Type: StatementIncome},
			{Amount: dec("5.25"), Type: StatementExpense},
		}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Total(tt.statements)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
			assert.True(t, Ledger{Statements: tt.statements}.Total().Equal(got))
		})
	}
}

func TestStatementSigned(t *testing.T) {
	assert.Equal(t, "3.00", Statement{Amount: dec("3"), Type: StatementIncome}.Signed().StringFixed(2))
	assert.Equal(t, "-3.00", Statement{Amount: dec("3"), Type: StatementExpense}.Signed().StringFixed(2))
}

func TestParseStatementType(t *testing.T) {
	got, err := ParseStatementType("income")
	require.NoError(t, err)
	assert.Equal(t, StatementIncome, got)

	got, err = ParseStatementType("expense")
	require.NoError(t, err)
	assert.Equal(t, StatementExpense, got)

	for _, bad := range []string{"", "Income", "transfer"} {
		_, err := ParseStatementType(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
