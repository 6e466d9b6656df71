package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name       string
		in         RawInput
		wantErr    error
		wantAmount string
		wantType   model.StatementType
	}{
		{"valid income", RawInput{Name: "Salary", Amount: "1000", Type: model.StatementIncome}, nil, "1000.00", model.StatementIncome},
		{"valid expense", RawInput{Name: "Rent", Amount: " 300.5 ", Type: model.StatementExpense}, nil, "300.50", model.StatementExpense},
		{"default type", RawInput{Name: "Gift", Amount: "20"}, nil, "20.00", model.StatementIncome},
		{"zero amount", RawInput{Name: "Free", Amount: "0"}, nil, "0.00", model.StatementIncome},
		{"rounds half up", RawInput{Name: "Tip", Amount: "0.125"}, nil, "0.13", model.StatementIncome},
		{"both missing", RawInput{}, ErrMissingName, "", ""},
		{"name missing, amount bad", RawInput{Amount: "x"}, ErrMissingName, "", ""},
		{"name missing, type bad", RawInput{Amount: "1", Type: "gift"}, ErrMissingName, "", ""},
		{"amount empty", RawInput{Name: "Tea"}, ErrMissingAmount, "", ""},
		{"amount negative", RawInput{Name: "Tea", Amount: "-0.01"}, ErrMissingAmount, "", ""},
		{"amount bad, type bad", RawInput{Name: "Tea", Amount: "x", Type: "gift"}, ErrMissingAmount, "", ""},
		{"type bad", RawInput{Name: "Tea", Amount: "1", Type: "gift"}, ErrInvalidType, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, typ, err := validateInput(tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, amount.StringFixed(2))
			assert.Equal(t, tt.wantType, typ)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	_, _, err := validateInput(RawInput{Name: "Tea", Amount: "abc"})
	require.Error(t, err)
	assert.Equal(t, `amount "abc": missing amount`, err.Error())

	_, _, err = validateInput(RawInput{})
	require.Error(t, err)
	assert.Equal(t, "name: missing name", err.Error())
}

func TestFlagsFor(t *testing.T) {
	assert.Equal(t, Flags{}, FlagsFor(nil))
	assert.Equal(t, Flags{}, FlagsFor(errors.New("disk full")))
	assert.Equal(t, Flags{MissingName: true}, FlagsFor(&ValidationError{Field: "name", Err: ErrMissingName}))
	assert.Equal(t, Flags{MissingAmount: true}, FlagsFor(&ValidationError{Field: "amount", Err: ErrMissingAmount}))
	assert.True(t, Flags{MissingAmount: true}.Any())
	assert.False(t, Flags{}.Any())
}
