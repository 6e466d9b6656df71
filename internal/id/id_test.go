package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := New()
		require.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}

func TestNew_Parses(t *testing.T) {
	got := New()
	parsed, err := Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, parsed)
}

func TestParse(t *testing.T) {
	got, err := Parse("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
	require.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", got)
}

func TestParse_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"2025-01-001a",
	}
	for _, input := range badInputs {
		_, err := Parse(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", "6ba7b810"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Short(tt.input))
	}
}
