package confirm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlways(t *testing.T) {
	ok, err := Always(true).Confirm("sure?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Always(false).Confirm("sure?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  YES  \n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := Prompt{In: strings.NewReader(tt.input), Out: &out}
		got, err := p.Confirm("Clear?")
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Clear? [y/N] ", out.String())
	}
}
