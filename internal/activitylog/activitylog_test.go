package activitylog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)

func appendEntry() Entry {
	return Entry{
		Time:        testTime,
		Action:      ActionAppend,
		StatementID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		Summary:     "Salary (+1000.00)",
		Total:       decimal.RequireFromString("1000"),
		Commit:      "abc1234",
	}
}

func TestRecord_NewLog(t *testing.T) {
	log := New(t.TempDir())
	require.NoError(t, log.Record(appendEntry()))

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "time,action,statement_id,summary,total,commit", lines[0])
	assert.Equal(t, "2026-10-19T10:30:00Z,append,6ba7b810-9dad-11d1-80b4-00c04fd430c8,Salary (+1000.00),1000.00,abc1234", lines[1])
}

func TestRecord_AppendsWithoutRepeatingHeader(t *testing.T) {
	log := New(t.TempDir())
	require.NoError(t, log.Record(appendEntry()))
	require.NoError(t, log.Record(Entry{
		Time:    testTime.Add(time.Minute),
		Action:  ActionClear,
		Summary: "removed 1 statements",
		Total:   decimal.Zero,
	}))

	entries, err := log.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionAppend, entries[0].Action)
	assert.Equal(t, ActionClear, entries[1].Action)
	assert.True(t, entries[1].Total.IsZero())
	assert.Empty(t, entries[1].StatementID)

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "statement_id"))
}

func TestRecord_EmptyFileGetsHeader(t *testing.T) {
	log := New(t.TempDir())
	require.NoError(t, os.MkdirAll(filepath.Dir(log.Path()), 0o755))
	require.NoError(t, os.WriteFile(log.Path(), nil, 0o644))

	require.NoError(t, log.Record(appendEntry()))
	entries, err := log.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEntries_RoundTrip(t *testing.T) {
	log := New(t.TempDir())
	original := appendEntry()
	original.Summary = `Rent, "flat 2" (-300.50)`
	original.Total = decimal.RequireFromString("-300.5")
	require.NoError(t, log.Record(original))

	entries, err := log.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got := entries[0]
	assert.True(t, original.Time.Equal(got.Time))
	assert.Equal(t, original.Summary, got.Summary)
	assert.Equal(t, original.StatementID, got.StatementID)
	assert.Equal(t, original.Commit, got.Commit)
	assert.Equal(t, "-300.50", got.Total.StringFixed(2))
}

func TestEntries_Missing(t *testing.T) {
	entries, err := New(t.TempDir()).Entries()
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestEntries_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad time", "yesterday,append,,x,1.00,\n", "parsing time"},
		{"bad action", "2026-10-19T10:30:00Z,undo,,x,1.00,\n", "unknown action"},
		{"bad total", "2026-10-19T10:30:00Z,clear,,x,lots,\n", "parsing total"},
		{"exponent total", "2026-10-19T10:30:00Z,clear,,x,1e20000000,\n", "parsing total"},
		{"short row", "2026-10-19T10:30:00Z,clear\n", "reading activity log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(t.TempDir())
			require.NoError(t, log.Record(appendEntry()))
			f, err := os.OpenFile(log.Path(), os.O_APPEND|os.O_WRONLY, 0)
			require.NoError(t, err)
			_, err = f.WriteString(tt.body)
			require.NoError(t, err)
			require.NoError(t, f.Close())

			_, err = log.Entries()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
