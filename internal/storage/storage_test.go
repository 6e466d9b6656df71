package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/config"
)

// exerciseSlot runs the contract every backend must satisfy.
func exerciseSlot(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	_, err := slot.Read(ctx)
	require.ErrorIs(t, err, ErrNotFound, "fresh slot should be empty")

	require.NoError(t, slot.Write(ctx, []byte(`[1]`)))
	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	require.NoError(t, slot.Write(ctx, []byte(`[1,2]`)))
	got, err = slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got), "last write wins")

	require.NoError(t, slot.Remove(ctx))
	_, err = slot.Read(ctx)
	require.ErrorIs(t, err, ErrNotFound, "removed slot should be absent")

	require.NoError(t, slot.Remove(ctx), "removing an absent key is not an error")
}

func TestMemorySlot(t *testing.T) {
	slot := NewMemorySlot()
	exerciseSlot(t, slot)
	assert.False(t, slot.Exists())
}

func TestMemorySlot_CopiesData(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	data := []byte("abc")
	require.NoError(t, slot.Write(ctx, data))
	data[0] = 'x'

	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileSlot(t *testing.T) {
	exerciseSlot(t, NewFileSlot(t.TempDir(), "statements"))
}

func TestFileSlot_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	slot := NewFileSlot(dir, "statements")
	assert.Equal(t, filepath.Join(dir, "statements.json"), slot.Path())

	require.NoError(t, slot.Write(context.Background(), []byte("[]")))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "statements.json", entries[0].Name())

	// Remove deletes the file itself.
	require.NoError(t, slot.Remove(context.Background()))
	_, err = os.Stat(slot.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteSlot(t *testing.T) {
	slot, err := NewSQLiteSlot(filepath.Join(t.TempDir(), "db", "tally.db"), "statements")
	require.NoError(t, err)
	defer slot.Close()

	exerciseSlot(t, slot)
}

func TestSQLiteSlot_ReopenKeepsValue(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tally.db")

	slot, err := NewSQLiteSlot(path, "statements")
	require.NoError(t, err)
	require.NoError(t, slot.Write(ctx, []byte(`["a"]`)))
	require.NoError(t, slot.Close())

	// Second open re-runs migrations (no change) and sees the row.
	slot, err = NewSQLiteSlot(path, "statements")
	require.NoError(t, err)
	defer slot.Close()

	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(got))

	// Keys are independent.
	other, err := NewSQLiteSlot(path, "other")
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Read(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisSlot(t *testing.T) {
	addr := os.Getenv("TALLY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TALLY_TEST_REDIS_ADDR not set, skipping redis test")
	}

	slot := NewRedisSlot(RedisOptions{Addr: addr, Namespace: "tally-test"}, t.Name())
	defer slot.Close()
	require.NoError(t, slot.Ping(context.Background()))
	assert.Equal(t, "tally-test:"+t.Name(), slot.Key())

	exerciseSlot(t, slot)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := config.Default().Storage
	slot, err := Open(ctx, dir, cfg)
	require.NoError(t, err)
	require.IsType(t, &FileSlot{}, slot)
	assert.Equal(t, filepath.Join(dir, "data", "statements.json"), slot.(*FileSlot).Path())

	cfg.Backend = config.BackendMemory
	slot, err = Open(ctx, dir, cfg)
	require.NoError(t, err)
	assert.IsType(t, &MemorySlot{}, slot)

	cfg.Backend = config.BackendSQLite
	slot, err = Open(ctx, dir, cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSlot{}, slot)
	require.NoError(t, slot.Close())
	_, err = os.Stat(filepath.Join(dir, "data", "tally.db"))
	assert.NoError(t, err)

	cfg.Backend = "floppy"
	_, err = Open(ctx, dir, cfg)
	assert.Error(t, err)
}
