// FilePath: internal/repository/files/files.checkpoint_test.go
package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *CheckpointStore {
	t.Helper()
	store, err := NewCheckpointStore(filepath.Join(t.TempDir(), "state", "last_run.json"))
	require.NoError(t, err)
	return store
}

func TestReadMissingCheckpoint(t *testing.T) {
	store := newTestStore(t)

	_, found, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Write(context.Background(), date))

	got, found, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, date, got)
}

func TestWriteDiscardsTimeComponent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write(context.Background(), time.Date(2024, 1, 15, 18, 42, 7, 0, time.UTC)))

	got, _, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestWriteOverwritesPreviousCheckpoint(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, store.Write(ctx, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)))

	got, _, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", got.Format("2006-01-02"))

	// The atomic replace must not leave temp files behind.
	entries, err := os.ReadDir(filepath.Dir(store.path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadCorruptCheckpoint(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o644))

	_, _, err := store.Read(context.Background())
	assert.Error(t, err)
}

func TestReadBadDateFormat(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte(`{"date":"15.01.2024"}`), 0o644))

	_, _, err := store.Read(context.Background())
	assert.Error(t, err)
}
