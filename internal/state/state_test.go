package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLastWhenEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, ok, err := store.Last()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveAndReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	appliedAt := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(Record{Scene: "dnd", ConnectionMode: "session", Succeeded: true, AppliedAt: appliedAt}))
	require.NoError(t, store.Save(Record{Scene: "work", ConnectionMode: "per-command", FailedSteps: 1, AppliedAt: appliedAt}))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	record, ok, err := store.Last()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "work", record.Scene)
	require.Equal(t, "per-command", record.ConnectionMode)
	require.False(t, record.Succeeded)
	require.Equal(t, 1, record.FailedSteps)
	require.True(t, appliedAt.Equal(record.AppliedAt))
}
