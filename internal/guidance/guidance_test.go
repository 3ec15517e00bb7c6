package guidance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/emerginginv/trace-aid-sub006/internal/storage"
)

func TestFreshTrackerShowsEverything(t *testing.T) {
	tr, err := NewTracker(storage.NewMemStore(), "guidance")
	require.NoError(t, err)

	require.False(t, tr.Dismissed("cases.intro"))
	_, ok := tr.DismissedAt("cases.intro")
	require.False(t, ok)
}

func TestDismissPersistsAcrossReload(t *testing.T) {
	store := storage.NewMemStore()
	tr, err := NewTracker(store, "guidance")
	require.NoError(t, err)

	require.NoError(t, tr.Dismiss("cases.intro"))
	require.True(t, tr.Dismissed("cases.intro"))

	reloaded, err := NewTracker(store, "guidance")
	require.NoError(t, err)
	require.True(t, reloaded.Dismissed("cases.intro"))
	require.False(t, reloaded.Dismissed("billing.intro"))
}

func TestDismissKeepsFirstTimestamp(t *testing.T) {
	tr, err := NewTracker(storage.NewMemStore(), "guidance")
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return base }
	require.NoError(t, tr.Dismiss("cases.intro"))

	tr.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, tr.Dismiss("cases.intro"))

	at, ok := tr.DismissedAt("cases.intro")
	require.True(t, ok)
	require.Equal(t, base, at)
}

func TestRestoreBringsTipBack(t *testing.T) {
	store := storage.NewMemStore()
	tr, err := NewTracker(store, "guidance")
	require.NoError(t, err)

	require.NoError(t, tr.Dismiss("cases.intro"))
	require.NoError(t, tr.Restore("cases.intro"))
	require.False(t, tr.Dismissed("cases.intro"))

	// Restoring something never dismissed changes nothing.
	require.NoError(t, tr.Restore("billing.intro"))

	reloaded, err := NewTracker(store, "guidance")
	require.NoError(t, err)
	require.False(t, reloaded.Dismissed("cases.intro"))
}

func TestResetClearsAll(t *testing.T) {
	tr, err := NewTracker(storage.NewMemStore(), "guidance")
	require.NoError(t, err)

	require.NoError(t, tr.Dismiss("a"))
	require.NoError(t, tr.Dismiss("b"))
	require.NoError(t, tr.Reset())

	require.False(t, tr.Dismissed("a"))
	require.False(t, tr.Dismissed("b"))
}
