package status

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/emerginginv/trace-aid-sub006/internal/autosave"
)

func TestSaveSegmentStates(t *testing.T) {
	c := New()
	c.SetSize(80, 1)

	// Nothing saved yet: no save segment.
	require.NotContains(t, ansi.Strip(c.View()), "saved")

	c.SetSaveStatus(autosave.Status{Dirty: true})
	require.Contains(t, ansi.Strip(c.View()), "unsaved")

	c.SetSaveStatus(autosave.Status{Err: errors.New("boom"), Dirty: true})
	require.Contains(t, ansi.Strip(c.View()), "save failed")

	c.SetSaveStatus(autosave.Status{LastSavedAt: time.Now().Add(-3 * time.Minute)})
	require.Contains(t, ansi.Strip(c.View()), "saved 3m ago")
}

func TestSavingStartsSpinner(t *testing.T) {
	c := New()
	c.SetSize(80, 1)

	cmd := c.SetSaveStatus(autosave.Status{Saving: true, Dirty: true})
	require.NotNil(t, cmd, "entering saving state starts the spinner")

	// Already saving: no duplicate tick chain.
	cmd = c.SetSaveStatus(autosave.Status{Saving: true, Dirty: true})
	require.Nil(t, cmd)

	require.Contains(t, ansi.Strip(c.View()), "saving")
}

func TestAutosaveOffHint(t *testing.T) {
	c := New()
	c.SetSize(80, 1)
	c.SetAutosaveEnabled(false)

	require.Contains(t, ansi.Strip(c.View()), "autosave off")

	c.SetSaveStatus(autosave.Status{Dirty: true})
	view := ansi.Strip(c.View())
	require.Contains(t, view, "autosave off")
	require.Contains(t, view, "unsaved")
}

func TestTransientMessagesClear(t *testing.T) {
	c := New()
	c.SetSize(80, 1)

	c.ShowError("request failed")
	require.Contains(t, ansi.Strip(c.View()), "request failed")

	// A stale clear for an older message is ignored.
	_, _ = c.Update(clearMessageMsg{timestamp: time.Now().Add(-time.Hour)})
	require.Contains(t, ansi.Strip(c.View()), "request failed")

	_, _ = c.Update(clearMessageMsg{timestamp: c.message.Timestamp})
	require.NotContains(t, ansi.Strip(c.View()), "request failed")
}

func TestContextSegment(t *testing.T) {
	c := New()
	c.SetSize(80, 1)
	c.SetContext("dana@acme · Acme Investigations")

	require.Contains(t, ansi.Strip(c.View()), "Acme Investigations")
}

func TestZeroWidthRendersNothing(t *testing.T) {
	c := New()
	require.Equal(t, "", c.View())
}
