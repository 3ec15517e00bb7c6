package header

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/emerginginv/trace-aid-sub006/internal/nav"
)

func TestTrailShowsRecentCrumbs(t *testing.T) {
	c := New()
	c.SetSize(120, 1)
	c.SetCrumbs([]nav.Entry{
		{Screen: "cases", Title: "Cases"},
		{Screen: "case", Title: "Case 2026-117"},
	})

	view := ansi.Strip(c.View())
	require.Contains(t, view, "Trace-Aid")
	require.Contains(t, view, "Cases")
	require.Contains(t, view, "Case 2026-117")
}

func TestTrailCapsDepth(t *testing.T) {
	c := New()
	c.SetSize(200, 1)
	c.SetCrumbs([]nav.Entry{
		{Title: "One"}, {Title: "Two"}, {Title: "Three"},
		{Title: "Four"}, {Title: "Five"}, {Title: "Six"},
	})

	view := ansi.Strip(c.View())
	require.NotContains(t, view, "One")
	require.NotContains(t, view, "Two")
	require.Contains(t, view, "Three")
	require.Contains(t, view, "Six")
}

func TestFallsBackToScreenName(t *testing.T) {
	c := New()
	c.SetSize(120, 1)
	c.SetCrumbs([]nav.Entry{{Screen: "billing"}})

	require.Contains(t, ansi.Strip(c.View()), "billing")
}

func TestIdentityRendersWhenRoomAllows(t *testing.T) {
	c := New()
	c.SetSize(120, 1)
	c.SetIdentity("dana@acme")

	require.Contains(t, ansi.Strip(c.View()), "dana@acme")

	// Too narrow: identity is dropped rather than wrapped.
	c.SetSize(16, 1)
	require.NotContains(t, ansi.Strip(c.View()), "dana@acme")
}

func TestZeroWidthRendersNothing(t *testing.T) {
	require.Equal(t, "", New().View())
}
