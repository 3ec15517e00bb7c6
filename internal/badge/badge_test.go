package badge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitleComposition(t *testing.T) {
	c := NewComposer("Trace-Aid")
	require.Equal(t, "Trace-Aid", c.Title())

	c.SetContext("Case 2026-117")
	require.Equal(t, "Trace-Aid - Case 2026-117", c.Title())

	c.SetAttention(2)
	require.Equal(t, "Trace-Aid - Case 2026-117 (2)", c.Title())

	c.SetUnsaved(true)
	require.Equal(t, "● Trace-Aid - Case 2026-117 (2)", c.Title())

	c.SetUnsaved(false)
	c.SetAttention(0)
	c.SetContext("")
	require.Equal(t, "Trace-Aid", c.Title())
}

func TestSettersReportChanges(t *testing.T) {
	c := NewComposer("Trace-Aid")

	require.True(t, c.SetContext("Cases"))
	require.False(t, c.SetContext("Cases"))

	require.True(t, c.SetUnsaved(true))
	require.False(t, c.SetUnsaved(true))

	require.True(t, c.SetAttention(3))
	require.False(t, c.SetAttention(3))

	// Negative counts clamp, so going negative after zero is not a change.
	require.True(t, c.SetAttention(0))
	require.False(t, c.SetAttention(-5))
}
