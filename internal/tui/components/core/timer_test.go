package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"zero time", time.Time{}, "never"},
		{"moments ago", now.Add(-2 * time.Second), "just now"},
		{"seconds", now.Add(-42 * time.Second), "42s ago"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days fall back to date", now.Add(-48 * time.Hour), "Mar 8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatRelative(tt.at, now))
		})
	}
}

func TestFormatDurations(t *testing.T) {
	require.Equal(t, "1.2s", FormatSeconds(1200*time.Millisecond))
	require.Equal(t, "45s", FormatMinutesSeconds(45*time.Second))
	require.Equal(t, "2m 5s", FormatMinutesSeconds(125*time.Second))
}

func TestTimerLifecycle(t *testing.T) {
	timer := NewTimer("status", 10*time.Millisecond)
	require.False(t, timer.IsRunning())

	cmd := timer.Start()
	require.NotNil(t, cmd)
	require.True(t, timer.IsRunning())

	time.Sleep(20 * time.Millisecond)
	timer.Stop()
	require.False(t, timer.IsRunning())
	require.Greater(t, timer.Elapsed(), time.Duration(0))

	timer.Reset()
	require.Equal(t, time.Duration(0), timer.Elapsed())
}
