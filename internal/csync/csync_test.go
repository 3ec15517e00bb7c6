package csync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue_LoadStore(t *testing.T) {
	v := NewValue("initial")
	require.Equal(t, "initial", v.Load())

	v.Store("updated")
	require.Equal(t, "updated", v.Load())
}

func TestValue_Update(t *testing.T) {
	v := NewValue(10)
	got := v.Update(func(n int) int { return n + 5 })
	require.Equal(t, 15, got)
	require.Equal(t, 15, v.Load())
}

func TestValue_SwapReturnsPrevious(t *testing.T) {
	v := NewValue("old")
	require.Equal(t, "old", v.Swap("new"))
	require.Equal(t, "new", v.Load())

	// The zero Value is usable; Swap of a pointer hands back nil.
	var p Value[*int]
	require.Nil(t, p.Swap(new(int)))
	require.NotNil(t, p.Load())
}

func TestValue_ConcurrentUpdates(t *testing.T) {
	v := NewValue(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	require.Equal(t, 50, v.Load())
}

func TestMap_BasicOperations(t *testing.T) {
	m := NewMap[string, int]()

	m.Set("a", 1)
	m.Set("b", 2)

	val, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, val)

	require.True(t, m.Has("b"))
	require.Equal(t, 2, m.Len())

	m.Delete("a")
	require.False(t, m.Has("a"))
	require.Equal(t, 1, m.Len())
}

func TestMap_RangeStopsEarly(t *testing.T) {
	m := NewMapFrom(map[string]int{"a": 1, "b": 2, "c": 3})

	seen := 0
	m.Range(func(key string, value int) bool {
		seen++
		return false
	})

	require.Equal(t, 1, seen)
}

func TestMap_ToMapIsACopy(t *testing.T) {
	m := NewMapFrom(map[string]int{"a": 1})

	snapshot := m.ToMap()
	snapshot["a"] = 99

	val, _ := m.Get("a")
	require.Equal(t, 1, val)
}

func TestMap_JSONRoundTrip(t *testing.T) {
	m := NewMapFrom(map[string][]string{"cases": {"opened_at", "assignee"}})

	data, err := m.MarshalJSON()
	require.NoError(t, err)

	decoded := NewMap[string, []string]()
	require.NoError(t, decoded.UnmarshalJSON(data))

	cols, ok := decoded.Get("cases")
	require.True(t, ok)
	require.Equal(t, []string{"opened_at", "assignee"}, cols)
}
