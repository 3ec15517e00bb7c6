package storage

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("visibility:cases", []byte(`{"hidden":["assignee"]}`)))

	data, ok, err := s.Get("visibility:cases")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"hidden":["assignee"]}`, string(data))
}

func TestFileStore_MissingKeyReadsAsAbsent(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get("never-written")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStore_RemoveIsIdempotent(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("guidance:case-editor", []byte("1")))
	require.NoError(t, s.Remove("guidance:case-editor"))
	require.NoError(t, s.Remove("guidance:case-editor"))

	_, ok, err := s.Get("guidance:case-editor")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStore_KeysFiltersByPrefix(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("visibility:cases", []byte("{}")))
	require.NoError(t, s.Set("visibility:billing", []byte("{}")))
	require.NoError(t, s.Set("guidance:welcome", []byte("1")))

	keys, err := s.Keys("visibility:")
	require.NoError(t, err)
	sort.Strings(keys)
	require.Equal(t, []string{"visibility:billing", "visibility:cases"}, keys)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("visibility:cases", []byte(`{"hidden":[]}`)))
	require.NoError(t, s.Close())

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	_, ok, err := reopened.Get("visibility:cases")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFileStore_ClosedReturnsErrClosed(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Set("k", []byte("v")), ErrClosed)
	_, _, err = s.Get("k")
	require.ErrorIs(t, err, ErrClosed)
}

func TestFileStore_WritesAreAtomic(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("prefs", []byte("v1")))
	require.NoError(t, s.Set("prefs", []byte("v2")))

	// No temp files left behind after a completed write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		require.NotEqual(t, ".tmp", filepath.Ext(entry.Name()))
	}

	data, ok, err := s.Get("prefs")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", string(data))
}

func TestGetJSON_CorruptEntryReadsAsAbsent(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Set("visibility:cases", []byte("{not json")))

	var out struct{ Hidden []string }
	ok, err := GetJSON(s, "visibility:cases", &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetJSON_GetJSON_RoundTrip(t *testing.T) {
	s := NewMemStore()

	type visibility struct {
		Hidden []string `json:"hidden"`
	}

	require.NoError(t, SetJSON(s, "visibility:cases", visibility{Hidden: []string{"assignee"}}))

	var out visibility
	ok, err := GetJSON(s, "visibility:cases", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"assignee"}, out.Hidden)
}

func TestMemStore_CopiesValues(t *testing.T) {
	s := NewMemStore()

	value := []byte("original")
	require.NoError(t, s.Set("k", value))
	value[0] = 'X'

	data, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "original", string(data))
}
