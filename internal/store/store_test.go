package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/traductor/pkg/dictionary"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache", "test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

var testRecords = []dictionary.Record{
	dictionary.NewRecord("espanol", "perro, can", "nahuatl", "chichi"),
	dictionary.NewRecord("espanol", "agua", "nahuatl", "atl"),
}

func TestSaveAndLoadRecords(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok, err := s.Records("nahuatl.JSON")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveRecords("nahuatl.JSON", testRecords))
	got, ok, err := s.Records("nahuatl.JSON")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testRecords, got)
}

func TestRecordsSurviveReopen(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.SaveRecords("maya.JSON", testRecords))
	require.NoError(t, s.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Records("maya.JSON")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testRecords, got)
}

func TestListDeleteClear(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.SaveRecords("zapoteco.JSON", testRecords[:1]))
	require.NoError(t, s.SaveRecords("maya.JSON", testRecords))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "maya.JSON", entries[0].Source)
	assert.Equal(t, 2, entries[0].Records)
	assert.Equal(t, "zapoteco.JSON", entries[1].Source)
	assert.Positive(t, entries[1].Bytes)
	assert.False(t, entries[1].SavedAt.IsZero())

	require.NoError(t, s.Delete("maya.JSON"))
	require.NoError(t, s.Delete("never-cached.JSON"))
	entries, err = s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	n, err := s.Clear()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	entries, err = s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, ok, err := s.Records("zapoteco.JSON")
	require.NoError(t, err)
	assert.False(t, ok)
}
