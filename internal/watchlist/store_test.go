package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockeye/pkg/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "watchlist.json"), logger.NewNop())
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := testStore(t)
	symbols, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save([]string{"RELIANCE.NS", "tcs.ns", "RELIANCE.NS", " infy.ns "}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"RELIANCE.NS", "TCS.NS", "INFY.NS"}, got)
}

func TestAddAndRemove(t *testing.T) {
	s := testStore(t)

	added, err := s.Add("TCS.NS", "RELIANCE.NS")
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// Duplicates are not re-added.
	added, err = s.Add("tcs.ns")
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	removed, err := s.Remove("TCS.NS", "MISSING.NS")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"RELIANCE.NS"}, got)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "watchlist.json"), logger.NewNop())
	require.NoError(t, s.Save([]string{"TCS.NS"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "watchlist.json", entries[0].Name())
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watchlist.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path, logger.NewNop())
	_, err := s.Load()
	assert.Error(t, err)
}
