package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slashline/internal/testutils"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	clock := testutils.FixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), time.Second)
	return NewStore("testapp", WithBaseDir(dir), WithClock(clock)), dir
}

func TestStore_RecencyOrder(t *testing.T) {
	store, _ := newTestStore(t)

	store.Add("/search", "query", "apples")
	store.Add("/search", "query", "bananas")
	store.Add("/search", "query", "cherries")

	assert.Equal(t, []string{"cherries", "bananas", "apples"}, store.Get("/search", "query", 10))
}

func TestStore_ReAddMovesToFront(t *testing.T) {
	store, _ := newTestStore(t)

	store.Add("/search", "query", "apples")
	store.Add("/search", "query", "bananas")
	store.Add("/search", "query", "apples")

	got := store.Get("/search", "query", 10)
	assert.Equal(t, []string{"apples", "bananas"}, got)
}

func TestStore_Limit(t *testing.T) {
	store, _ := newTestStore(t)

	for _, v := range []string{"a", "b", "c", "d"} {
		store.Add("/search", "query", v)
	}

	assert.Equal(t, []string{"d", "c"}, store.Get("/search", "query", 2))
	assert.Len(t, store.Get("/search", "query", 0), 4)
}

func TestStore_KeysAreIndependent(t *testing.T) {
	store, _ := newTestStore(t)

	store.Add("/search", "query", "apples")
	store.Add("/add", "name", "widget")

	assert.Equal(t, []string{"apples"}, store.Get("/search", "query", 10))
	assert.Equal(t, []string{"widget"}, store.Get("/add", "name", 10))
	assert.Nil(t, store.Get("/search", "name", 10))
	assert.Nil(t, store.Get("/unknown", "query", 10))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	clock := testutils.FixedClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), time.Second)

	store := NewStore("testapp", WithBaseDir(dir), WithClock(clock))
	store.Add("/search", "query", "apples")
	store.Add("/search", "query", "bananas")

	reopened := NewStore("testapp", WithBaseDir(dir))
	assert.Equal(t, []string{"bananas", "apples"}, reopened.Get("/search", "query", 10))
}

func TestStore_CorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.json"), []byte("{not json"), 0644))

	store := NewStore("testapp", WithBaseDir(dir))
	assert.Nil(t, store.Get("/search", "query", 10))

	// The store stays usable and overwrites the corrupt file on next Add.
	store.Add("/search", "query", "apples")
	reopened := NewStore("testapp", WithBaseDir(dir))
	assert.Equal(t, []string{"apples"}, reopened.Get("/search", "query", 10))
}

func TestStore_EqualTimestampsOrderLexicographically(t *testing.T) {
	dir := t.TempDir()
	frozen := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore("testapp", WithBaseDir(dir), WithClock(func() time.Time { return frozen }))

	store.Add("/search", "query", "pear")
	store.Add("/search", "query", "apple")
	store.Add("/search", "query", "mango")

	assert.Equal(t, []string{"apple", "mango", "pear"}, store.Get("/search", "query", 10))
}
