package identity

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapRecordAndLookup(t *testing.T) {
	m := NewMap("customers", "42")

	_, ok := m.Lookup("100")
	assert.False(t, ok)

	assert.NoError(t, m.Record("100", 7))
	id, ok := m.Lookup("100")
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.True(t, m.Dirty())
}

func TestMapSourceIDsAreSorted(t *testing.T) {
	m := NewMap("customers", "42")
	for _, id := range []string{"30", "1", "200"} {
		assert.NoError(t, m.Record(id, 1))
	}
	assert.Equal(t, []string{"1", "200", "30"}, m.SourceIDs())
}

func TestMapRecordConflict(t *testing.T) {
	m := NewMap("customers", "42")
	assert.NoError(t, m.Record("100", 7))

	// Same pair again is fine.
	assert.NoError(t, m.Record("100", 7))

	err := m.Record("100", 8)
	assert.Error(t, err)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "customers", conflict.EntityType)
	assert.Equal(t, int64(7), conflict.Existing)
	assert.Equal(t, int64(8), conflict.Attempted)

	// The original mapping survives the rejected write.
	id, _ := m.Lookup("100")
	assert.Equal(t, int64(7), id)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	m := NewMap("vendors", "42")
	assert.NoError(t, m.Record("1", 10))
	assert.NoError(t, m.Record("2", 20))
	assert.NoError(t, store.Save(ctx, m))

	loaded, err := store.Load(ctx, "vendors", "42")
	assert.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.False(t, loaded.Dirty())
	id, ok := loaded.Lookup("2")
	assert.True(t, ok)
	assert.Equal(t, int64(20), id)

	// No stray temp files after a successful save.
	entries, err := os.ReadDir(store.dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreLoadMissingIsEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	m, err := store.Load(context.Background(), "vendors", "nope")
	assert.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestFileStoreLoadRejectsCorruptFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(store.Path("vendors", "42"), []byte("not json"), 0o644))

	_, err = store.Load(context.Background(), "vendors", "42")
	assert.Error(t, err)
}
