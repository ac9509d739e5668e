package legacy

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"migration-service/internal/transform"
)

func newTestReader(t *testing.T) (*Reader, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "legacy.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	require.NoError(t, db.Exec(`CREATE TABLE stores (id TEXT PRIMARY KEY)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO stores (id) VALUES ('42')`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE items (
		id INTEGER PRIMARY KEY,
		store_id TEXT,
		name TEXT,
		deleted_at TEXT
	)`).Error)
	return NewReader(db, log), db
}

func seedItems(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, db.Exec(
			`INSERT INTO items (id, store_id, name) VALUES (?, '42', ?)`,
			i, fmt.Sprintf("item-%d", i),
		).Error)
	}
}

func TestReadVisitsEveryRowInOrder(t *testing.T) {
	reader, db := newTestReader(t)
	seedItems(t, db, 7)

	q := Query{Table: "items", PrimaryKey: "id", ScopeColumn: "store_id", Scope: "42", ChunkSize: 3}

	var ids []int64
	err := reader.Read(context.Background(), q, func(row transform.SourceRow) error {
		id, ok := row.Int64("id")
		require.True(t, ok)
		ids = append(ids, id)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, ids)
}

func TestReadSkipsOtherScopesAndFilteredRows(t *testing.T) {
	reader, db := newTestReader(t)
	seedItems(t, db, 3)
	require.NoError(t, db.Exec(`INSERT INTO items (id, store_id, name) VALUES (10, '99', 'foreign')`).Error)
	require.NoError(t, db.Exec(`UPDATE items SET deleted_at = '2020-01-01' WHERE id = 2`).Error)

	q := Query{
		Table:       "items",
		PrimaryKey:  "id",
		ScopeColumn: "store_id",
		Scope:       "42",
		Filters:     map[string]any{"deleted_at": nil},
		ChunkSize:   10,
	}

	var ids []int64
	err := reader.Read(context.Background(), q, func(row transform.SourceRow) error {
		id, _ := row.Int64("id")
		ids = append(ids, id)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestReadStopsAtLimit(t *testing.T) {
	reader, db := newTestReader(t)
	seedItems(t, db, 5)

	q := Query{Table: "items", PrimaryKey: "id", ScopeColumn: "store_id", Scope: "42", ChunkSize: 2, Limit: 3}

	var count int
	err := reader.Read(context.Background(), q, func(row transform.SourceRow) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestReadRejectsNonPositiveChunkSize(t *testing.T) {
	reader, _ := newTestReader(t)
	err := reader.Read(context.Background(), Query{Table: "items", PrimaryKey: "id"}, func(transform.SourceRow) error {
		return nil
	})
	assert.Error(t, err)
}

func TestScopeExists(t *testing.T) {
	reader, _ := newTestReader(t)
	ctx := context.Background()

	assert.NoError(t, reader.ScopeExists(ctx, "42"))
	assert.ErrorIs(t, reader.ScopeExists(ctx, "777"), ErrScopeNotFound)
}
