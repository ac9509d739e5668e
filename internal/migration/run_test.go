package migration

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"migration-service/internal/identity"
	"migration-service/internal/legacy"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

const testScope = "42"

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), name)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

// newLegacyDB builds a legacy source with a stores table and a vendor table
// holding the given (id, company, email) rows, all under testScope.
func newLegacyDB(t *testing.T, rows [][3]string) *gorm.DB {
	t.Helper()
	db := openTestDB(t, "legacy.db")
	require.NoError(t, db.Exec(`CREATE TABLE stores (id TEXT PRIMARY KEY, name TEXT)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE legacy_vendors (
		id INTEGER PRIMARY KEY,
		store_id TEXT,
		company TEXT,
		email TEXT
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO stores (id, name) VALUES (?, 'Main Street Jewelers')`, testScope).Error)
	for _, r := range rows {
		require.NoError(t, db.Exec(
			`INSERT INTO legacy_vendors (id, store_id, company, email) VALUES (?, ?, ?, ?)`,
			r[0], testScope, r[1], r[2],
		).Error)
	}
	return db
}

func vendorDefinition() Definition {
	return Definition{
		EntityType:  "vendors",
		LegacyTable: "legacy_vendors",
		PrimaryKey:  "id",
		ScopeColumn: "store_id",
		Transform: func(row transform.SourceRow, tc *TransformContext) (*transform.TransformedRow, error) {
			name := row.String("company")
			if name == "" {
				return nil, nil
			}
			v := &models.Vendor{
				StoreID: tc.TargetScope,
				Name:    name,
				Email:   row.String("email"),
				Status:  models.VendorStatusActive,
			}
			return &transform.TransformedRow{
				SourceID:   row.String("id"),
				Model:      v,
				NaturalKey: map[string]any{"store_id": v.StoreID, "name": v.Name},
				Tracked:    map[string]any{"email": v.Email, "status": string(v.Status)},
			}, nil
		},
	}
}

func newTestEngine(t *testing.T, legacyDB *gorm.DB) (*Engine, *gorm.DB, *identity.FileStore) {
	t.Helper()
	dest := openTestDB(t, "dest.db")
	require.NoError(t, dest.AutoMigrate(&models.Vendor{}))
	store, err := identity.NewFileStore(t.TempDir())
	require.NoError(t, err)
	engine := NewEngine(legacy.NewReader(legacyDB, testLogger()), dest, store, nil, nil, testLogger(), 2)
	return engine, dest, store
}

func vendorCount(t *testing.T, dest *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, dest.Model(&models.Vendor{}).Count(&n).Error)
	return n
}

func TestRunCreatesAndIsIdempotent(t *testing.T) {
	legacyDB := newLegacyDB(t, [][3]string{
		{"1", "Goldsmith Supply", "gold@example.com"},
		{"2", "Estate Consignors", "estate@example.com"},
		{"3", "", ""}, // nameless, dropped by the transformer
	})
	engine, dest, store := newTestEngine(t, legacyDB)
	ctx := context.Background()
	opts := Options{Scope: testScope, Mode: Live}

	res, err := engine.Run(ctx, vendorDefinition(), opts)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCommitted, res.Status)
	assert.Equal(t, int64(3), res.Counters.Seen)
	assert.Equal(t, int64(2), res.Counters.Created)
	assert.Equal(t, int64(1), res.Counters.Skipped)
	assert.Equal(t, int64(0), res.Counters.Errors)
	assert.Equal(t, int64(2), vendorCount(t, dest))

	// The identity map persisted with one entry per created row.
	persisted, err := store.Load(ctx, "vendors", testScope)
	require.NoError(t, err)
	assert.Equal(t, 2, persisted.Len())

	// A second identical run changes nothing and creates nothing.
	res, err = engine.Run(ctx, vendorDefinition(), opts)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Counters.Created)
	assert.Equal(t, int64(3), res.Counters.Skipped)
	assert.Equal(t, int64(2), vendorCount(t, dest))
}

func TestDryRunLeavesNoTrace(t *testing.T) {
	legacyDB := newLegacyDB(t, [][3]string{
		{"1", "Goldsmith Supply", "gold@example.com"},
		{"2", "Estate Consignors", "estate@example.com"},
	})
	engine, dest, store := newTestEngine(t, legacyDB)
	ctx := context.Background()

	res, err := engine.Run(ctx, vendorDefinition(), Options{Scope: testScope, Mode: DryRun})
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusRolledBack, res.Status)

	// Counters report what a live run would do.
	assert.Equal(t, int64(2), res.Counters.Created)

	// But nothing reached the destination or the identity map.
	assert.Equal(t, int64(0), vendorCount(t, dest))
	persisted, err := store.Load(ctx, "vendors", testScope)
	require.NoError(t, err)
	assert.Equal(t, 0, persisted.Len())
}

func TestForceOverwriteUpdatesChangedRows(t *testing.T) {
	legacyDB := newLegacyDB(t, [][3]string{
		{"1", "Goldsmith Supply", "gold@example.com"},
		{"2", "Estate Consignors", "estate@example.com"},
	})
	engine, dest, _ := newTestEngine(t, legacyDB)
	ctx := context.Background()

	_, err := engine.Run(ctx, vendorDefinition(), Options{Scope: testScope, Mode: Live})
	require.NoError(t, err)

	// The legacy row changes after the first pass.
	require.NoError(t, legacyDB.Exec(`UPDATE legacy_vendors SET email = 'new@example.com' WHERE id = 1`).Error)

	// A plain live re-run never touches existing rows.
	res, err := engine.Run(ctx, vendorDefinition(), Options{Scope: testScope, Mode: Live})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Counters.Updated)
	assert.Equal(t, int64(2), res.Counters.Skipped)

	// A forced run rewrites only the changed row.
	res, err = engine.Run(ctx, vendorDefinition(), Options{Scope: testScope, Mode: ForceOverwrite})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Counters.Updated)
	assert.Equal(t, int64(1), res.Counters.Skipped)

	var v models.Vendor
	require.NoError(t, dest.Where("store_id = ? AND name = ?", testScope, "Goldsmith Supply").First(&v).Error)
	assert.Equal(t, "new@example.com", v.Email)
	assert.Equal(t, int64(2), vendorCount(t, dest))
}

func TestNaturalKeyCollisionCreatesOneRow(t *testing.T) {
	// Two legacy rows that normalize to the same natural key.
	legacyDB := newLegacyDB(t, [][3]string{
		{"1", "Goldsmith Supply", "gold@example.com"},
		{"2", "Goldsmith Supply", "other@example.com"},
	})
	engine, dest, _ := newTestEngine(t, legacyDB)
	ctx := context.Background()

	res, err := engine.Run(ctx, vendorDefinition(), Options{Scope: testScope, Mode: Live})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Counters.Created)
	assert.Equal(t, int64(1), res.Counters.Skipped)
	assert.Equal(t, int64(1), vendorCount(t, dest))

	// Both source ids map to the single destination row.
	first, ok := res.Map.Lookup("1")
	require.True(t, ok)
	second, ok := res.Map.Lookup("2")
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestRunAbortsAndRollsBackOnMapConflict(t *testing.T) {
	legacyDB := newLegacyDB(t, [][3]string{
		{"1", "Goldsmith Supply", "gold@example.com"},
	})
	engine, dest, store := newTestEngine(t, legacyDB)
	ctx := context.Background()

	// A previous run recorded source 1 against a destination id that no
	// longer matches what this run produces.
	stale := identity.NewMap("vendors", testScope)
	require.NoError(t, stale.Record("1", 999))
	require.NoError(t, store.Save(ctx, stale))

	res, err := engine.Run(ctx, vendorDefinition(), Options{Scope: testScope, Mode: Live})
	require.Error(t, err)
	var conflict *identity.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.RunStatusFailed, res.Status)

	// The transaction rolled back and the persisted map is untouched.
	assert.Equal(t, int64(0), vendorCount(t, dest))
	persisted, err := store.Load(ctx, "vendors", testScope)
	require.NoError(t, err)
	id, ok := persisted.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, int64(999), id)
}

func TestRunRollsBackAllRowsOnWriteFailure(t *testing.T) {
	legacyDB := newLegacyDB(t, [][3]string{
		{"1", "Goldsmith Supply", "dup@example.com"},
		{"2", "Estate Consignors", "estate@example.com"},
		{"3", "Chain Wholesale", "dup@example.com"},
	})
	engine, dest, store := newTestEngine(t, legacyDB)
	ctx := context.Background()

	// A destination uniqueness rule outside the natural key, so the third
	// row fails at write time after two rows already landed in the tx.
	require.NoError(t, dest.Exec(`CREATE UNIQUE INDEX idx_vendors_email_unique ON vendors(email)`).Error)

	res, err := engine.Run(ctx, vendorDefinition(), Options{Scope: testScope, Mode: Live})
	require.Error(t, err)
	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.Equal(t, models.RunStatusFailed, res.Status)

	// None of the rows survive, not just the failing one.
	assert.Equal(t, int64(0), vendorCount(t, dest))

	// And the identity map was never persisted.
	persisted, err := store.Load(ctx, "vendors", testScope)
	require.NoError(t, err)
	assert.Equal(t, 0, persisted.Len())
}

func TestRunFailsPreflightOnUnknownScope(t *testing.T) {
	legacyDB := newLegacyDB(t, nil)
	engine, _, _ := newTestEngine(t, legacyDB)

	res, err := engine.Run(context.Background(), vendorDefinition(), Options{Scope: "777", Mode: Live})
	require.Error(t, err)
	assert.ErrorIs(t, err, legacy.ErrScopeNotFound)
	assert.Equal(t, models.RunStatusFailed, res.Status)
}

func TestRunHonorsLimit(t *testing.T) {
	legacyDB := newLegacyDB(t, [][3]string{
		{"1", "Goldsmith Supply", "gold@example.com"},
		{"2", "Estate Consignors", "estate@example.com"},
		{"3", "Chain Wholesale", "chain@example.com"},
	})
	engine, dest, _ := newTestEngine(t, legacyDB)

	res, err := engine.Run(context.Background(), vendorDefinition(), Options{Scope: testScope, Mode: Live, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Counters.Seen)
	assert.Equal(t, int64(2), vendorCount(t, dest))
}

func TestResolveFK(t *testing.T) {
	m := identity.NewMap("customers", testScope)
	require.NoError(t, m.Record("10", 4))
	tc := &TransformContext{
		SourceScope: testScope,
		TargetScope: testScope,
		Maps:        map[string]*identity.Map{"customers": m},
	}

	id, ok := tc.ResolveFK("customers", "10")
	require.True(t, ok)
	assert.Equal(t, int64(4), *id)

	// Missing entry and missing map both soft-fail to nil.
	id, ok = tc.ResolveFK("customers", "11")
	assert.False(t, ok)
	assert.Nil(t, id)
	id, ok = tc.ResolveFK("vendors", "10")
	assert.False(t, ok)
	assert.Nil(t, id)
}
