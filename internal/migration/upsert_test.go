package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"migration-service/internal/identity"
	"migration-service/internal/legacy"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

func TestLooselyEqualByteSliceValues(t *testing.T) {
	// Drivers hand JSON columns back as []byte; tracked values carry
	// datatypes.JSON. Both must compare as text.
	assert.True(t, looselyEqual([]byte(`{"metal":"gold"}`), datatypes.JSON(`{"metal":"gold"}`)))
	assert.False(t, looselyEqual([]byte(`{"metal":"gold"}`), datatypes.JSON(`{"metal":"silver"}`)))
	assert.True(t, looselyEqual(`{"metal":"gold"}`, datatypes.JSON(`{"metal":"gold"}`)))

	// Numeric byte slices still compare numerically.
	assert.True(t, looselyEqual([]byte("12.50"), 12.5))
}

func newProductLegacyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t, "legacy.db")
	require.NoError(t, db.Exec(`CREATE TABLE stores (id TEXT PRIMARY KEY)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO stores (id) VALUES (?)`, testScope).Error)
	require.NoError(t, db.Exec(`CREATE TABLE legacy_products (
		id INTEGER PRIMARY KEY,
		store_id TEXT,
		sku TEXT,
		title TEXT,
		attrs TEXT
	)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO legacy_products (id, store_id, sku, title, attrs) VALUES (1, ?, 'RING-1', 'Gold Ring', '{"metal":"gold"}')`,
		testScope,
	).Error)
	return db
}

func productDefinition() Definition {
	return Definition{
		EntityType:  "products",
		LegacyTable: "legacy_products",
		PrimaryKey:  "id",
		ScopeColumn: "store_id",
		Transform: func(row transform.SourceRow, tc *TransformContext) (*transform.TransformedRow, error) {
			p := &models.Product{
				StoreID:    tc.TargetScope,
				SKU:        row.String("sku"),
				Title:      row.String("title"),
				Status:     models.ProductStatusActive,
				Attributes: datatypes.JSON(row.String("attrs")),
			}
			return &transform.TransformedRow{
				SourceID:   row.String("id"),
				Model:      p,
				NaturalKey: map[string]any{"store_id": p.StoreID, "sku": p.SKU},
				Tracked:    map[string]any{"title": p.Title, "attributes": p.Attributes},
			}, nil
		},
	}
}

func TestForceOverwriteComparesJSONAttributesAsText(t *testing.T) {
	legacyDB := newProductLegacyDB(t)
	dest := openTestDB(t, "dest.db")
	require.NoError(t, dest.AutoMigrate(&models.Product{}))
	store, err := identity.NewFileStore(t.TempDir())
	require.NoError(t, err)
	engine := NewEngine(legacy.NewReader(legacyDB, testLogger()), dest, store, nil, nil, testLogger(), 2)
	ctx := context.Background()

	_, err = engine.Run(ctx, productDefinition(), Options{Scope: testScope, Mode: Live})
	require.NoError(t, err)

	// Identical source row: a forced run must not report an update.
	res, err := engine.Run(ctx, productDefinition(), Options{Scope: testScope, Mode: ForceOverwrite})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Counters.Updated)
	assert.Equal(t, int64(1), res.Counters.Skipped)

	// Changed attributes are still detected.
	require.NoError(t, legacyDB.Exec(`UPDATE legacy_products SET attrs = '{"metal":"platinum"}' WHERE id = 1`).Error)
	res, err = engine.Run(ctx, productDefinition(), Options{Scope: testScope, Mode: ForceOverwrite})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Counters.Updated)

	var p models.Product
	require.NoError(t, dest.Where("store_id = ? AND sku = ?", testScope, "RING-1").First(&p).Error)
	assert.JSONEq(t, `{"metal":"platinum"}`, string(p.Attributes))
}
