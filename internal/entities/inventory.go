package entities

import (
	"strings"

	"migration-service/internal/migration"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

func transformInventory(row transform.SourceRow, tc *migration.TransformContext) (*transform.TransformedRow, error) {
	t := &transform.TransformedRow{SourceID: row.String("id")}

	sku := strings.ToUpper(strings.TrimSpace(row.String("sku")))
	if sku == "" {
		// Inventory rows join to products by SKU; reuse the same derivation
		// so a product with a derived SKU still links to its stock row.
		sku = transform.DerivedKey("SKU", EntityProducts, tc.SourceScope, row.String("product_id"))
		t.Warnf("inventory %s: blank SKU, derived %s from product %s", t.SourceID, sku, row.String("product_id"))
	}

	quantity, qtyOK := transform.Quantity(row, "quantity", 0)
	if !qtyOK {
		t.Warnf("inventory %s: unparseable quantity %q, defaulted to 0", t.SourceID, row.String("quantity"))
	}
	if quantity < 0 {
		t.Warnf("inventory %s: negative quantity %d clamped to 0", t.SourceID, quantity)
		quantity = 0
	}

	productID, resolved := tc.ResolveFK(EntityProducts, row.String("product_id"))
	if !resolved && row.String("product_id") != "" {
		t.Warnf("inventory %s: legacy product %s not in identity map, product left null", t.SourceID, row.String("product_id"))
	}

	level := &models.InventoryLevel{
		StoreID:   tc.TargetScope,
		ProductID: productID,
		SKU:       sku,
		Location:  defaultString(strings.ToLower(row.String("location")), "main"),
		Quantity:  quantity,
	}

	t.Model = level
	t.NaturalKey = map[string]any{
		"store_id": level.StoreID,
		"sku":      level.SKU,
		"location": level.Location,
	}
	t.Tracked = map[string]any{
		"product_id": level.ProductID,
		"quantity":   level.Quantity,
	}
	return t, nil
}

func init() {
	register(migration.Definition{
		EntityType:   EntityInventory,
		LegacyTable:  "inventories",
		PrimaryKey:   "id",
		ScopeColumn:  "store_id",
		Dependencies: []string{EntityProducts},
		Transform:    transformInventory,
	})
}
