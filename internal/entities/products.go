package entities

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"migration-service/internal/migration"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

var productStatusDict = transform.EnumDict{
	Values: map[string]string{
		"active":       string(models.ProductStatusActive),
		"live":         string(models.ProductStatusActive),
		"listed":       string(models.ProductStatusActive),
		"1":            string(models.ProductStatusActive),
		"inactive":     string(models.ProductStatusInactive),
		"draft":        string(models.ProductStatusInactive),
		"0":            string(models.ProductStatusInactive),
		"sold":         string(models.ProductStatusArchived),
		"archived":     string(models.ProductStatusArchived),
		"discontinued": string(models.ProductStatusArchived),
	},
	Default: string(models.ProductStatusActive),
}

// productAttributes is the JSONB document shape for jewelry attributes.
type productAttributes struct {
	Metal       string  `json:"metal,omitempty"`
	StoneWeight float64 `json:"stoneWeight,omitempty"`
	Clarity     string  `json:"clarity,omitempty"`
	Color       string  `json:"color,omitempty"`
}

func transformProduct(row transform.SourceRow, tc *migration.TransformContext) (*transform.TransformedRow, error) {
	t := &transform.TransformedRow{SourceID: row.String("id")}

	sku := strings.ToUpper(strings.TrimSpace(row.String("sku")))
	if sku == "" {
		sku = transform.DerivedKey("SKU", EntityProducts, tc.SourceScope, t.SourceID)
		t.Warnf("product %s: blank SKU, derived %s", t.SourceID, sku)
	}

	price, priceOK := transform.Money(row, "price", 0)
	if !priceOK {
		t.Warnf("product %s: unparseable price %q, defaulted to 0", t.SourceID, row.String("price"))
	}
	cost, costOK := transform.Money(row, "cost", 0)
	if !costOK {
		t.Warnf("product %s: unparseable cost %q, defaulted to 0", t.SourceID, row.String("cost"))
	}

	status, known := productStatusDict.Map(row.String("status"))
	if !known && row.String("status") != "" {
		t.Warnf("product %s: unknown status %q, defaulted to %s", t.SourceID, row.String("status"), status)
	}

	vendorID, resolved := tc.ResolveFK(EntityVendors, row.String("vendor_id"))
	if !resolved && row.String("vendor_id") != "" {
		t.Warnf("product %s: legacy vendor %s not in identity map, vendor left null", t.SourceID, row.String("vendor_id"))
	}

	attrs := productAttributes{Metal: strings.TrimSpace(row.String("metal"))}
	if raw := row.String("stone_weight"); raw != "" {
		if w, ok := normalizeWeight(raw); ok {
			attrs.StoneWeight = w
		} else {
			t.Warnf("product %s: unparseable stone weight %q, dropped", t.SourceID, raw)
		}
	}
	if raw := row.String("clarity"); raw != "" {
		canon, ok := normalizeClarity(raw)
		attrs.Clarity = canon
		if !ok {
			t.Warnf("product %s: unrecognized clarity grade in %q, kept as %q", t.SourceID, raw, canon)
		}
	}
	if raw := row.String("color"); raw != "" {
		canon, ok := normalizeColor(raw)
		attrs.Color = canon
		if !ok {
			t.Warnf("product %s: unrecognized color grade in %q, kept as %q", t.SourceID, raw, canon)
		}
	}
	attrJSON, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		StoreID:     tc.TargetScope,
		VendorID:    vendorID,
		Title:       defaultString(row.String("title"), "Untitled item "+sku),
		SKU:         sku,
		Description: row.String("description"),
		Price:       price,
		CostPrice:   cost,
		Status:      models.ProductStatus(status),
		Attributes:  datatypes.JSON(attrJSON),
	}
	if created, ok := row.Time("created_at"); ok {
		product.CreatedAt = created
	}

	t.Model = product
	t.NaturalKey = map[string]any{
		"store_id": product.StoreID,
		"sku":      product.SKU,
	}
	t.Tracked = map[string]any{
		"vendor_id":   product.VendorID,
		"title":       product.Title,
		"description": product.Description,
		"price":       product.Price,
		"cost_price":  product.CostPrice,
		"status":      product.Status,
		"attributes":  product.Attributes,
	}
	return t, nil
}

func init() {
	register(migration.Definition{
		EntityType:   EntityProducts,
		LegacyTable:  "products",
		PrimaryKey:   "id",
		ScopeColumn:  "store_id",
		Filters:      map[string]any{"deleted_at": nil},
		Dependencies: []string{EntityVendors},
		Transform:    transformProduct,
	})
}
