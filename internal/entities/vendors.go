package entities

import (
	"strings"

	"migration-service/internal/migration"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

// vendorStatusDict maps legacy vendor flags. The legacy schema stored both
// words and 0/1 flags depending on which screen created the vendor.
var vendorStatusDict = transform.EnumDict{
	Values: map[string]string{
		"active":   string(models.VendorStatusActive),
		"enabled":  string(models.VendorStatusActive),
		"1":        string(models.VendorStatusActive),
		"inactive": string(models.VendorStatusInactive),
		"disabled": string(models.VendorStatusInactive),
		"0":        string(models.VendorStatusInactive),
	},
	Default: string(models.VendorStatusActive),
}

func transformVendor(row transform.SourceRow, tc *migration.TransformContext) (*transform.TransformedRow, error) {
	name := strings.TrimSpace(row.String("name"))
	if name == "" {
		name = transform.DerivedKey("VENDOR", EntityVendors, tc.SourceScope, row.String("id"))
	}

	t := &transform.TransformedRow{SourceID: row.String("id")}

	status, known := vendorStatusDict.Map(row.String("status"))
	if !known && row.String("status") != "" {
		t.Warnf("vendor %s: unknown status %q, defaulted to %s", t.SourceID, row.String("status"), status)
	}

	vendor := &models.Vendor{
		StoreID: tc.TargetScope,
		Name:    name,
		Email:   strings.ToLower(row.String("email")),
		Phone:   row.String("phone"),
		Status:  models.VendorStatus(status),
		Notes:   row.String("notes"),
	}
	if created, ok := row.Time("created_at"); ok {
		vendor.CreatedAt = created
	}

	t.Model = vendor
	t.NaturalKey = map[string]any{
		"store_id": vendor.StoreID,
		"name":     vendor.Name,
	}
	t.Tracked = map[string]any{
		"email":  vendor.Email,
		"phone":  vendor.Phone,
		"status": vendor.Status,
		"notes":  vendor.Notes,
	}
	return t, nil
}

func init() {
	register(migration.Definition{
		EntityType:  EntityVendors,
		LegacyTable: "vendors",
		PrimaryKey:  "id",
		ScopeColumn: "store_id",
		Filters:     map[string]any{"deleted_at": nil},
		Transform:   transformVendor,
	})
}
