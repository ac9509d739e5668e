package entities

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"migration-service/internal/identity"
	"migration-service/internal/migration"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

var customerStatusDict = transform.EnumDict{
	Values: map[string]string{
		"active":   string(models.CustomerStatusActive),
		"1":        string(models.CustomerStatusActive),
		"inactive": string(models.CustomerStatusInactive),
		"0":        string(models.CustomerStatusInactive),
		"blocked":  string(models.CustomerStatusBlocked),
		"banned":   string(models.CustomerStatusBlocked),
	},
	Default: string(models.CustomerStatusActive),
}

// placeholderEmail derives a stable synthetic email for legacy customers
// recorded without one, so (store, email) stays a usable natural key and
// repeated runs land on the same destination row.
func placeholderEmail(sourceScope, sourceID string) string {
	key := transform.DerivedKey("CUST", EntityCustomers, sourceScope, sourceID)
	return strings.ToLower(key) + "@migrated.invalid"
}

func transformCustomer(row transform.SourceRow, tc *migration.TransformContext) (*transform.TransformedRow, error) {
	t := &transform.TransformedRow{SourceID: row.String("id")}

	email := strings.ToLower(strings.TrimSpace(row.String("email")))
	if email == "" {
		email = placeholderEmail(tc.SourceScope, t.SourceID)
		t.Warnf("customer %s: no email on file, derived placeholder %s", t.SourceID, email)
	}

	status, known := customerStatusDict.Map(row.String("status"))
	if !known && row.String("status") != "" {
		t.Warnf("customer %s: unknown status %q, defaulted to %s", t.SourceID, row.String("status"), status)
	}

	customer := &models.Customer{
		StoreID:   tc.TargetScope,
		Email:     email,
		FirstName: row.String("first_name"),
		LastName:  row.String("last_name"),
		Phone:     row.String("phone"),
		Address:   row.String("address"),
		City:      row.String("city"),
		State:     row.String("state"),
		Zip:       row.String("zip"),
		Country:   defaultString(row.String("country"), "US"),
		Status:    models.CustomerStatus(status),
	}
	if created, ok := row.Time("created_at"); ok {
		customer.CreatedAt = created
	}

	t.Model = customer
	t.NaturalKey = map[string]any{
		"store_id": customer.StoreID,
		"email":    customer.Email,
	}
	t.Tracked = map[string]any{
		"first_name": customer.FirstName,
		"last_name":  customer.LastName,
		"phone":      customer.Phone,
		"address":    customer.Address,
		"city":       customer.City,
		"state":      customer.State,
		"zip":        customer.Zip,
		"country":    customer.Country,
		"status":     customer.Status,
	}
	return t, nil
}

// customerMatchers adopt destination customers that predate the migration:
// first by email, then by normalized full name. Create is the implicit last
// step when neither matches.
var customerMatchers = []identity.MatchStrategy{
	{
		Name: "email",
		Find: func(tx *gorm.DB, row *transform.TransformedRow) (int64, error) {
			c := row.Model.(*models.Customer)
			if strings.HasSuffix(c.Email, "@migrated.invalid") {
				return 0, nil
			}
			var found models.Customer
			err := tx.Where("store_id = ? AND lower(email) = ?", c.StoreID, c.Email).First(&found).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, nil
			}
			if err != nil {
				return 0, err
			}
			return found.ID, nil
		},
	},
	{
		Name: "name",
		Find: func(tx *gorm.DB, row *transform.TransformedRow) (int64, error) {
			c := row.Model.(*models.Customer)
			first := strings.TrimSpace(c.FirstName)
			last := strings.TrimSpace(c.LastName)
			if first == "" || last == "" {
				return 0, nil
			}
			var found models.Customer
			err := tx.Where(
				"store_id = ? AND lower(first_name) = ? AND lower(last_name) = ?",
				c.StoreID, strings.ToLower(first), strings.ToLower(last),
			).Order("id ASC").First(&found).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, nil
			}
			if err != nil {
				return 0, err
			}
			return found.ID, nil
		},
	},
}

func defaultString(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func init() {
	register(migration.Definition{
		EntityType:  EntityCustomers,
		LegacyTable: "customers",
		PrimaryKey:  "id",
		ScopeColumn: "store_id",
		Filters:     map[string]any{"deleted_at": nil},
		Transform:   transformCustomer,
		Matchers:    customerMatchers,
	})
}

