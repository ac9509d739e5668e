package entities

import (
	"strings"

	"migration-service/internal/migration"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

var repairStatusDict = transform.EnumDict{
	Values: map[string]string{
		"pending":     string(models.RepairStatusPending),
		"received":    string(models.RepairStatusPending),
		"new":         string(models.RepairStatusPending),
		"in progress": string(models.RepairStatusInProgress),
		"working":     string(models.RepairStatusInProgress),
		"at jeweler":  string(models.RepairStatusInProgress),
		"ready":       string(models.RepairStatusReady),
		"done":        string(models.RepairStatusReady),
		"complete":    string(models.RepairStatusReady),
		"picked up":   string(models.RepairStatusPickedUp),
		"delivered":   string(models.RepairStatusPickedUp),
		"cancelled":   string(models.RepairStatusCancelled),
		"canceled":    string(models.RepairStatusCancelled),
	},
	Default: string(models.RepairStatusPending),
}

func transformRepair(row transform.SourceRow, tc *migration.TransformContext) (*transform.TransformedRow, error) {
	t := &transform.TransformedRow{SourceID: row.String("id")}

	ticket := strings.TrimSpace(row.String("ticket_number"))
	if ticket == "" {
		ticket = transform.DerivedKey("REP", EntityRepairs, tc.SourceScope, t.SourceID)
		t.Warnf("repair %s: missing ticket number, derived %s", t.SourceID, ticket)
	}

	status, known := repairStatusDict.Map(row.String("status"))
	if !known && row.String("status") != "" {
		t.Warnf("repair %s: unknown status %q, defaulted to %s", t.SourceID, row.String("status"), status)
	}

	customerID, resolved := tc.ResolveFK(EntityCustomers, row.String("customer_id"))
	if !resolved && row.String("customer_id") != "" {
		t.Warnf("repair %s: legacy customer %s not in identity map, customer left null", t.SourceID, row.String("customer_id"))
	}

	quote, quoteOK := transform.Money(row, "quote", 0)
	if !quoteOK {
		t.Warnf("repair %s: unparseable quote %q, defaulted to 0", t.SourceID, row.String("quote"))
	}

	repair := &models.Repair{
		StoreID:      tc.TargetScope,
		TicketNumber: ticket,
		CustomerID:   customerID,
		Description:  row.String("description"),
		Status:       models.RepairStatus(status),
		Quote:        quote,
	}
	if promised, ok := row.Time("promised_at"); ok {
		promisedAt := promised
		repair.PromisedAt = &promisedAt
	}
	if created, ok := row.Time("created_at"); ok {
		repair.CreatedAt = created
	}

	t.Model = repair
	t.NaturalKey = map[string]any{
		"store_id":      repair.StoreID,
		"ticket_number": repair.TicketNumber,
	}
	t.Tracked = map[string]any{
		"customer_id": repair.CustomerID,
		"description": repair.Description,
		"status":      repair.Status,
		"quote":       repair.Quote,
	}
	return t, nil
}

func init() {
	register(migration.Definition{
		EntityType:   EntityRepairs,
		LegacyTable:  "repairs",
		PrimaryKey:   "id",
		ScopeColumn:  "store_id",
		Filters:      map[string]any{"deleted_at": nil},
		Dependencies: []string{EntityCustomers},
		Transform:    transformRepair,
	})
}
