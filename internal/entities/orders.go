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

// orderStatusDict collapses two decades of legacy POS status spellings.
// Ambiguous values default to PENDING; every default fired is counted as a
// warning so operators can quantify how lossy the mapping was.
var orderStatusDict = transform.EnumDict{
	Values: map[string]string{
		"pending":    string(models.OrderStatusPending),
		"new":        string(models.OrderStatusPending),
		"open":       string(models.OrderStatusPending),
		"layaway":    string(models.OrderStatusPending),
		"confirmed":  string(models.OrderStatusConfirmed),
		"paid":       string(models.OrderStatusConfirmed),
		"processing": string(models.OrderStatusConfirmed),
		"shipped":    string(models.OrderStatusShipped),
		"in transit": string(models.OrderStatusShipped),
		"complete":   string(models.OrderStatusCompleted),
		"completed":  string(models.OrderStatusCompleted),
		"done":       string(models.OrderStatusCompleted),
		"picked up":  string(models.OrderStatusCompleted),
		"delivered":  string(models.OrderStatusCompleted),
		"cancelled":  string(models.OrderStatusCancelled),
		"canceled":   string(models.OrderStatusCancelled),
		"void":       string(models.OrderStatusCancelled),
		"refunded":   string(models.OrderStatusRefunded),
		"returned":   string(models.OrderStatusRefunded),
	},
	Default: string(models.OrderStatusPending),
}

// channelSlugDict maps the legacy orders.channel free-text column to seeded
// sales-channel slugs.
var channelSlugDict = transform.EnumDict{
	Values: map[string]string{
		"store":    "in-store",
		"in-store": "in-store",
		"in store": "in-store",
		"pos":      "in-store",
		"counter":  "in-store",
		"web":      "web",
		"online":   "web",
		"website":  "web",
		"shopify":  "web",
		"ebay":     "ebay",
		"etsy":     "etsy",
		"walmart":  "walmart",
		"amazon":   "amazon",
	},
	Default: "in-store",
}

// seededChannels are created once per target store before the first order
// row; legacy orders resolve channels through the resulting identity map.
var seededChannels = []struct {
	Slug string
	Name string
}{
	{"in-store", "In Store"},
	{"web", "Web"},
	{"ebay", "eBay"},
	{"etsy", "Etsy"},
	{"walmart", "Walmart"},
	{"amazon", "Amazon"},
}

// prepareSalesChannels seeds the channel rows inside the run's transaction
// and exposes slug -> id as the sales_channels map. The map is derived, not
// persisted: re-seeding is idempotent and cheap.
func prepareSalesChannels(tx *gorm.DB, tc *migration.TransformContext) error {
	m := identity.NewMap(EntitySalesChannels, tc.TargetScope)
	for _, c := range seededChannels {
		var channel models.SalesChannel
		err := tx.Where("store_id = ? AND slug = ?", tc.TargetScope, c.Slug).First(&channel).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			channel = models.SalesChannel{StoreID: tc.TargetScope, Slug: c.Slug, Name: c.Name}
			err = tx.Create(&channel).Error
		}
		if err != nil {
			return err
		}
		if err := m.Record(c.Slug, channel.ID); err != nil {
			return err
		}
	}
	tc.Maps[EntitySalesChannels] = m
	return nil
}

func transformOrder(row transform.SourceRow, tc *migration.TransformContext) (*transform.TransformedRow, error) {
	t := &transform.TransformedRow{SourceID: row.String("id")}

	invoice := strings.TrimSpace(row.String("invoice_number"))
	if invoice == "" {
		invoice = transform.DerivedKey("INV", EntityOrders, tc.SourceScope, t.SourceID)
		t.Warnf("order %s: missing invoice number, derived %s", t.SourceID, invoice)
	}

	status, known := orderStatusDict.Map(row.String("status"))
	if !known {
		t.Warnf("order %s: status %q not in dictionary, defaulted to %s", t.SourceID, row.String("status"), status)
	}

	customerID, resolved := tc.ResolveFK(EntityCustomers, row.String("customer_id"))
	if !resolved && row.String("customer_id") != "" {
		t.Warnf("order %s: legacy customer %s not in identity map, customer left null", t.SourceID, row.String("customer_id"))
	}

	channelSlug, channelKnown := channelSlugDict.Map(row.String("channel"))
	if !channelKnown && row.String("channel") != "" {
		t.Warnf("order %s: unknown sales channel %q, defaulted to %s", t.SourceID, row.String("channel"), channelSlug)
	}
	channelID, _ := tc.ResolveFK(EntitySalesChannels, channelSlug)

	subtotal, subOK := transform.Money(row, "sub_total", 0)
	if !subOK {
		t.Warnf("order %s: unparseable subtotal %q, defaulted to 0", t.SourceID, row.String("sub_total"))
	}
	tax, taxOK := transform.Money(row, "tax", 0)
	if !taxOK {
		t.Warnf("order %s: unparseable tax %q, defaulted to 0", t.SourceID, row.String("tax"))
	}
	shipping, shipOK := transform.Money(row, "shipping", 0)
	if !shipOK {
		t.Warnf("order %s: unparseable shipping %q, defaulted to 0", t.SourceID, row.String("shipping"))
	}
	discount, discOK := transform.Money(row, "discount", 0)
	if !discOK {
		t.Warnf("order %s: unparseable discount %q, defaulted to 0", t.SourceID, row.String("discount"))
	}
	total, totalOK := transform.Money(row, "total", 0)
	if !totalOK || total == 0 {
		// Legacy rows predating the totals column carry only components.
		total = subtotal + tax + shipping - discount
	}

	order := &models.Order{
		StoreID:        tc.TargetScope,
		InvoiceNumber:  invoice,
		CustomerID:     customerID,
		SalesChannelID: channelID,
		Status:         models.OrderStatus(status),
		Currency:       defaultString(row.String("currency"), "USD"),
		Subtotal:       subtotal,
		TaxAmount:      tax,
		ShippingCost:   shipping,
		DiscountAmount: discount,
		Total:          total,
		Notes:          row.String("notes"),
	}
	if placed, ok := row.Time("created_at"); ok {
		placedAt := placed
		order.PlacedAt = &placedAt
		order.CreatedAt = placed
	}

	t.Model = order
	t.NaturalKey = map[string]any{
		"store_id":       order.StoreID,
		"invoice_number": order.InvoiceNumber,
	}
	t.Tracked = map[string]any{
		"customer_id":      order.CustomerID,
		"sales_channel_id": order.SalesChannelID,
		"status":           order.Status,
		"currency":         order.Currency,
		"subtotal":         order.Subtotal,
		"tax_amount":       order.TaxAmount,
		"shipping_cost":    order.ShippingCost,
		"discount_amount":  order.DiscountAmount,
		"total":            order.Total,
		"notes":            order.Notes,
	}
	return t, nil
}

func init() {
	register(migration.Definition{
		EntityType:   EntityOrders,
		LegacyTable:  "orders",
		PrimaryKey:   "id",
		ScopeColumn:  "store_id",
		Filters:      map[string]any{"deleted_at": nil},
		Dependencies: []string{EntityCustomers},
		Transform:    transformOrder,
		Prepare:      prepareSalesChannels,
	})
}
