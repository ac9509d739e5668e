package entities

import (
	"strings"

	"migration-service/internal/migration"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

// paymentGatewayDict maps legacy free-text tender types. Ambiguous gateways
// default to OTHER, counted as warnings.
var paymentGatewayDict = transform.EnumDict{
	Values: map[string]string{
		"cash":         string(models.PaymentGatewayCash),
		"visa":         string(models.PaymentGatewayCard),
		"mastercard":   string(models.PaymentGatewayCard),
		"amex":         string(models.PaymentGatewayCard),
		"discover":     string(models.PaymentGatewayCard),
		"card":         string(models.PaymentGatewayCard),
		"credit":       string(models.PaymentGatewayCard),
		"credit card":  string(models.PaymentGatewayCard),
		"debit":        string(models.PaymentGatewayCard),
		"check":        string(models.PaymentGatewayCheck),
		"cheque":       string(models.PaymentGatewayCheck),
		"paypal":       string(models.PaymentGatewayPaypal),
		"wire":         string(models.PaymentGatewayBankTransfer),
		"ach":          string(models.PaymentGatewayBankTransfer),
		"bank":         string(models.PaymentGatewayBankTransfer),
		"store credit": string(models.PaymentGatewayStoreCredit),
		"gift card":    string(models.PaymentGatewayStoreCredit),
		"layaway":      string(models.PaymentGatewayLayaway),
	},
	Default: string(models.PaymentGatewayOther),
}

var paymentStatusDict = transform.EnumDict{
	Values: map[string]string{
		"pending":  string(models.PaymentStatusPending),
		"paid":     string(models.PaymentStatusPaid),
		"captured": string(models.PaymentStatusPaid),
		"settled":  string(models.PaymentStatusPaid),
		"complete": string(models.PaymentStatusPaid),
		"failed":   string(models.PaymentStatusFailed),
		"declined": string(models.PaymentStatusFailed),
		"refunded": string(models.PaymentStatusRefunded),
	},
	Default: string(models.PaymentStatusPaid),
}

func transformPayment(row transform.SourceRow, tc *migration.TransformContext) (*transform.TransformedRow, error) {
	t := &transform.TransformedRow{SourceID: row.String("id")}

	reference := strings.TrimSpace(row.String("reference"))
	if reference == "" {
		reference = transform.DerivedKey("PAY", EntityPayments, tc.SourceScope, t.SourceID)
		t.Warnf("payment %s: missing reference, derived %s", t.SourceID, reference)
	}

	gateway, gwKnown := paymentGatewayDict.Map(row.String("gateway"))
	if !gwKnown {
		t.Warnf("payment %s: gateway %q not in dictionary, defaulted to %s", t.SourceID, row.String("gateway"), gateway)
	}
	status, stKnown := paymentStatusDict.Map(row.String("status"))
	if !stKnown && row.String("status") != "" {
		t.Warnf("payment %s: unknown status %q, defaulted to %s", t.SourceID, row.String("status"), status)
	}

	amount, amountOK := transform.Money(row, "amount", 0)
	if !amountOK {
		t.Warnf("payment %s: unparseable amount %q, defaulted to 0", t.SourceID, row.String("amount"))
	}

	orderID, resolved := tc.ResolveFK(EntityOrders, row.String("order_id"))
	if !resolved && row.String("order_id") != "" {
		t.Warnf("payment %s: legacy order %s not in identity map, order left null", t.SourceID, row.String("order_id"))
	}

	payment := &models.Payment{
		StoreID:   tc.TargetScope,
		OrderID:   orderID,
		Reference: reference,
		Gateway:   models.PaymentGateway(gateway),
		Status:    models.PaymentStatus(status),
		Amount:    amount,
	}
	if paid, ok := row.Time("paid_at"); ok {
		paidAt := paid
		payment.PaidAt = &paidAt
	}
	if created, ok := row.Time("created_at"); ok {
		payment.CreatedAt = created
	}

	t.Model = payment
	t.NaturalKey = map[string]any{
		"store_id":  payment.StoreID,
		"reference": payment.Reference,
	}
	t.Tracked = map[string]any{
		"order_id": payment.OrderID,
		"gateway":  payment.Gateway,
		"status":   payment.Status,
		"amount":   payment.Amount,
	}
	return t, nil
}

func init() {
	register(migration.Definition{
		EntityType:   EntityPayments,
		LegacyTable:  "order_payments",
		PrimaryKey:   "id",
		ScopeColumn:  "store_id",
		Dependencies: []string{EntityOrders},
		Transform:    transformPayment,
	})
}
