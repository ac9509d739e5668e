package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentGateway represents how a payment was taken
type PaymentGateway string

const (
	PaymentGatewayCash         PaymentGateway = "CASH"
	PaymentGatewayCard         PaymentGateway = "CARD"
	PaymentGatewayCheck        PaymentGateway = "CHECK"
	PaymentGatewayPaypal       PaymentGateway = "PAYPAL"
	PaymentGatewayBankTransfer PaymentGateway = "BANK_TRANSFER"
	PaymentGatewayStoreCredit  PaymentGateway = "STORE_CREDIT"
	PaymentGatewayLayaway      PaymentGateway = "LAYAWAY"
	PaymentGatewayOther        PaymentGateway = "OTHER"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Payment represents one payment applied to an order
type Payment struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID   string         `json:"storeId" gorm:"type:varchar(255);not null;index:idx_payments_store_ref,unique"`
	OrderID   *int64         `json:"orderId,omitempty" gorm:"index:idx_payments_order"`
	Reference string         `json:"reference" gorm:"type:varchar(100);not null;index:idx_payments_store_ref,unique"`
	Gateway   PaymentGateway `json:"gateway" gorm:"type:varchar(30);not null;default:'OTHER'"`
	Status    PaymentStatus  `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Amount    float64        `json:"amount" gorm:"type:decimal(12,2);not null;default:0"`
	PaidAt    *time.Time     `json:"paidAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// GetID returns the destination identifier
func (p *Payment) GetID() int64 {
	return p.ID
}
