package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle status of a migrated order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

// Order represents a sale migrated from the legacy POS
type Order struct {
	ID             int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID        string         `json:"storeId" gorm:"type:varchar(255);not null;index:idx_orders_store_id;index:idx_orders_store_invoice,unique"`
	InvoiceNumber  string         `json:"invoiceNumber" gorm:"type:varchar(100);not null;index:idx_orders_store_invoice,unique"`
	CustomerID     *int64         `json:"customerId,omitempty" gorm:"index:idx_orders_customer"`
	SalesChannelID *int64         `json:"salesChannelId,omitempty" gorm:"index:idx_orders_channel"`
	Status         OrderStatus    `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Currency       string         `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	Subtotal       float64        `json:"subtotal" gorm:"type:decimal(12,2);not null;default:0"`
	TaxAmount      float64        `json:"taxAmount" gorm:"type:decimal(12,2);default:0"`
	ShippingCost   float64        `json:"shippingCost" gorm:"type:decimal(12,2);default:0"`
	DiscountAmount float64        `json:"discountAmount" gorm:"type:decimal(12,2);default:0"`
	Total          float64        `json:"total" gorm:"type:decimal(12,2);not null;default:0"`
	Notes          string         `json:"notes" gorm:"type:text"`
	PlacedAt       *time.Time     `json:"placedAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// GetID returns the destination identifier
func (o *Order) GetID() int64 {
	return o.ID
}

// SalesChannel represents a sales channel (in-store, web, marketplaces).
// Channel rows are seeded once per store; legacy orders resolve their channel
// through the sales_channels identity map.
type SalesChannel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID   string    `json:"storeId" gorm:"type:varchar(255);not null;index:idx_channels_store_slug,unique"`
	Slug      string    `json:"slug" gorm:"type:varchar(50);not null;index:idx_channels_store_slug,unique"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for SalesChannel
func (SalesChannel) TableName() string {
	return "sales_channels"
}

// GetID returns the destination identifier
func (s *SalesChannel) GetID() int64 {
	return s.ID
}
