package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductStatus represents product status
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// Product represents a jewelry item in the destination catalog.
// Jewelry attributes (metal, stone weight, clarity, color) are stored as a
// JSONB document because the attribute set varies by item type.
type Product struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID     string         `json:"storeId" gorm:"type:varchar(255);not null;index:idx_products_store_id;index:idx_products_store_sku,unique"`
	VendorID    *int64         `json:"vendorId,omitempty" gorm:"index:idx_products_vendor"`
	CategoryID  *int64         `json:"categoryId,omitempty" gorm:"index:idx_products_category"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	SKU         string         `json:"sku" gorm:"type:varchar(100);not null;index:idx_products_store_sku,unique"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	CostPrice   float64        `json:"costPrice" gorm:"type:decimal(12,2);default:0"`
	Status      ProductStatus  `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Attributes  datatypes.JSON `json:"attributes,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// GetID returns the destination identifier
func (p *Product) GetID() int64 {
	return p.ID
}
