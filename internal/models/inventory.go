package models

import (
	"time"
)

// InventoryLevel represents on-hand stock for one SKU at one location
type InventoryLevel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID   string    `json:"storeId" gorm:"type:varchar(255);not null;index:idx_inventory_store_sku_loc,unique"`
	ProductID *int64    `json:"productId,omitempty" gorm:"index:idx_inventory_product"`
	SKU       string    `json:"sku" gorm:"type:varchar(100);not null;index:idx_inventory_store_sku_loc,unique"`
	Location  string    `json:"location" gorm:"type:varchar(100);not null;default:'main';index:idx_inventory_store_sku_loc,unique"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for InventoryLevel
func (InventoryLevel) TableName() string {
	return "inventory_levels"
}

// GetID returns the destination identifier
func (i *InventoryLevel) GetID() int64 {
	return i.ID
}
