package models

import (
	"time"

	"gorm.io/gorm"
)

// VendorStatus represents vendor status
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "ACTIVE"
	VendorStatusInactive VendorStatus = "INACTIVE"
)

// Vendor represents a supplier/consigner of jewelry inventory
type Vendor struct {
	ID        int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID   string       `json:"storeId" gorm:"type:varchar(255);not null;index:idx_vendors_store_id;index:idx_vendors_store_name,unique"`
	Name      string       `json:"name" gorm:"type:varchar(255);not null;index:idx_vendors_store_name,unique"`
	Email     string       `json:"email" gorm:"type:varchar(255)"`
	Phone     string       `json:"phone" gorm:"type:varchar(50)"`
	Status    VendorStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Notes     string       `json:"notes" gorm:"type:text"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Vendor
func (Vendor) TableName() string {
	return "vendors"
}

// GetID returns the destination identifier
func (v *Vendor) GetID() int64 {
	return v.ID
}
