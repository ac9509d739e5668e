package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomerStatus represents customer status
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
	CustomerStatusBlocked  CustomerStatus = "BLOCKED"
)

// Customer represents a retail customer migrated from the legacy POS
type Customer struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID   string         `json:"storeId" gorm:"type:varchar(255);not null;index:idx_customers_store_id;index:idx_customers_store_email,unique"`
	Email     string         `json:"email" gorm:"type:varchar(255);not null;index:idx_customers_store_email,unique"`
	FirstName string         `json:"firstName" gorm:"type:varchar(100)"`
	LastName  string         `json:"lastName" gorm:"type:varchar(100)"`
	Phone     string         `json:"phone" gorm:"type:varchar(50)"`
	Address   string         `json:"address" gorm:"type:varchar(255)"`
	City      string         `json:"city" gorm:"type:varchar(100)"`
	State     string         `json:"state" gorm:"type:varchar(100)"`
	Zip       string         `json:"zip" gorm:"type:varchar(20)"`
	Country   string         `json:"country" gorm:"type:varchar(2);default:'US'"`
	Status    CustomerStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// GetID returns the destination identifier
func (c *Customer) GetID() int64 {
	return c.ID
}
