package models

import (
	"time"

	"gorm.io/gorm"
)

// RepairStatus represents the status of a repair ticket
type RepairStatus string

const (
	RepairStatusPending    RepairStatus = "PENDING"
	RepairStatusInProgress RepairStatus = "IN_PROGRESS"
	RepairStatusReady      RepairStatus = "READY"
	RepairStatusPickedUp   RepairStatus = "PICKED_UP"
	RepairStatusCancelled  RepairStatus = "CANCELLED"
)

// Repair represents a jewelry repair ticket migrated from the legacy POS
type Repair struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID      string         `json:"storeId" gorm:"type:varchar(255);not null;index:idx_repairs_store_ticket,unique"`
	TicketNumber string         `json:"ticketNumber" gorm:"type:varchar(100);not null;index:idx_repairs_store_ticket,unique"`
	CustomerID   *int64         `json:"customerId,omitempty" gorm:"index:idx_repairs_customer"`
	Description  string         `json:"description" gorm:"type:text"`
	Status       RepairStatus   `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Quote        float64        `json:"quote" gorm:"type:decimal(12,2);default:0"`
	PromisedAt   *time.Time     `json:"promisedAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Repair
func (Repair) TableName() string {
	return "repairs"
}

// GetID returns the destination identifier
func (r *Repair) GetID() int64 {
	return r.ID
}
