package models

import (
	"time"
)

// TagKind distinguishes product tags from customer tags
type TagKind string

const (
	TagKindProduct  TagKind = "PRODUCT"
	TagKindCustomer TagKind = "CUSTOMER"
	TagKindGeneral  TagKind = "GENERAL"
)

// Tag represents a taxonomy tag migrated from the legacy POS
type Tag struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreID   string    `json:"storeId" gorm:"type:varchar(255);not null;index:idx_tags_store_slug,unique"`
	Slug      string    `json:"slug" gorm:"type:varchar(100);not null;index:idx_tags_store_slug,unique"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Kind      TagKind   `json:"kind" gorm:"type:varchar(20);not null;default:'GENERAL'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// GetID returns the destination identifier
func (t *Tag) GetID() int64 {
	return t.ID
}
