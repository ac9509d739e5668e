package models

import (
	"time"

	"github.com/google/uuid"
)

// RunMode mirrors migration.Mode for persistence
type RunMode string

const (
	RunModeLive           RunMode = "LIVE"
	RunModeDryRun         RunMode = "DRY_RUN"
	RunModeForceOverwrite RunMode = "FORCE_OVERWRITE"
)

// RunStatus represents the terminal state of a migration run
type RunStatus string

const (
	RunStatusCommitted  RunStatus = "COMMITTED"
	RunStatusRolledBack RunStatus = "ROLLED_BACK"
	RunStatusFailed     RunStatus = "FAILED"
)

// MigrationRunRecord is the audit trail of one migration run. It is written
// outside the run's own transaction so that failed and dry runs are recorded.
type MigrationRunRecord struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	EntityType  string     `json:"entityType" gorm:"type:varchar(50);not null;index:idx_runs_entity"`
	Scope       string     `json:"scope" gorm:"type:varchar(255);not null;index:idx_runs_scope"`
	TargetScope string     `json:"targetScope" gorm:"type:varchar(255);not null"`
	Mode        RunMode    `json:"mode" gorm:"type:varchar(20);not null"`
	Status      RunStatus  `json:"status" gorm:"type:varchar(20);not null"`
	RowsSeen    int64      `json:"rowsSeen" gorm:"not null;default:0"`
	Created     int64      `json:"created" gorm:"not null;default:0"`
	Updated     int64      `json:"updated" gorm:"not null;default:0"`
	Skipped     int64      `json:"skipped" gorm:"not null;default:0"`
	Errors      int64      `json:"errors" gorm:"not null;default:0"`
	Warnings    int64      `json:"warnings" gorm:"not null;default:0"`
	Error       string     `json:"error,omitempty" gorm:"type:text"`
	StartedAt   time.Time  `json:"startedAt" gorm:"not null"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}

// TableName specifies the table name for MigrationRunRecord
func (MigrationRunRecord) TableName() string {
	return "migration_runs"
}

// IdentityMapping is the row shape used by the table-backed identity-map store
type IdentityMapping struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EntityType    string    `json:"entityType" gorm:"type:varchar(50);not null;index:idx_idmap_entity_scope_source,unique"`
	Scope         string    `json:"scope" gorm:"type:varchar(255);not null;index:idx_idmap_entity_scope_source,unique"`
	SourceID      string    `json:"sourceId" gorm:"type:varchar(255);not null;index:idx_idmap_entity_scope_source,unique"`
	DestinationID int64     `json:"destinationId" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName specifies the table name for IdentityMapping
func (IdentityMapping) TableName() string {
	return "migration_identity_mappings"
}
