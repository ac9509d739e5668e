package identity

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"migration-service/internal/models"
)

// TableStore persists identity maps in the destination database itself, in
// the migration_identity_mappings table. Useful when the destination DB is
// the only durable storage the operator has.
type TableStore struct {
	db *gorm.DB
}

// NewTableStore creates a table-backed identity map store.
func NewTableStore(db *gorm.DB) *TableStore {
	return &TableStore{db: db}
}

// Load reads all persisted mappings for one (entity type, scope) pair.
func (s *TableStore) Load(ctx context.Context, entityType, scope string) (*Map, error) {
	m := NewMap(entityType, scope)

	var rows []models.IdentityMapping
	if err := s.db.WithContext(ctx).
		Where("entity_type = ? AND scope = ?", entityType, scope).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load identity map %s/%s: %w", entityType, scope, err)
	}

	entries := make(map[string]int64, len(rows))
	for _, row := range rows {
		entries[row.SourceID] = row.DestinationID
	}
	m.restore(entries)
	return m, nil
}

// Save upserts the full map in one transaction keyed on
// (entity_type, scope, source_id), so a crash mid-save rolls back cleanly.
func (s *TableStore) Save(ctx context.Context, m *Map) error {
	entries := m.Entries()
	if len(entries) == 0 {
		return nil
	}

	rows := make([]models.IdentityMapping, 0, len(entries))
	for sourceID, destID := range entries {
		rows = append(rows, models.IdentityMapping{
			EntityType:    m.EntityType,
			Scope:         m.Scope,
			SourceID:      sourceID,
			DestinationID: destID,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity_type"}, {Name: "scope"}, {Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"destination_id", "updated_at"}),
		}).CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save identity map %s/%s: %w", m.EntityType, m.Scope, err)
	}
	return nil
}
