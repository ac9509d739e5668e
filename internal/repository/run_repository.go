package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"migration-service/internal/models"
)

// RunRepository defines the interface for migration run audit records
type RunRepository interface {
	Record(ctx context.Context, rec *models.MigrationRunRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MigrationRunRecord, error)
	List(ctx context.Context, filters RunFilters) ([]models.MigrationRunRecord, int64, error)
}

// RunFilters represents filters for querying run records
type RunFilters struct {
	EntityType string
	Scope      string
	Status     string
	Page       int
	Limit      int
}

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new run audit repository
func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Record(ctx context.Context, rec *models.MigrationRunRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *runRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MigrationRunRecord, error) {
	var rec models.MigrationRunRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *runRepository) List(ctx context.Context, filters RunFilters) ([]models.MigrationRunRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MigrationRunRecord{})

	if filters.EntityType != "" {
		query = query.Where("entity_type = ?", filters.EntityType)
	}
	if filters.Scope != "" {
		query = query.Where("scope = ?", filters.Scope)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var recs []models.MigrationRunRecord
	err := query.Order("started_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}
