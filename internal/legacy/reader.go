package legacy

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"migration-service/internal/transform"
)

var (
	// ErrSourceUnavailable indicates the legacy connection could not be
	// established. Pre-flight; the run never starts.
	ErrSourceUnavailable = errors.New("legacy source unavailable")

	// ErrScopeNotFound indicates the requested legacy store id does not
	// exist in the source database. Pre-flight; the run never starts.
	ErrScopeNotFound = errors.New("legacy scope not found")
)

// Query describes one chunked read over a legacy table, scoped to one store.
// Filters is a conjunction of equality checks (nil value = IS NULL); no
// arbitrary predicates are accepted.
type Query struct {
	Table       string
	PrimaryKey  string
	ScopeColumn string
	Scope       string
	Filters     map[string]any
	ChunkSize   int
	Limit       int64
}

// Reader performs deterministic, restartable iteration over legacy tables.
// Rows come back in primary-key order in fixed-size chunks; re-invoking Read
// yields the same sequence as long as the source is not mutated underneath.
type Reader struct {
	db  *gorm.DB
	log *logrus.Entry
}

// NewReader creates a reader over the legacy connection.
func NewReader(db *gorm.DB, logger *logrus.Logger) *Reader {
	return &Reader{
		db:  db,
		log: logger.WithField("component", "source-reader"),
	}
}

// Ping verifies the legacy connection before a run starts.
func (r *Reader) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return nil
}

// ScopeExists checks the legacy stores table for the given store id.
func (r *Reader) ScopeExists(ctx context.Context, scope string) error {
	var count int64
	if err := r.db.WithContext(ctx).Table("stores").Where("id = ?", scope).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: checking store %s: %v", ErrSourceUnavailable, scope, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: store %s", ErrScopeNotFound, scope)
	}
	return nil
}

// Read iterates q's table in primary-key order, invoking fn for every row.
// An error from fn stops iteration and is returned as-is.
func (r *Reader) Read(ctx context.Context, q Query, fn func(row transform.SourceRow) error) error {
	if q.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be a positive integer, got %d", q.ChunkSize)
	}

	var lastPK int64
	var seen int64
	for {
		chunk := q.ChunkSize
		if q.Limit > 0 && q.Limit-seen < int64(chunk) {
			chunk = int(q.Limit - seen)
		}
		if chunk == 0 {
			return nil
		}

		var batch []map[string]any
		tx := r.db.WithContext(ctx).Table(q.Table).
			Where(fmt.Sprintf("%s > ?", q.PrimaryKey), lastPK)
		if q.ScopeColumn != "" {
			tx = tx.Where(fmt.Sprintf("%s = ?", q.ScopeColumn), q.Scope)
		}
		for col, v := range q.Filters {
			if v == nil {
				tx = tx.Where(fmt.Sprintf("%s IS NULL", col))
			} else {
				tx = tx.Where(fmt.Sprintf("%s = ?", col), v)
			}
		}
		if err := tx.Order(q.PrimaryKey + " ASC").Limit(chunk).Find(&batch).Error; err != nil {
			return fmt.Errorf("failed to read %s after pk %d: %w", q.Table, lastPK, err)
		}

		for _, raw := range batch {
			row := transform.SourceRow(raw)
			pk, ok := row.Int64(q.PrimaryKey)
			if !ok {
				return fmt.Errorf("table %s: row with non-integer primary key %q", q.Table, row.String(q.PrimaryKey))
			}
			if err := fn(row); err != nil {
				return err
			}
			lastPK = pk
			seen++
		}

		r.log.WithFields(logrus.Fields{
			"table":   q.Table,
			"last_pk": lastPK,
			"seen":    seen,
		}).Debug("Chunk processed")

		if len(batch) < chunk {
			return nil
		}
	}
}
