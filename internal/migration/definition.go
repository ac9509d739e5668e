package migration

import (
	"gorm.io/gorm"

	"migration-service/internal/identity"
	"migration-service/internal/transform"
)

// TransformContext bundles everything a field transformer can reach: the
// source and target scopes, and the identity maps for every dependency
// entity type. Maps are read-only inputs here; only the owning run's engine
// records into the entity's own map.
type TransformContext struct {
	SourceScope string
	TargetScope string
	Maps        map[string]*identity.Map
}

// ResolveFK translates a legacy foreign key through the named dependency
// map. A missing map or missing entry yields (nil, false): partial linkage
// is preferred over dropping the record.
func (tc *TransformContext) ResolveFK(entityType, sourceID string) (*int64, bool) {
	m, ok := tc.Maps[entityType]
	if !ok || sourceID == "" {
		return nil, false
	}
	id, ok := m.Lookup(sourceID)
	if !ok {
		return nil, false
	}
	return &id, true
}

// TransformFunc converts one source row into a destination row. Returning
// (nil, nil) drops the row silently (counted as skipped); returning an error
// counts as a row-level error without aborting the run.
type TransformFunc func(row transform.SourceRow, tc *TransformContext) (*transform.TransformedRow, error)

// Definition wires one entity type into the engine: where its legacy rows
// live, how they transform, and how existing destination records are
// recognized. Everything here is configuration; the engine never knows
// entity specifics.
type Definition struct {
	EntityType  string
	LegacyTable string
	PrimaryKey  string
	ScopeColumn string

	// Filters narrows the source query (conjunction of equality/null
	// checks), e.g. excluding soft-deleted legacy rows.
	Filters map[string]any

	// Dependencies lists entity types whose identity maps must be loaded
	// before this entity migrates.
	Dependencies []string

	Transform TransformFunc

	// Matchers are tried in order when no destination row matches the
	// natural key, to adopt pre-existing records instead of creating
	// duplicates (email, then normalized name, then create).
	Matchers []identity.MatchStrategy

	// Prepare runs inside the run's transaction before the first row, for
	// per-entity setup such as seeding sales-channel rows.
	Prepare func(tx *gorm.DB, tc *TransformContext) error
}
