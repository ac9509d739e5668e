package transform

import "fmt"

// Record is implemented by every destination model the engine writes.
type Record interface {
	TableName() string
	GetID() int64
}

// TransformedRow is the output of a field transformer: a destination model
// ready to write, the natural key that makes writes idempotent, and the
// tracked column values compared when an overwrite is forced.
type TransformedRow struct {
	// SourceID is the legacy primary key, stringified for the identity map.
	SourceID string

	// Model is the destination record to create when no row matches the
	// natural key.
	Model Record

	// NaturalKey is a conjunction of destination columns that uniquely
	// identifies this record independent of auto-generated ids.
	NaturalKey map[string]any

	// Tracked holds destination column -> value for the fields that a
	// ForceOverwrite run compares and rewrites. Columns outside this set are
	// never touched on update.
	Tracked map[string]any

	// Warnings collects row-level transform warnings (unmapped enums,
	// un-coercible numbers, unresolved soft foreign keys). They never fail
	// the row.
	Warnings []string
}

// Warnf appends a formatted row-level warning.
func (t *TransformedRow) Warnf(format string, args ...any) {
	t.Warnings = append(t.Warnings, fmt.Sprintf(format, args...))
}
