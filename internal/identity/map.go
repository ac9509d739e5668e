package identity

import (
	"fmt"
	"sort"
)

// ConflictError is returned when a source id is recorded against a different
// destination id than a previous run established. It indicates double
// processing corrupting the map and always aborts the run.
type ConflictError struct {
	EntityType string
	Scope      string
	SourceID   string
	Existing   int64
	Attempted  int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting identity mapping for %s/%s source %s: already %d, attempted %d",
		e.EntityType, e.Scope, e.SourceID, e.Existing, e.Attempted)
}

// Map translates legacy source ids to destination ids for one
// (entity type, scope) pair. Only the owning migration run mutates a map;
// dependent runs receive it read-only.
type Map struct {
	EntityType string
	Scope      string

	entries map[string]int64
	dirty   bool
}

// NewMap returns an empty map for the given entity type and scope.
func NewMap(entityType, scope string) *Map {
	return &Map{
		EntityType: entityType,
		Scope:      scope,
		entries:    make(map[string]int64),
	}
}

// Lookup returns the destination id recorded for sourceID.
func (m *Map) Lookup(sourceID string) (int64, bool) {
	id, ok := m.entries[sourceID]
	return id, ok
}

// Record inserts one mapping. Re-recording the same destination id is a
// no-op; recording a different one fails with a ConflictError.
func (m *Map) Record(sourceID string, destinationID int64) error {
	if existing, ok := m.entries[sourceID]; ok {
		if existing == destinationID {
			return nil
		}
		return &ConflictError{
			EntityType: m.EntityType,
			Scope:      m.Scope,
			SourceID:   sourceID,
			Existing:   existing,
			Attempted:  destinationID,
		}
	}
	m.entries[sourceID] = destinationID
	m.dirty = true
	return nil
}

// Len returns the number of recorded mappings.
func (m *Map) Len() int {
	return len(m.entries)
}

// Dirty reports whether the map changed since it was loaded.
func (m *Map) Dirty() bool {
	return m.dirty
}

// Entries returns a copy of the mappings, for persistence and inspection.
func (m *Map) Entries() map[string]int64 {
	out := make(map[string]int64, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out
}

// SourceIDs returns the recorded source ids in sorted order. Used by the
// audit API so map dumps are diffable.
func (m *Map) SourceIDs() []string {
	ids := make([]string, 0, len(m.entries))
	for k := range m.entries {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}

// restore loads persisted entries without marking the map dirty.
func (m *Map) restore(entries map[string]int64) {
	for k, v := range entries {
		m.entries[k] = v
	}
	m.dirty = false
}
