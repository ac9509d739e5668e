package identity

import (
	"context"
)

// Store persists identity maps between migration runs. Implementations must
// make Save atomic from the caller's perspective: a crash mid-save must not
// leave a partially written map.
//
// Load returns an empty map when nothing was persisted yet; that is not an
// error, it is the normal state before an entity's first run.
type Store interface {
	Load(ctx context.Context, entityType, scope string) (*Map, error)
	Save(ctx context.Context, m *Map) error
}
