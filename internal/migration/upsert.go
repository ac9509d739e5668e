package migration

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"gorm.io/gorm"

	"migration-service/internal/identity"
	"migration-service/internal/transform"
)

// UpsertResult reports the decision made for one transformed row.
type UpsertResult struct {
	Action        Action
	DestinationID int64
	MatchedBy     string
}

// UpsertExecutor decides and performs exactly one of create, update, or skip
// for each transformed row, keyed on the row's natural key. All writes go
// through the run's outer transaction, so a dry run discards them wholesale
// at rollback instead of re-checking the mode at every call site.
type UpsertExecutor struct {
	tx *gorm.DB
}

// NewUpsertExecutor binds an executor to the run's transaction.
func NewUpsertExecutor(tx *gorm.DB) *UpsertExecutor {
	return &UpsertExecutor{tx: tx}
}

// Apply looks up an existing destination record by natural key (falling back
// to the definition's match strategies), then creates, updates, or skips.
// Calling Apply twice with the same natural key and unchanged row never
// creates a duplicate.
func (u *UpsertExecutor) Apply(t *transform.TransformedRow, mode Mode, matchers []identity.MatchStrategy) (UpsertResult, error) {
	existingID, existing, err := u.findByNaturalKey(t)
	if err != nil {
		return UpsertResult{}, &WriteError{Table: t.Model.TableName(), SourceID: t.SourceID, Err: err}
	}

	matchedBy := "natural_key"
	if existingID == 0 && len(matchers) > 0 {
		existingID, matchedBy, err = identity.Resolve(u.tx, t, matchers)
		if err != nil {
			return UpsertResult{}, &WriteError{Table: t.Model.TableName(), SourceID: t.SourceID, Err: err}
		}
	}

	if existingID == 0 {
		if err := u.tx.Create(t.Model).Error; err != nil {
			return UpsertResult{}, &WriteError{Table: t.Model.TableName(), SourceID: t.SourceID, Err: err}
		}
		return UpsertResult{Action: ActionCreated, DestinationID: t.Model.GetID()}, nil
	}

	if mode == ForceOverwrite && u.changed(existing, t.Tracked) {
		updates := make(map[string]any, len(t.Tracked))
		for col, v := range t.Tracked {
			updates[col] = v
		}
		if err := u.tx.Model(t.Model).Where("id = ?", existingID).Updates(updates).Error; err != nil {
			return UpsertResult{}, &WriteError{Table: t.Model.TableName(), SourceID: t.SourceID, Err: err}
		}
		return UpsertResult{Action: ActionUpdated, DestinationID: existingID, MatchedBy: matchedBy}, nil
	}

	return UpsertResult{Action: ActionSkipped, DestinationID: existingID, MatchedBy: matchedBy}, nil
}

// findByNaturalKey returns the id and raw column values of the destination
// row matching t's natural key, or (0, nil) when none exists.
func (u *UpsertExecutor) findByNaturalKey(t *transform.TransformedRow) (int64, map[string]any, error) {
	var rows []map[string]any
	if err := u.tx.Model(t.Model).Where(t.NaturalKey).Limit(1).Find(&rows).Error; err != nil {
		return 0, nil, fmt.Errorf("natural key lookup: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil, nil
	}
	id, ok := scanID(rows[0]["id"])
	if !ok {
		return 0, nil, fmt.Errorf("natural key lookup: row in %s has unreadable id %v", t.Model.TableName(), rows[0]["id"])
	}
	return id, rows[0], nil
}

// changed reports whether any tracked field differs from the stored row.
// When the row was adopted through a match strategy the stored values were
// never loaded, so a forced run always rewrites it.
func (u *UpsertExecutor) changed(existing map[string]any, tracked map[string]any) bool {
	if existing == nil {
		return true
	}
	for col, want := range tracked {
		have, ok := existing[col]
		if !ok {
			return true
		}
		if !looselyEqual(have, want) {
			return true
		}
	}
	return false
}

func scanID(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case []byte:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// looselyEqual compares a stored column value against a tracked Go value
// without assuming driver types: numbers compare numerically, times by
// instant, everything else by string form. Tracked pointer fields (soft
// foreign keys) are dereferenced first.
func looselyEqual(have, want any) bool {
	have, want = deref(have), deref(want)
	if have == nil || want == nil {
		return have == nil && want == nil
	}
	if hf, ok := asFloat(have); ok {
		if wf, ok := asFloat(want); ok {
			return hf == wf
		}
	}
	if ht, ok := have.(time.Time); ok {
		if wt, ok := want.(time.Time); ok {
			return ht.Equal(wt)
		}
	}
	return stringify(have) == stringify(want)
}

// stringify renders a value for the fallback comparison. Byte-slice-kinded
// values (raw driver columns, datatypes.JSON) carry text and must compare as
// text, not as a printed list of byte values.
func stringify(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return string(rv.Bytes())
	}
	return fmt.Sprint(v)
}

func deref(v any) any {
	switch p := v.(type) {
	case *int64:
		if p == nil {
			return nil
		}
		return *p
	case *float64:
		if p == nil {
			return nil
		}
		return *p
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *time.Time:
		if p == nil {
			return nil
		}
		return *p
	default:
		return v
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case uint64:
		return float64(n), true
	case []byte:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
