package identity

import (
	"fmt"

	"gorm.io/gorm"

	"migration-service/internal/transform"
)

// MatchStrategy attempts to locate an existing destination record for a
// transformed row by one heuristic (email, normalized name, SKU). Find
// returns 0 when the strategy has no match; any error is fatal for the run.
type MatchStrategy struct {
	Name string
	Find func(tx *gorm.DB, row *transform.TransformedRow) (int64, error)
}

// Resolve tries each strategy in order and stops at the first match. It
// returns the matched destination id and the name of the strategy that
// produced it, or (0, "") when nothing matched and the caller should create.
func Resolve(tx *gorm.DB, row *transform.TransformedRow, strategies []MatchStrategy) (int64, string, error) {
	for _, s := range strategies {
		id, err := s.Find(tx, row)
		if err != nil {
			return 0, "", fmt.Errorf("match strategy %s failed: %w", s.Name, err)
		}
		if id != 0 {
			return id, s.Name, nil
		}
	}
	return 0, "", nil
}
