package transform

import (
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// EnumDict maps legacy enum spellings (matched case-insensitively, trimmed)
// to one destination value. Unknown spellings resolve to Default rather than
// failing the row; legacy data is expected to contain statuses nobody
// remembers adding.
type EnumDict struct {
	Values  map[string]string
	Default string
}

// Map resolves a legacy enum value. The second return value reports whether
// the value was found in the dictionary; callers count a miss as a warning.
func (d EnumDict) Map(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return d.Default, false
	}
	if v, ok := d.Values[key]; ok {
		return v, true
	}
	return d.Default, false
}

// Money coerces a legacy money/quantity field to a fixed-point amount.
// Legacy columns hold empty strings, nulls, "$1,234.50", and plain numbers
// interchangeably. Malformed input yields the default with ok=false; it
// never fails the row.
func Money(row SourceRow, col string, def float64) (float64, bool) {
	v, present := row[col]
	if !present || v == nil {
		return def, true
	}
	switch n := v.(type) {
	case float64:
		return round2(n), true
	case float32:
		return round2(float64(n)), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	s := strings.TrimSpace(row.String(col))
	if s == "" {
		return def, true
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def, false
	}
	return round2(f), true
}

// Quantity coerces a legacy count field to an int with a default. A
// fractional value is not a count; it yields the default with ok=false
// rather than truncating silently.
func Quantity(row SourceRow, col string, def int) (int, bool) {
	v, present := row[col]
	if !present || v == nil {
		return def, true
	}
	if f, ok := v.(float64); ok {
		if f != math.Trunc(f) {
			return def, false
		}
		return int(f), true
	}
	if i, ok := row.Int64(col); ok {
		return int(i), true
	}
	if row.String(col) == "" {
		return def, true
	}
	return def, false
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// DerivedKey deterministically derives a natural-key fallback from a row's
// identity. The same (entity, scope, sourceID) always produces the same key,
// so repeated runs on the same input resolve to the same destination row.
func DerivedKey(prefix, entityType, scope, sourceID string) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%s:%s", entityType, scope, sourceID)
	return fmt.Sprintf("%s-%08X", prefix, h.Sum32())
}

// Slugify normalizes a legacy tag/category name into a stable slug.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
