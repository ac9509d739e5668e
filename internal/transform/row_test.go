package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSourceRowString(t *testing.T) {
	row := SourceRow{
		"name":  "  Goldsmith & Co  ",
		"raw":   []byte("consignment"),
		"count": int64(7),
		"empty": nil,
	}

	assert.Equal(t, "Goldsmith & Co", row.String("name"))
	assert.Equal(t, "consignment", row.String("raw"))
	assert.Equal(t, "7", row.String("count"))
	assert.Equal(t, "", row.String("empty"))
	assert.Equal(t, "", row.String("missing"))
}

func TestSourceRowInt64(t *testing.T) {
	row := SourceRow{
		"a": int64(5),
		"b": "12",
		"c": []byte(" 99 "),
		"d": "twelve",
		"e": nil,
	}

	for col, want := range map[string]int64{"a": 5, "b": 12, "c": 99} {
		v, ok := row.Int64(col)
		assert.True(t, ok, col)
		assert.Equal(t, want, v, col)
	}
	for _, col := range []string{"d", "e", "missing"} {
		_, ok := row.Int64(col)
		assert.False(t, ok, col)
	}
}

func TestSourceRowTime(t *testing.T) {
	now := time.Date(2019, 4, 2, 10, 30, 0, 0, time.UTC)
	row := SourceRow{
		"native":   now,
		"datetime": "2019-04-02 10:30:00",
		"date":     []byte("2019-04-02"),
		"zero":     "0000-00-00 00:00:00",
	}

	got, ok := row.Time("native")
	assert.True(t, ok)
	assert.True(t, got.Equal(now))

	got, ok = row.Time("datetime")
	assert.True(t, ok)
	assert.True(t, got.Equal(now))

	got, ok = row.Time("date")
	assert.True(t, ok)
	assert.Equal(t, 2019, got.Year())

	// MySQL zero dates are not times.
	_, ok = row.Time("zero")
	assert.False(t, ok)
}
