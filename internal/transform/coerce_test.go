package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumDictMap(t *testing.T) {
	dict := EnumDict{
		Values: map[string]string{
			"active":   "ACTIVE",
			"disabled": "INACTIVE",
		},
		Default: "ACTIVE",
	}

	t.Run("matches case-insensitively with surrounding whitespace", func(t *testing.T) {
		v, known := dict.Map("  DiSaBlEd ")
		assert.True(t, known)
		assert.Equal(t, "INACTIVE", v)
	})

	t.Run("unknown value falls back to default", func(t *testing.T) {
		v, known := dict.Map("archived")
		assert.False(t, known)
		assert.Equal(t, "ACTIVE", v)
	})

	t.Run("empty value falls back to default", func(t *testing.T) {
		v, known := dict.Map("")
		assert.False(t, known)
		assert.Equal(t, "ACTIVE", v)
	})
}

func TestMoney(t *testing.T) {
	tests := []struct {
		name string
		row  SourceRow
		want float64
		ok   bool
	}{
		{"plain float", SourceRow{"price": 12.5}, 12.5, true},
		{"formatted string", SourceRow{"price": "$1,234.50"}, 1234.50, true},
		{"integer", SourceRow{"price": int64(40)}, 40, true},
		{"byte slice from driver", SourceRow{"price": []byte("99.99")}, 99.99, true},
		{"empty string defaults", SourceRow{"price": ""}, 0, true},
		{"null defaults", SourceRow{"price": nil}, 0, true},
		{"absent column defaults", SourceRow{}, 0, true},
		{"garbage defaults with warning", SourceRow{"price": "N/A"}, 0, false},
		{"rounds to cents", SourceRow{"price": 10.006}, 10.01, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Money(tt.row, "price", 0)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestQuantity(t *testing.T) {
	q, ok := Quantity(SourceRow{"qty": int64(3)}, "qty", 0)
	assert.True(t, ok)
	assert.Equal(t, 3, q)

	q, ok = Quantity(SourceRow{"qty": nil}, "qty", 1)
	assert.True(t, ok)
	assert.Equal(t, 1, q)

	q, ok = Quantity(SourceRow{"qty": "many"}, "qty", 0)
	assert.False(t, ok)
	assert.Equal(t, 0, q)

	// An integral float from a decimal column is a count.
	q, ok = Quantity(SourceRow{"qty": 4.0}, "qty", 0)
	assert.True(t, ok)
	assert.Equal(t, 4, q)

	// A fractional one is not; it must not truncate silently.
	q, ok = Quantity(SourceRow{"qty": 3.5}, "qty", 0)
	assert.False(t, ok)
	assert.Equal(t, 0, q)
}

func TestDerivedKeyIsDeterministic(t *testing.T) {
	a := DerivedKey("SKU", "products", "42", "1001")
	b := DerivedKey("SKU", "products", "42", "1001")
	assert.Equal(t, a, b)
	assert.Regexp(t, `^SKU-[0-9A-F]{8}$`, a)

	// Different identity, different key.
	assert.NotEqual(t, a, DerivedKey("SKU", "products", "42", "1002"))
	assert.NotEqual(t, a, DerivedKey("SKU", "products", "43", "1001"))
	assert.NotEqual(t, a, DerivedKey("SKU", "customers", "42", "1001"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "estate-jewelry", Slugify("  Estate Jewelry "))
	assert.Equal(t, "14k-gold-chains", Slugify("14K Gold / Chains"))
	assert.Equal(t, "", Slugify("!!!"))
}
