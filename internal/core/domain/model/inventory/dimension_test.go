package inventory_test

import (
	"testing"

	"timberops/internal/core/domain/model/inventory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimension_IsRange(t *testing.T) {
	tests := []struct {
		raw     string
		isRange bool
	}{
		{"25", false},
		{"25-32", true},
		{"4-6", true},
		{"-5", false}, // leading minus is a sign, not a range separator
		{"", false},
		{"2000", false},
		{"20 - 32", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.isRange, inventory.NewDimension(tt.raw).IsRange())
		})
	}
}

func TestDimension_Value(t *testing.T) {
	t.Run("single_numeric", func(t *testing.T) {
		v, ok := inventory.NewDimension("25.5").Value()

		require.True(t, ok)
		assert.True(t, v.Equal(decimal.NewFromFloat(25.5)))
	})

	t.Run("range_has_no_single_value", func(t *testing.T) {
		_, ok := inventory.NewDimension("25-32").Value()
		assert.False(t, ok)
	})

	t.Run("empty_has_no_value", func(t *testing.T) {
		_, ok := inventory.NewDimension("").Value()
		assert.False(t, ok)
	})

	t.Run("non_numeric_has_no_value", func(t *testing.T) {
		_, ok := inventory.NewDimension("abc").Value()
		assert.False(t, ok)
	})

	t.Run("whitespace_trimmed", func(t *testing.T) {
		v, ok := inventory.NewDimension(" 40 ").Value()

		require.True(t, ok)
		assert.True(t, v.Equal(decimal.NewFromInt(40)))
	})
}

func TestDeriveVolume(t *testing.T) {
	dim := func(raw string) inventory.Dimension { return inventory.NewDimension(raw) }

	t.Run("documented_formula", func(t *testing.T) {
		// 20mm × 100mm × 2000mm × 5 pieces = 0.020 m³
		v, ok := inventory.DeriveVolume(dim("20"), dim("100"), dim("2000"), dim("5"))

		require.True(t, ok)
		assert.True(t, v.Equal(decimal.NewFromFloat(0.02)), "got %s", v)
	})

	t.Run("range_input_disables_derivation", func(t *testing.T) {
		_, ok := inventory.DeriveVolume(dim("20"), dim("100"), dim("2000"), dim("4-6"))
		assert.False(t, ok)
	})

	t.Run("cleared_input_disables_derivation", func(t *testing.T) {
		_, ok := inventory.DeriveVolume(dim("20"), dim(""), dim("2000"), dim("5"))
		assert.False(t, ok)
	})

	t.Run("non_positive_input_disables_derivation", func(t *testing.T) {
		_, ok := inventory.DeriveVolume(dim("0"), dim("100"), dim("2000"), dim("5"))
		assert.False(t, ok)

		_, ok = inventory.DeriveVolume(dim("-20"), dim("100"), dim("2000"), dim("5"))
		assert.False(t, ok)
	})

	t.Run("precise_to_three_decimals", func(t *testing.T) {
		// 32mm × 150mm × 4250mm × 12 pieces = 0.2448 m³
		v, ok := inventory.DeriveVolume(dim("32"), dim("150"), dim("4250"), dim("12"))

		require.True(t, ok)
		assert.Equal(t, "0.245", v.StringFixed(3))
	})
}
