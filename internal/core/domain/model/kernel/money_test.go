package kernel_test

import (
	"testing"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("positive_amount", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(1250.50))

		require.NoError(t, err)
		assert.Equal(t, "1250.50", m.String())
		assert.False(t, m.IsZero())
	})

	t.Run("zero_amount", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("negative_amount_rejected", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromFloat(-0.01))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := kernel.MoneyFromFloat(99.99)

	require.NoError(t, err)
	assert.True(t, m.IsEqual(mustMoney(t, 99.99)))
}

func mustMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}
