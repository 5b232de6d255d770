// internal/core/domain/money_test.go
package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypesoft/catalog-api/internal/core/domain"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name         string
		amount       decimal.Decimal
		currency     string
		wantError    bool
		wantAmount   string
		wantCurrency string
	}{
		{
			name:         "valid_amount_and_currency",
			amount:       decimal.NewFromFloat(99.90),
			currency:     "BRL",
			wantAmount:   "99.9",
			wantCurrency: "BRL",
		},
		{
			name:         "zero_amount_is_valid",
			amount:       decimal.Zero,
			currency:     "USD",
			wantAmount:   "0",
			wantCurrency: "USD",
		},
		{
			name:         "rounds_to_two_decimal_places",
			amount:       decimal.NewFromFloat(10.999),
			currency:     "BRL",
			wantAmount:   "11",
			wantCurrency: "BRL",
		},
		{
			name:         "uppercases_currency",
			amount:       decimal.NewFromInt(5),
			currency:     "usd",
			wantAmount:   "5",
			wantCurrency: "USD",
		},
		{
			name:         "trims_currency_whitespace",
			amount:       decimal.NewFromInt(5),
			currency:     " eur ",
			wantAmount:   "5",
			wantCurrency: "EUR",
		},
		{
			name:      "negative_amount",
			amount:    decimal.NewFromFloat(-0.01),
			currency:  "BRL",
			wantError: true,
		},
		{
			name:      "empty_currency",
			amount:    decimal.NewFromInt(10),
			currency:  "",
			wantError: true,
		},
		{
			name:      "blank_currency",
			amount:    decimal.NewFromInt(10),
			currency:  "   ",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := domain.NewMoney(tt.amount, tt.currency)

			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidArgument)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, money.Amount.String())
			assert.Equal(t, tt.wantCurrency, money.Currency)
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	brl := func(t *testing.T, v float64) domain.Money {
		t.Helper()
		m, err := domain.NewMoney(decimal.NewFromFloat(v), "BRL")
		require.NoError(t, err)
		return m
	}

	t.Run("add_same_currency", func(t *testing.T) {
		sum, err := brl(t, 10.50).Add(brl(t, 4.25))
		require.NoError(t, err)
		assert.Equal(t, "14.75", sum.Amount.String())
	})

	t.Run("add_different_currency_fails", func(t *testing.T) {
		usd, err := domain.NewMoney(decimal.NewFromInt(1), "USD")
		require.NoError(t, err)

		_, err = brl(t, 10).Add(usd)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("subtract_within_bounds", func(t *testing.T) {
		diff, err := brl(t, 10).Subtract(brl(t, 4))
		require.NoError(t, err)
		assert.Equal(t, "6", diff.Amount.String())
	})

	t.Run("subtract_past_zero_fails", func(t *testing.T) {
		_, err := brl(t, 4).Subtract(brl(t, 10))
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("multiply", func(t *testing.T) {
		product, err := brl(t, 9.99).Multiply(decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.Equal(t, "29.97", product.Amount.String())
	})

	t.Run("divide", func(t *testing.T) {
		quotient, err := brl(t, 10).Divide(decimal.NewFromInt(4))
		require.NoError(t, err)
		assert.Equal(t, "2.5", quotient.Amount.String())
	})

	t.Run("divide_by_zero_fails", func(t *testing.T) {
		_, err := brl(t, 10).Divide(decimal.Zero)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	small, err := domain.NewMoney(decimal.NewFromInt(5), "BRL")
	require.NoError(t, err)
	large, err := domain.NewMoney(decimal.NewFromInt(10), "BRL")
	require.NoError(t, err)
	foreign, err := domain.NewMoney(decimal.NewFromInt(5), "USD")
	require.NoError(t, err)

	greater, err := large.IsGreaterThan(small)
	require.NoError(t, err)
	assert.True(t, greater)

	less, err := small.IsLessThan(large)
	require.NoError(t, err)
	assert.True(t, less)

	_, err = small.IsGreaterThan(foreign)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.True(t, small.Equal(small))
	assert.False(t, small.Equal(large))
	assert.False(t, small.Equal(foreign))
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"brl_symbol", 1234.5, "BRL", "R$ 1234.50"},
		{"usd_symbol", 99.9, "USD", "$ 99.90"},
		{"eur_symbol", 10, "EUR", "€ 10.00"},
		{"unknown_currency_suffix", 10, "GBP", "10.00 GBP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := domain.NewMoney(decimal.NewFromFloat(tt.amount), tt.currency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, money.String())
		})
	}
}
