package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/inventory"
)

func TestWeightedUnitPrice(t *testing.T) {
	got := inventory.WeightedUnitPrice(
		decimal.NewFromInt(10), decimal.NewFromInt(20),
		decimal.NewFromInt(30), decimal.NewFromInt(40),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(35)), "got %s", got)
}

func TestWeightedUnitPrice_SinStockPrevio(t *testing.T) {
	got := inventory.WeightedUnitPrice(decimal.Zero, decimal.NewFromInt(99), decimal.NewFromInt(5), decimal.RequireFromString("12.5"))
	assert.True(t, got.Equal(decimal.RequireFromString("12.5")))
}

func TestWeightedUnitPrice_CantidadTotalCero(t *testing.T) {
	got := inventory.WeightedUnitPrice(decimal.Zero, decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(10))
	assert.True(t, got.IsZero())
}
