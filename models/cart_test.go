package models_test

import (
	"errors"
	"testing"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_MutationDropsQuote(t *testing.T) {
	cart := models.NewCart(models.QuoteOptions{})
	item := menuItem(t, "m1", "Americano", models.CategoryBeverages, "100")

	require.NoError(t, cart.Add(item, 1))
	require.NoError(t, cart.Add(item, 2))
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	_, err := cart.Quote(models.DiscountTypeNone, models.OrderTypeDineIn)
	require.NoError(t, err)
	assert.Equal(t, models.CartQuoted, cart.State())

	require.NoError(t, cart.Adjust("m1", -1))
	assert.Equal(t, models.CartBuilding, cart.State())
	_, ok := cart.CurrentQuote()
	assert.False(t, ok)

	require.NoError(t, cart.Adjust("m1", -2))
	assert.True(t, cart.IsEmpty())
	assert.ErrorIs(t, cart.Remove("m1"), models.ErrLineNotFound)
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	cart := models.NewCart(models.QuoteOptions{})
	err := cart.Add(menuItem(t, "m1", "Americano", models.CategoryBeverages, "100"), 0)
	assert.True(t, models.IsValidationError(err))
	assert.True(t, cart.IsEmpty())
}

func TestCart_CommitProtocol(t *testing.T) {
	cart := models.NewCart(models.QuoteOptions{})
	item := menuItem(t, "m1", "Americano", models.CategoryBeverages, "100")

	_, _, err := cart.BeginCommit()
	assert.ErrorIs(t, err, models.ErrCartNotQuoted)

	_, err = cart.Quote(models.DiscountTypeNone, models.OrderTypeDineIn)
	require.NoError(t, err)
	_, _, err = cart.BeginCommit()
	assert.ErrorIs(t, err, models.ErrCartEmpty)
	assert.True(t, models.IsValidationError(err))

	require.NoError(t, cart.Add(item, 1))
	_, err = cart.Quote(models.DiscountTypeNone, models.OrderTypeTakeout)
	require.NoError(t, err)

	lines, quote, err := cart.BeginCommit()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assertMoney(t, "162", quote.TotalAmount, "total")

	// locked while committing
	assert.ErrorIs(t, cart.Add(item, 1), models.ErrCartCommitted)

	cart.AbortCommit()
	assert.Equal(t, models.CartQuoted, cart.State())

	_, _, err = cart.BeginCommit()
	require.NoError(t, err)
	cart.FinishCommit()
	assert.Equal(t, models.CartCommitted, cart.State())
	assert.ErrorIs(t, cart.Clear(), models.ErrCartCommitted)
	_, err = cart.Quote(models.DiscountTypeNone, models.OrderTypeTakeout)
	assert.True(t, errors.Is(err, models.ErrCartCommitted))
}
