package models_test

import (
	"testing"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func menuItem(t *testing.T, id, name string, category models.Category, base string) models.MenuItem {
	t.Helper()
	item := models.MenuItem{ID: id, Name: name, Category: category}
	require.NoError(t, item.SetBasePrice(dec(base)))
	return item
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: expected %s, got %s", field, want, got.String())
}

func TestQuoteCart_EmptyCartIsAllZero(t *testing.T) {
	q := models.QuoteCart(nil, models.DiscountTypeNone, models.OrderTypeDineIn)
	assert.True(t, q.IsEmpty())
	assertMoney(t, "0", q.BaseAmount, "base")
	assertMoney(t, "0", q.ServiceFee, "service fee")
	assertMoney(t, "0", q.TotalAmount, "total")
	assertMoney(t, "0", q.VatPortion, "vat")
}

func TestQuoteCart_DineInNoDiscount(t *testing.T) {
	item := menuItem(t, "m1", "Americano", models.CategoryBeverages, "100")
	lines := []models.CartLine{{MenuItem: models.SnapshotMenuItem(item), Quantity: 1}}

	q := models.QuoteCart(lines, models.DiscountTypeNone, models.OrderTypeDineIn).WithCash(dec("150")).Rounded()

	assert.Equal(t, 1, q.ItemCount)
	assert.False(t, q.HasDiscount)
	assertMoney(t, "112.00", q.BaseAmount, "base")
	assertMoney(t, "0", q.DiscountAmount, "discount")
	assertMoney(t, "12.00", q.VatPortion, "vat")
	assertMoney(t, "112.00", q.AmountAfterDiscount, "after discount")
	assertMoney(t, "25", q.ServiceFee, "service fee")
	assertMoney(t, "137.00", q.TotalAmount, "total")
	assertMoney(t, "13.00", q.Change, "change")
}

func TestPosQuote_SettleKeepsTenderedCash(t *testing.T) {
	item := menuItem(t, "m1", "Americano", models.CategoryBeverages, "100")
	lines := []models.CartLine{{MenuItem: models.SnapshotMenuItem(item), Quantity: 1}}

	q := models.QuoteCart(lines, models.DiscountTypeNone, models.OrderTypeDineIn).Settle(dec("136.996"))
	assertMoney(t, "137.00", q.TotalAmount, "total")
	assertMoney(t, "136.996", q.CashProvided, "cash")
	assertMoney(t, "0", q.Change, "change")
	assert.True(t, q.CashProvided.LessThan(q.TotalAmount))
}

func TestQuoteCart_SeniorDiscountIsVatExempt(t *testing.T) {
	item := menuItem(t, "m1", "Americano", models.CategoryBeverages, "100")
	lines := []models.CartLine{{MenuItem: models.SnapshotMenuItem(item), Quantity: 1}}

	for _, dt := range []models.DiscountType{models.DiscountTypeSenior, models.DiscountTypePWD} {
		q := models.QuoteCart(lines, dt, models.OrderTypeDineIn).Rounded()
		assert.True(t, q.HasDiscount)
		assertMoney(t, "22.40", q.DiscountAmount, "discount")
		assertMoney(t, "12.00", q.VatPortion, "vat")
		assertMoney(t, "77.60", q.AmountAfterDiscount, "after discount")
		assertMoney(t, "102.60", q.TotalAmount, "total")
	}
}

func TestQuoteCart_TakeoutFeeAndQuantities(t *testing.T) {
	a := menuItem(t, "m1", "Americano", models.CategoryBeverages, "100")
	b := menuItem(t, "m2", "Garlic Rice", models.CategorySideDish, "45")
	lines := []models.CartLine{
		{MenuItem: models.SnapshotMenuItem(a), Quantity: 2},
		{MenuItem: models.SnapshotMenuItem(b), Quantity: 3},
	}

	q := models.QuoteCart(lines, models.DiscountTypeNone, models.OrderTypeTakeout).Rounded()

	// 2*112 + 3*50.40
	assert.Equal(t, 5, q.ItemCount)
	assertMoney(t, "375.20", q.BaseAmount, "base")
	assertMoney(t, "40.20", q.VatPortion, "vat")
	assertMoney(t, "50", q.ServiceFee, "service fee")
	assertMoney(t, "425.20", q.TotalAmount, "total")
}

func TestQuoteCart_TotalIsAfterDiscountPlusFee(t *testing.T) {
	a := menuItem(t, "m1", "Latte", models.CategoryBeverages, "133.33")
	lines := []models.CartLine{{MenuItem: models.SnapshotMenuItem(a), Quantity: 7}}
	for _, dt := range []models.DiscountType{models.DiscountTypeNone, models.DiscountTypeSenior} {
		for _, ot := range []models.OrderType{models.OrderTypeDineIn, models.OrderTypeTakeout} {
			q := models.QuoteCart(lines, dt, ot)
			assert.True(t, q.TotalAmount.Equal(q.AmountAfterDiscount.Add(q.ServiceFee)), "%s/%s", dt, ot)
		}
	}
}

func TestQuoteCart_NegativeAfterDiscountClamping(t *testing.T) {
	// a snapshot whose VAT exceeds what the discount leaves over
	lines := []models.CartLine{{
		MenuItem: models.MenuItemSnapshot{ID: "odd", Name: "Promo", TotalPrice: dec("10"), VatFee: dec("20")},
		Quantity: 1,
	}}

	raw := models.QuoteCart(lines, models.DiscountTypeSenior, models.OrderTypeDineIn)
	assertMoney(t, "-12", raw.AmountAfterDiscount, "unclamped")
	assertMoney(t, "13", raw.TotalAmount, "unclamped total")

	clamped := models.QuoteCartWithOptions(lines, models.DiscountTypeSenior, models.OrderTypeDineIn, models.QuoteOptions{ClampNonNegative: true})
	assertMoney(t, "0", clamped.AmountAfterDiscount, "clamped")
	assertMoney(t, "25", clamped.TotalAmount, "clamped total")
}

func TestMenuItem_VatIsDerivedFromBasePrice(t *testing.T) {
	cases := []struct {
		base, vat, total string
	}{
		{"0", "0", "0"},
		{"100", "12", "112"},
		{"45", "5.4", "50.4"},
		{"99.99", "12", "111.99"},
		{"10.04", "1.2", "11.24"},
	}
	for _, tc := range cases {
		item := menuItem(t, "m", "x", models.CategoryDesserts, tc.base)
		assertMoney(t, tc.vat, item.VatFee, "vat for "+tc.base)
		assertMoney(t, tc.total, item.TotalPrice, "total for "+tc.base)
	}

	var item models.MenuItem
	err := item.SetBasePrice(dec("-1"))
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
}

func TestNewMenuItem_ParsesUserInput(t *testing.T) {
	item, err := models.NewMenuItem{Name: " Ube Cheesecake ", Category: "dessert", BasePrice: "PHP 1,250.50"}.ToMenuItem()
	require.NoError(t, err)
	assert.Equal(t, "Ube Cheesecake", item.Name)
	assert.Equal(t, models.CategoryDesserts, item.Category)
	assertMoney(t, "1250.50", item.BasePrice, "base")
	assertMoney(t, "150.06", item.VatFee, "vat")
	assert.NotEmpty(t, item.ID)

	_, err = models.NewMenuItem{Name: "Tea", Category: "Beverages", BasePrice: "abc"}.ToMenuItem()
	assert.True(t, models.IsValidationError(err))
	_, err = models.NewMenuItem{Name: "Tea", Category: "Soup", BasePrice: "10"}.ToMenuItem()
	assert.True(t, models.IsValidationError(err))
	_, err = models.NewMenuItem{Name: "Tea", Category: "Beverages", BasePrice: "-10"}.ToMenuItem()
	assert.True(t, models.IsValidationError(err))
}
