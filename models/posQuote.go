package models

import (
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/shopspring/decimal"
)

var (
	DineInServiceFee  = decimal.NewFromInt(25)
	TakeoutServiceFee = decimal.NewFromInt(50)
)

type CartLine struct {
	MenuItem MenuItemSnapshot `json:"menu_item"`
	Quantity int              `json:"quantity"`
}

// PosQuote is the priced checkout view of a cart. Amounts are kept in full
// precision until Rounded is called.
type PosQuote struct {
	ItemCount           int             `json:"item_count"`
	DiscountType        DiscountType    `json:"discount_type"`
	OrderType           OrderType       `json:"order_type"`
	HasDiscount         bool            `json:"has_discount"`
	BaseAmount          decimal.Decimal `json:"base_amount"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	VatPortion          decimal.Decimal `json:"vat_portion"`
	AmountAfterDiscount decimal.Decimal `json:"amount_after_discount"`
	ServiceFee          decimal.Decimal `json:"service_fee"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	CashProvided        decimal.Decimal `json:"cash_provided"`
	Change              decimal.Decimal `json:"change"`
}

type QuoteOptions struct {
	// ClampNonNegative floors amountAfterDiscount at zero when discount plus VAT exceed the base.
	ClampNonNegative bool
}

func QuoteCart(lines []CartLine, discountType DiscountType, orderType OrderType) PosQuote {
	return QuoteCartWithOptions(lines, discountType, orderType, QuoteOptions{})
}

func QuoteCartWithOptions(lines []CartLine, discountType DiscountType, orderType OrderType, opts QuoteOptions) PosQuote {
	quote := PosQuote{
		DiscountType:        discountType,
		OrderType:           orderType,
		HasDiscount:         discountType.HasDiscount(),
		BaseAmount:          decimal.Zero,
		DiscountAmount:      decimal.Zero,
		VatPortion:          decimal.Zero,
		AmountAfterDiscount: decimal.Zero,
		ServiceFee:          decimal.Zero,
		TotalAmount:         decimal.Zero,
		CashProvided:        decimal.Zero,
		Change:              decimal.Zero,
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		quote.ItemCount += line.Quantity
		quote.BaseAmount = quote.BaseAmount.Add(utils.LineAmount(line.MenuItem.TotalPrice, line.Quantity))
		quote.VatPortion = quote.VatPortion.Add(utils.LineAmount(line.MenuItem.VatFee, line.Quantity))
	}
	if quote.ItemCount == 0 {
		return quote
	}

	if quote.HasDiscount {
		quote.DiscountAmount = utils.CalculateDiscountAmount(quote.BaseAmount, utils.DiscountRate)
		// discounted customers are VAT exempt
		quote.AmountAfterDiscount = quote.BaseAmount.Sub(quote.DiscountAmount).Sub(quote.VatPortion)
	} else {
		quote.AmountAfterDiscount = quote.BaseAmount.Sub(quote.DiscountAmount)
	}
	if opts.ClampNonNegative && quote.AmountAfterDiscount.IsNegative() {
		quote.AmountAfterDiscount = decimal.Zero
	}

	if orderType == OrderTypeDineIn {
		quote.ServiceFee = DineInServiceFee
	} else {
		quote.ServiceFee = TakeoutServiceFee
	}
	quote.TotalAmount = quote.AmountAfterDiscount.Add(quote.ServiceFee)
	return quote
}

func (q PosQuote) IsEmpty() bool {
	return q.ItemCount == 0
}

// WithCash records tendered cash. Change may come out negative; callers decide whether to accept it.
func (q PosQuote) WithCash(cash decimal.Decimal) PosQuote {
	q.CashProvided = cash
	q.Change = cash.Sub(q.TotalAmount)
	return q
}

// Settle rounds the quote and records cash as tendered. Change is measured
// against the rounded total.
func (q PosQuote) Settle(cash decimal.Decimal) PosQuote {
	q = q.Rounded()
	q.CashProvided = cash
	q.Change = utils.RoundMoney(cash.Sub(q.TotalAmount))
	return q
}

// Rounded is the quote as displayed and persisted.
func (q PosQuote) Rounded() PosQuote {
	q.BaseAmount = utils.RoundMoney(q.BaseAmount)
	q.DiscountAmount = utils.RoundMoney(q.DiscountAmount)
	q.VatPortion = utils.RoundMoney(q.VatPortion)
	q.AmountAfterDiscount = utils.RoundMoney(q.AmountAfterDiscount)
	q.ServiceFee = utils.RoundMoney(q.ServiceFee)
	q.TotalAmount = utils.RoundMoney(q.TotalAmount)
	q.CashProvided = utils.RoundMoney(q.CashProvided)
	q.Change = utils.RoundMoney(q.Change)
	return q
}
