package receipt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidDocument = errors.New("invalid receipt document")

// Document is everything a receipt reads from a committed transaction and the business profile.
type Document struct {
	OrderNumber    int64
	TimeOrdered    time.Time
	Type           string
	Items          []Item
	BaseAmount     decimal.Decimal
	DiscountType   string
	DiscountAmount decimal.Decimal
	VatPortion     decimal.Decimal
	ServiceFee     decimal.Decimal
	TotalAmount    decimal.Decimal
	CashProvided   decimal.Decimal
	Change         decimal.Decimal
	Business       Business
}

type Item struct {
	Name       string
	TotalPrice decimal.Decimal
	Quantity   int
}

func (i Item) LineTotal() decimal.Decimal {
	return i.TotalPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Business struct {
	Name               string
	TaxID              string
	RegistrationStatus string
	Address            string
	Phone              string
	Logo               []byte
}

func FromTransaction(txn models.Transaction, profile models.BusinessProfile) Document {
	profile = profile.WithDefaults()
	doc := Document{
		OrderNumber:    txn.OrderNumber,
		TimeOrdered:    txn.TimeOrdered,
		Type:           string(txn.OrderType),
		BaseAmount:     txn.BaseAmount,
		DiscountType:   string(txn.DiscountType),
		DiscountAmount: txn.DiscountAmount,
		VatPortion:     txn.VatPortion,
		ServiceFee:     txn.ServiceFee,
		TotalAmount:    txn.TotalAmount,
		CashProvided:   txn.CashProvided,
		Change:         txn.Change,
		Business: Business{
			Name:               profile.Name,
			TaxID:              profile.TaxID,
			RegistrationStatus: profile.RegistrationStatus,
			Address:            profile.Address,
			Phone:              profile.Phone,
			Logo:               profile.Logo,
		},
	}
	for _, l := range txn.Lines {
		doc.Items = append(doc.Items, Item{
			Name:       l.MenuItem.Name,
			TotalPrice: l.MenuItem.TotalPrice,
			Quantity:   l.Quantity,
		})
	}
	return doc
}

// Validate reports every missing field at once.
func Validate(doc Document) error {
	var problems []string
	if doc.OrderNumber <= 0 {
		problems = append(problems, "orderNumber")
	}
	if doc.TimeOrdered.IsZero() {
		problems = append(problems, "timeOrdered")
	}
	if strings.TrimSpace(doc.Type) == "" {
		problems = append(problems, "type")
	}
	if len(doc.Items) == 0 {
		problems = append(problems, "items")
	}
	for i, it := range doc.Items {
		if strings.TrimSpace(it.Name) == "" {
			problems = append(problems, fmt.Sprintf("items[%d].menuItem.name", i))
		}
		if it.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("items[%d].quantity", i))
		}
	}
	if strings.TrimSpace(doc.DiscountType) == "" {
		problems = append(problems, "discountType")
	}
	if strings.TrimSpace(doc.Business.Name) == "" {
		problems = append(problems, "business.name")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidDocument, strings.Join(problems, ", "))
	}
	return nil
}

// ReceiptNumber is the order number zero-padded to four digits.
func ReceiptNumber(orderNumber int64) string {
	return fmt.Sprintf("%04d", orderNumber)
}

func Filename(orderNumber int64, at time.Time, ext string) string {
	return fmt.Sprintf("Receipt-%s-%d.%s", ReceiptNumber(orderNumber), at.UnixMilli(), ext)
}
