package receipt

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTransaction() models.Transaction {
	return models.Transaction{
		ID:             "7f1c",
		OrderNumber:    42,
		OrderType:      models.OrderTypeDineIn,
		DiscountType:   models.DiscountTypeSenior,
		BaseAmount:     dec("112"),
		DiscountAmount: dec("22.4"),
		VatPortion:     dec("12"),
		ServiceFee:     dec("25"),
		TotalAmount:    dec("102.6"),
		CashProvided:   dec("200"),
		Change:         dec("97.4"),
		TimeOrdered:    time.Date(2026, 3, 14, 1, 5, 0, 0, time.UTC),
		Lines: []models.TransactionLine{{
			LineNo:   1,
			Quantity: 1,
			MenuItem: models.MenuItemSnapshot{ID: "m1", Name: "Cafe Latte", TotalPrice: dec("112")},
		}},
	}
}

func TestFromTransaction_FillsBusinessDefaults(t *testing.T) {
	doc := FromTransaction(sampleTransaction(), models.BusinessProfile{Name: "Corner Brew"})
	assert.Equal(t, "Corner Brew", doc.Business.Name)
	assert.Equal(t, models.DefaultTaxID, doc.Business.TaxID)
	assert.Equal(t, "Dine In", doc.Type)
	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Items[0].LineTotal().Equal(dec("112")))
}

func TestValidate_ListsEveryMissingField(t *testing.T) {
	err := Validate(Document{Items: []Item{{Name: " ", Quantity: 0}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDocument))
	for _, field := range []string{"orderNumber", "timeOrdered", "type", "items[0].menuItem.name", "items[0].quantity", "discountType", "business.name"} {
		assert.Contains(t, err.Error(), field)
	}

	assert.NoError(t, Validate(FromTransaction(sampleTransaction(), models.DefaultBusinessProfile())))
}

func TestFilename(t *testing.T) {
	at := time.UnixMilli(1710000000123)
	if got := Filename(7, at, "txt"); got != "Receipt-0007-1710000000123.txt" {
		t.Fatalf("Filename = %q", got)
	}
	if got := ReceiptNumber(12345); got != "12345" {
		t.Fatalf("ReceiptNumber = %q", got)
	}
}

func TestRenderText(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	doc := FromTransaction(sampleTransaction(), models.DefaultBusinessProfile())

	out, err := RenderText(doc, manila, doc.TimeOrdered)
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, models.DefaultBusinessName)
	assert.Contains(t, text, "Receipt No.: 0042")
	assert.Contains(t, text, "Time: 9:05 AM")
	assert.Contains(t, text, "03/14/2026")
	assert.Contains(t, text, "Discount (Senior)")
	assert.Contains(t, text, "-22.40")
	assert.Contains(t, text, "Service Charge (Dine In)")
	assert.Contains(t, text, "102.60")
	assert.Contains(t, text, "97.40")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.Contains(line, "Grand Total") {
			assert.Len(t, line, lineWidth)
		}
	}

	doc.DiscountAmount = decimal.Zero
	out, err = RenderText(doc, nil, doc.TimeOrdered)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Discount (")

	_, err = RenderText(Document{}, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestRenderXLSX(t *testing.T) {
	doc := FromTransaction(sampleTransaction(), models.DefaultBusinessProfile())
	data, err := RenderXLSX(doc, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(receiptSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBusinessName, name)
	number, err := f.GetCellValue(receiptSheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "0042", number)
	item, err := f.GetCellValue(receiptSheet, "A9")
	require.NoError(t, err)
	assert.Equal(t, "Cafe Latte", item)
}

func TestPrepareLogo_ShrinksWideImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(600, 150, color.White), imaging.PNG))

	out, err := PrepareLogo(buf.Bytes())
	require.NoError(t, err)
	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, logoWidth, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	_, err = PrepareLogo([]byte("not an image"))
	assert.Error(t, err)
}

func TestRenderer_WritesEveryFormat(t *testing.T) {
	dir := t.TempDir()
	at := time.UnixMilli(1710000000000)
	r := NewRenderer(DirStore{Dir: dir}, time.UTC, FormatText, FormatXLSX)
	r.Now = func() time.Time { return at }

	location, err := r.Render(context.Background(), sampleTransaction(), models.DefaultBusinessProfile())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Receipt-0042-1710000000000.txt"), location)
	_, err = os.Stat(filepath.Join(dir, "Receipt-0042-1710000000000.xlsx"))
	assert.NoError(t, err)
}

func TestParseFormats(t *testing.T) {
	formats, err := ParseFormats([]string{"txt", "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatText, FormatXLSX}, formats)

	_, err = ParseFormats([]string{"pdf"})
	assert.Error(t, err)
}
