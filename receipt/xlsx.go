package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/xuri/excelize/v2"
)

const (
	receiptSheet = "Receipt"
	logoWidth    = 200
)

// PrepareLogo shrinks an uploaded logo to receipt width and re-encodes it as PNG.
func PrepareLogo(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	if img.Bounds().Dx() > logoWidth {
		img = imaging.Resize(img, logoWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(receiptSheet, cell, &values)
}

// RenderXLSX lays the receipt out on a single sheet, logo first when one is set.
func RenderXLSX(doc Document, loc *time.Location) ([]byte, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", receiptSheet); err != nil {
		return nil, err
	}

	row := 1
	if len(doc.Business.Logo) > 0 {
		logo, err := PrepareLogo(doc.Business.Logo)
		if err != nil {
			return nil, err
		}
		if err := f.AddPictureFromBytes(receiptSheet, "A1", &excelize.Picture{
			Extension: ".png",
			File:      logo,
			Format:    &excelize.GraphicOptions{LockAspectRatio: true, OffsetX: 10, OffsetY: 5},
		}); err != nil {
			return nil, err
		}
		row = 8
	}

	header := [][]interface{}{
		{doc.Business.Name},
		{fmt.Sprintf("%s TIN:%s", doc.Business.RegistrationStatus, doc.Business.TaxID)},
		{doc.Business.Address},
		{doc.Business.Phone},
		{"Receipt No.", ReceiptNumber(doc.OrderNumber), "Time", doc.TimeOrdered.In(loc).Format("2006-01-02 15:04")},
		{"Order Type", doc.Type},
		{},
		{"Item Name", "Qty", "Price", "Total"},
	}
	for _, values := range header {
		if err := setRow(f, row, values...); err != nil {
			return nil, err
		}
		row++
	}
	for _, it := range doc.Items {
		if err := setRow(f, row, it.Name, it.Quantity, utils.FormatMoney(it.TotalPrice), utils.FormatMoney(it.LineTotal())); err != nil {
			return nil, err
		}
		row++
	}
	row++

	summary := [][]interface{}{
		{"", "", "Subtotal", utils.FormatMoney(doc.BaseAmount)},
	}
	if doc.DiscountAmount.IsPositive() {
		summary = append(summary, []interface{}{"", "", fmt.Sprintf("Discount (%s)", doc.DiscountType), "-" + utils.FormatMoney(doc.DiscountAmount)})
	}
	summary = append(summary,
		[]interface{}{"", "", fmt.Sprintf("Service Charge (%s)", doc.Type), utils.FormatMoney(doc.ServiceFee)},
		[]interface{}{"", "", "VAT Amount (12%)", utils.FormatMoney(doc.VatPortion)},
		[]interface{}{"", "", "Grand Total", utils.FormatMoney(doc.TotalAmount)},
		[]interface{}{"", "", "Cash Received", utils.FormatMoney(doc.CashProvided)},
		[]interface{}{"", "", "Change", utils.FormatMoney(doc.Change)},
	)
	for _, values := range summary {
		if err := setRow(f, row, values...); err != nil {
			return nil, err
		}
		row++
	}

	if err := f.SetColWidth(receiptSheet, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(receiptSheet, "B", "D", 16); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
