package receipt

import (
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/goodlandcafe/pos_backend/utils"
	"github.com/shopspring/decimal"
)

const lineWidth = 40

const textTemplate = `{{center .Doc.Business.Name}}
{{center (printf "%s TIN:%s" .Doc.Business.RegistrationStatus .Doc.Business.TaxID)}}
{{center .Doc.Business.Address}}
{{center .Doc.Business.Phone}}
{{center (date .Doc.TimeOrdered)}}
{{stars}}
{{split (printf "Receipt No.: %s" (receiptNo .Doc.OrderNumber)) (printf "Time: %s" (clock .Doc.TimeOrdered))}}
Order Type: {{.Doc.Type}}

{{itemHeader}}
{{range .Doc.Items}}{{itemRow .}}
{{end}}
{{dashes}}
{{amount "Subtotal" .Doc.BaseAmount}}
{{if .Doc.DiscountAmount.IsPositive}}{{amount (printf "Discount (%s)" .Doc.DiscountType) (neg .Doc.DiscountAmount)}}
{{end}}{{amount (printf "Service Charge (%s)" .Doc.Type) .Doc.ServiceFee}}
{{amount "VAT Amount (12%)" .Doc.VatPortion}}
{{dashes}}
{{amount "Grand Total" .Doc.TotalAmount}}
{{dashes}}
{{amount "Cash Received" .Doc.CashProvided}}
{{amount "Change" .Doc.Change}}
{{stars}}
{{center "Thank you for your visit!"}}
{{center "Please come again"}}
{{center "This serves as official receipt"}}
{{stars}}
{{center (printf "Generated on %s" (stamp .GeneratedAt))}}
`

func center(s string) string {
	if len([]rune(s)) >= lineWidth {
		return s
	}
	pad := (lineWidth - len([]rune(s))) / 2
	return strings.Repeat(" ", pad) + s
}

func padRight(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s + strings.Repeat(" ", n-len(r))
}

func padLeft(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return s
	}
	return strings.Repeat(" ", n-len(r)) + s
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > 17 {
		return string(r[:14]) + "..."
	}
	return name
}

func textFuncs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"center":    center,
		"stars":     func() string { return strings.Repeat("*", lineWidth) },
		"dashes":    func() string { return strings.Repeat("-", lineWidth) },
		"receiptNo": ReceiptNumber,
		"date":      func(t time.Time) string { return t.In(loc).Format("01/02/2006") },
		"clock":     func(t time.Time) string { return t.In(loc).Format("3:04 PM") },
		"stamp":     func(t time.Time) string { return t.In(loc).Format("01/02/2006 3:04:05 PM") },
		"neg":       func(d decimal.Decimal) decimal.Decimal { return d.Neg() },
		"split": func(left, right string) string {
			return padRight(left, lineWidth-len([]rune(right))) + right
		},
		"itemHeader": func() string {
			return padRight("Item Name", 18) + padLeft("Qty", 4) + padLeft("Price", 9) + padLeft("Total", 9)
		},
		"itemRow": func(it Item) string {
			return padRight(truncateName(it.Name), 18) +
				padLeft(strconv.Itoa(it.Quantity), 4) +
				padLeft(utils.FormatMoney(it.TotalPrice), 9) +
				padLeft(utils.FormatMoney(it.LineTotal()), 9)
		},
		"amount": func(label string, v decimal.Decimal) string {
			return padLeft(label, 28) + padLeft(utils.FormatMoney(v), 12)
		},
	}
}

// RenderText produces the courier-style plain text receipt.
func RenderText(doc Document, loc *time.Location, generatedAt time.Time) ([]byte, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	out, err := utils.ExecTemplate(textTemplate, struct {
		Doc         Document
		GeneratedAt time.Time
	}{doc, generatedAt}, textFuncs(loc))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
