package receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/goodlandcafe/pos_backend/models"
)

type Format string

const (
	FormatText Format = "txt"
	FormatXLSX Format = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Renderer turns a committed transaction into stored receipt files.
type Renderer struct {
	Store    Store
	Formats  []Format
	Location *time.Location
	Now      func() time.Time
}

func NewRenderer(store Store, loc *time.Location, formats ...Format) *Renderer {
	if len(formats) == 0 {
		formats = []Format{FormatText}
	}
	return &Renderer{Store: store, Formats: formats, Location: loc, Now: time.Now}
}

// Render stores one file per configured format and returns the first location.
func (r *Renderer) Render(ctx context.Context, txn models.Transaction, profile models.BusinessProfile) (string, error) {
	doc := FromTransaction(txn, profile)
	now := r.Now()

	var first string
	for _, format := range r.Formats {
		var (
			data        []byte
			contentType string
			err         error
		)
		switch format {
		case FormatText:
			data, err = RenderText(doc, r.Location, now)
			contentType = "text/plain; charset=utf-8"
		case FormatXLSX:
			data, err = RenderXLSX(doc, r.Location)
			contentType = xlsxContentType
		default:
			err = fmt.Errorf("unknown receipt format %q", format)
		}
		if err != nil {
			return first, err
		}
		location, err := r.Store.Save(ctx, Filename(doc.OrderNumber, now, string(format)), contentType, data)
		if err != nil {
			return first, err
		}
		if first == "" {
			first = location
		}
	}
	return first, nil
}

func ParseFormats(values []string) ([]Format, error) {
	var formats []Format
	for _, v := range values {
		switch Format(v) {
		case FormatText, FormatXLSX:
			formats = append(formats, Format(v))
		default:
			return nil, fmt.Errorf("unknown receipt format %q", v)
		}
	}
	return formats, nil
}
