package wardrobe

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/outfitpicker/server/internal/model"
)

// UploadInput is a new image plus its metadata.
type UploadInput struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64
	Category    model.Category
	Brand       string
	Color       string
	Price       decimal.Decimal
}

// Validate checks the submission before anything is sent to storage.
func (in *UploadInput) Validate() error {
	if in.Body == nil || in.Size <= 0 {
		return ErrMissingImage
	}
	if strings.TrimSpace(in.Color) == "" {
		return ErrMissingColor
	}
	if strings.TrimSpace(in.Brand) == "" {
		return ErrMissingBrand
	}
	if !in.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if !in.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

// ParsePrice parses a form price. Empty or malformed input is rejected as an
// invalid price.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}
