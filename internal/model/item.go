package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category represents a clothing classification.
type Category string

const (
	CategoryShirts  Category = "Shirts"
	CategoryBottoms Category = "Bottoms"
	CategoryShoes   Category = "Shoes"
	CategoryHats    Category = "Hats"
)

// AllCategories returns the closed set of categories in display order.
func AllCategories() []Category {
	return []Category{CategoryShirts, CategoryBottoms, CategoryShoes, CategoryHats}
}

// IsValid checks if the category belongs to the closed set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryShirts, CategoryBottoms, CategoryShoes, CategoryHats:
		return true
	}
	return false
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// Prefix returns the object-store prefix holding this category's images.
func (c Category) Prefix() string {
	return string(c) + "/"
}

// ParseCategory resolves a category name case-insensitively.
// The singular form is accepted as well ("shirt" resolves to Shirts).
func ParseCategory(s string) (Category, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return "", false
	}
	for _, c := range AllCategories() {
		canonical := strings.ToLower(string(c))
		if name == canonical || name+"s" == canonical {
			return c, true
		}
	}
	return "", false
}

// ParseCategories resolves a list of category names, failing on the first unknown one.
func ParseCategories(names []string) ([]Category, error) {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		c, ok := ParseCategory(n)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", n)
		}
		out = append(out, c)
	}
	return out, nil
}

// Item represents one catalogued clothing entry.
// Items are never updated once created.
type Item struct {
	Key       string          `json:"key" gorm:"column:key;primaryKey;size:512"`
	Category  Category        `json:"category" gorm:"size:64;not null;index"`
	Brand     string          `json:"brand" gorm:"size:255;not null"`
	Color     string          `json:"color" gorm:"size:255;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName returns the table name.
func (Item) TableName() string {
	return "uploads"
}

// PriceDisplay returns the price formatted for display.
func (i *Item) PriceDisplay() string {
	return FormatPrice(i.Price)
}

// FormatPrice formats a price with a dollar sign and exactly two decimals.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// ItemResponse represents an item in API responses.
type ItemResponse struct {
	Key      string   `json:"key"`
	Category Category `json:"category"`
	Brand    string   `json:"brand"`
	Color    string   `json:"color"`
	Price    string   `json:"price"`
	ImageURL string   `json:"image_url,omitempty"`
}

// ToResponse converts an item to its API representation.
func (i *Item) ToResponse() *ItemResponse {
	return &ItemResponse{
		Key:      i.Key,
		Category: i.Category,
		Brand:    i.Brand,
		Color:    i.Color,
		Price:    i.Price.StringFixed(2),
	}
}

// CategoryCount is the number of stored items in one category.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
}
