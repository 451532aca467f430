package wardrobe

import (
	"fmt"
	"strings"
	"time"

	"github.com/outfitpicker/server/internal/model"
)

// KeyTimestampLayout is the UTC timestamp suffix of object keys.
const KeyTimestampLayout = "20060102150405"

// SanitizeFilename replaces spaces so the name can sit inside an object key.
func SanitizeFilename(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// BuildObjectKey returns "{category}/{category}_{filename}_{brand}_{color}_{timestamp}".
//
// Keys only differ by the second, so two uploads with the same category,
// filename, brand and color inside one second map to the same key and the
// later object replaces the earlier one.
func BuildObjectKey(category model.Category, filename, brand, color string, at time.Time) string {
	return fmt.Sprintf("%s/%s_%s_%s_%s_%s",
		category, category, SanitizeFilename(filename), brand, color,
		at.UTC().Format(KeyTimestampLayout),
	)
}

// ObjectMetadata returns the metadata map attached to an uploaded object.
func ObjectMetadata(item *model.Item) map[string]string {
	return map[string]string{
		"brand":    item.Brand,
		"color":    item.Color,
		"price":    item.Price.StringFixed(2),
		"category": item.Category.String(),
	}
}
