package wardrobe

import (
	"time"

	"github.com/outfitpicker/server/internal/model"
)

// Config holds wardrobe domain configuration.
type Config struct {
	// OutfitCategories is the category list used when a request names none.
	OutfitCategories []model.Category

	// PresignExpiry is how long outfit image links stay valid. Zero disables them.
	PresignExpiry time.Duration
}

// DefaultConfig returns the default wardrobe configuration.
func DefaultConfig() *Config {
	return &Config{
		OutfitCategories: []model.Category{model.CategoryShirts, model.CategoryBottoms, model.CategoryShoes},
		PresignExpiry:    15 * time.Minute,
	}
}
