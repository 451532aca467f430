package inbound

import "github.com/gin-gonic/gin"

// WardrobeHttpPort defines the JSON API for wardrobe operations.
type WardrobeHttpPort interface {
	// UploadItem handles POST /items
	UploadItem(c *gin.Context)

	// PickRandomItem handles GET /items/random
	PickRandomItem(c *gin.Context)

	// GenerateOutfit handles GET /outfits/random
	GenerateOutfit(c *gin.Context)

	// ListCategories handles GET /categories
	ListCategories(c *gin.Context)

	// Inventory handles GET /inventory
	Inventory(c *gin.Context)
}

// WardrobeViewPort defines the server-rendered wardrobe pages.
type WardrobeViewPort interface {
	// UploadForm handles GET /
	UploadForm(c *gin.Context)

	// SubmitUpload handles POST /upload
	SubmitUpload(c *gin.Context)

	// OutfitPage handles GET /outfit
	OutfitPage(c *gin.Context)

	// SubmitOutfit handles POST /outfit
	SubmitOutfit(c *gin.Context)
}
