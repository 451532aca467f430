package gin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/port/inbound"
	apperrors "github.com/outfitpicker/server/internal/shared/errors"
	"github.com/outfitpicker/server/internal/shared/response"
)

// WardrobeAdapter implements inbound.WardrobeHttpPort.
type WardrobeAdapter struct {
	domain         wardrobe.WardrobeDomain
	maxUploadBytes int64
}

var _ inbound.WardrobeHttpPort = (*WardrobeAdapter)(nil)

// NewWardrobeAdapter creates the wardrobe JSON API adapter.
// maxUploadBytes limits the multipart body; zero means no limit.
func NewWardrobeAdapter(domain wardrobe.WardrobeDomain, maxUploadBytes int64) *WardrobeAdapter {
	return &WardrobeAdapter{domain: domain, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes registers wardrobe API routes. Extra handlers run before
// the upload handler only.
func (a *WardrobeAdapter) RegisterRoutes(r *gin.RouterGroup, uploadMiddleware ...gin.HandlerFunc) {
	items := r.Group("/items")
	{
		items.POST("", append(uploadMiddleware, a.UploadItem)...)
		items.GET("/random", a.PickRandomItem)
	}
	r.GET("/outfits/random", a.GenerateOutfit)
	r.GET("/categories", a.ListCategories)
	r.GET("/inventory", a.Inventory)
}

// UploadItem handles an item upload.
//
//	@Summary		Upload item
//	@Description	Store a clothing image and record its details
//	@Tags			Wardrobe
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image		formData	file	true	"Image file"
//	@Param			category	formData	string	true	"Category"
//	@Param			brand		formData	string	true	"Brand"
//	@Param			color		formData	string	true	"Color"
//	@Param			price		formData	string	true	"Price"
//	@Success		201			{object}	model.ItemResponse
//	@Failure		400			{object}	apperrors.ErrorResponse
//	@Failure		413			{object}	apperrors.ErrorResponse
//	@Failure		429			{object}	apperrors.ErrorResponse
//	@Failure		502			{object}	apperrors.ErrorResponse
//	@Failure		503			{object}	apperrors.ErrorResponse
//	@Router			/items [post]
func (a *WardrobeAdapter) UploadItem(c *gin.Context) {
	fields, err := parseUploadForm(c, a.maxUploadBytes)
	if err != nil {
		writeUploadReadError(c, err)
		return
	}
	in, file, err := buildUploadInput(c, fields)
	if err != nil {
		writeUploadReadError(c, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	item, err := a.domain.Upload(c.Request.Context(), in)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item.ToResponse())
}

// PickRandomItem returns one random item of a category.
//
//	@Summary		Random item
//	@Description	Pick one uniformly random item of the given category
//	@Tags			Wardrobe
//	@Produce		json
//	@Param			category	query		string	true	"Category"
//	@Success		200			{object}	model.ItemResponse
//	@Failure		400			{object}	apperrors.ErrorResponse
//	@Failure		404			{object}	apperrors.ErrorResponse
//	@Failure		502			{object}	apperrors.ErrorResponse
//	@Router			/items/random [get]
func (a *WardrobeAdapter) PickRandomItem(c *gin.Context) {
	category, ok := model.ParseCategory(c.Query("category"))
	if !ok {
		handleError(c, wardrobe.ErrInvalidCategory)
		return
	}

	item, err := a.domain.PickRandom(c.Request.Context(), category)
	if err != nil {
		handleError(c, err)
		return
	}
	if item == nil {
		handleError(c, wardrobe.ErrItemNotFound)
		return
	}

	c.JSON(http.StatusOK, item.ToResponse())
}

// GenerateOutfit assembles a random outfit.
//
//	@Summary		Random outfit
//	@Description	Pick one random item per category and total the prices
//	@Tags			Wardrobe
//	@Produce		json
//	@Param			category	query		[]string	false	"Categories, repeated"	collectionFormat(multi)
//	@Success		200			{object}	model.OutfitResponse
//	@Failure		400			{object}	apperrors.ErrorResponse
//	@Failure		502			{object}	apperrors.ErrorResponse
//	@Router			/outfits/random [get]
func (a *WardrobeAdapter) GenerateOutfit(c *gin.Context) {
	categories, err := parseCategoryQuery(c)
	if err != nil {
		handleError(c, err)
		return
	}

	outfit, err := a.domain.GenerateOutfit(c.Request.Context(), categories)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, outfit.ToResponse())
}

// CategoriesResponse lists the known categories.
type CategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

// ListCategories returns the category set.
//
//	@Summary		List categories
//	@Tags			Wardrobe
//	@Produce		json
//	@Success		200	{object}	CategoriesResponse
//	@Router			/categories [get]
func (a *WardrobeAdapter) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{Categories: a.domain.Categories()})
}

// InventoryResponse holds stored item counts per category.
type InventoryResponse struct {
	Categories []model.CategoryCount `json:"categories"`
	Total      int64                 `json:"total"`
}

// Inventory returns item counts per category.
//
//	@Summary		Inventory
//	@Tags			Wardrobe
//	@Produce		json
//	@Success		200	{object}	InventoryResponse
//	@Failure		502	{object}	apperrors.ErrorResponse
//	@Router			/inventory [get]
func (a *WardrobeAdapter) Inventory(c *gin.Context) {
	counts, err := a.domain.Inventory(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	resp := InventoryResponse{Categories: counts}
	for _, cc := range counts {
		resp.Total += cc.Count
	}
	c.JSON(http.StatusOK, resp)
}

// writeUploadReadError reports a multipart body that could not be read.
func writeUploadReadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.AppError(c, apperrors.NewAppError(
			"PAYLOAD_TOO_LARGE", "upload exceeds the size limit", http.StatusRequestEntityTooLarge, err))
		return
	}
	response.AppError(c, apperrors.BadRequest("could not read the uploaded file"))
}
