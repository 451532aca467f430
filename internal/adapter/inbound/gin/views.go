package gin

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/port/inbound"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// WardrobeViews implements inbound.WardrobeViewPort as server-rendered pages.
type WardrobeViews struct {
	domain         wardrobe.WardrobeDomain
	templates      *template.Template
	maxUploadBytes int64
}

var _ inbound.WardrobeViewPort = (*WardrobeViews)(nil)

// NewWardrobeViews parses the page templates and creates the view adapter.
func NewWardrobeViews(domain wardrobe.WardrobeDomain, maxUploadBytes int64) (*WardrobeViews, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &WardrobeViews{domain: domain, templates: tmpl, maxUploadBytes: maxUploadBytes}, nil
}

// RegisterRoutes registers the page routes. Extra handlers run before the
// upload submission only.
func (v *WardrobeViews) RegisterRoutes(r gin.IRouter, uploadMiddleware ...gin.HandlerFunc) {
	r.GET("/", v.UploadForm)
	r.POST("/upload", append(uploadMiddleware, v.SubmitUpload)...)
	r.GET("/outfit", v.OutfitPage)
	r.POST("/outfit", v.SubmitOutfit)
}

type uploadPage struct {
	Title      string
	Categories []model.Category
	Form       uploadFields
	Error      string
	Success    string
}

type outfitPage struct {
	Title      string
	Categories []model.Category
	Selected   map[model.Category]bool
	Outfit     *model.Outfit
	Error      string
}

func (v *WardrobeViews) UploadForm(c *gin.Context) {
	v.render(c, http.StatusOK, "upload.tmpl", v.newUploadPage(uploadFields{}))
}

func (v *WardrobeViews) SubmitUpload(c *gin.Context) {
	fields, err := parseUploadForm(c, v.maxUploadBytes)
	if err != nil {
		status := http.StatusBadRequest
		page := v.newUploadPage(fields)
		page.Error = "The upload could not be read. Please try again."
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
			page.Error = "The image is too large. Please choose a smaller image."
		}
		v.render(c, status, "upload.tmpl", page)
		return
	}

	in, file, err := buildUploadInput(c, fields)
	if err != nil {
		page := v.newUploadPage(fields)
		page.Error = "The upload could not be read. Please try again."
		v.render(c, http.StatusBadRequest, "upload.tmpl", page)
		return
	}
	if file != nil {
		defer file.Close()
	}

	item, err := v.domain.Upload(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		page := v.newUploadPage(fields)
		page.Error = userMessage(err)
		v.render(c, toAppError(err).StatusCode, "upload.tmpl", page)
		return
	}

	page := v.newUploadPage(uploadFields{})
	page.Success = fmt.Sprintf("Uploaded %s %s %s (%s) to %s.",
		item.Color, item.Brand, in.Filename, item.PriceDisplay(), item.Category)
	v.render(c, http.StatusOK, "upload.tmpl", page)
}

func (v *WardrobeViews) OutfitPage(c *gin.Context) {
	v.render(c, http.StatusOK, "outfit.tmpl", v.newOutfitPage(nil))
}

func (v *WardrobeViews) SubmitOutfit(c *gin.Context) {
	names := c.PostFormArray("category")
	categories, err := model.ParseCategories(names)
	if err != nil {
		page := v.newOutfitPage(nil)
		page.Error = userMessage(wardrobe.ErrInvalidCategory)
		v.render(c, http.StatusBadRequest, "outfit.tmpl", page)
		return
	}

	page := v.newOutfitPage(categories)
	outfit, err := v.domain.GenerateOutfit(c.Request.Context(), categories)
	if err != nil {
		_ = c.Error(err)
		page.Error = userMessage(err)
		v.render(c, toAppError(err).StatusCode, "outfit.tmpl", page)
		return
	}

	page.Outfit = outfit
	v.render(c, http.StatusOK, "outfit.tmpl", page)
}

func (v *WardrobeViews) newUploadPage(fields uploadFields) *uploadPage {
	return &uploadPage{
		Title:      "Upload clothing",
		Categories: v.domain.Categories(),
		Form:       fields,
	}
}

func (v *WardrobeViews) newOutfitPage(selected []model.Category) *outfitPage {
	page := &outfitPage{
		Title:      "Outfit generator",
		Categories: v.domain.Categories(),
		Selected:   make(map[model.Category]bool, len(selected)),
	}
	for _, c := range selected {
		page.Selected[c] = true
	}
	return page
}

func (v *WardrobeViews) render(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: v.templates, Name: name, Data: data})
}
