package gin

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/model"
)

// uploadFields are the text fields of an upload submission, kept so a
// failed form can be shown again with the user's input.
type uploadFields struct {
	Category string
	Brand    string
	Color    string
	Price    string
}

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// parseUploadForm parses a multipart upload and returns its text fields.
// A request that is not multipart yields empty fields so that validation
// reports what is missing.
func parseUploadForm(c *gin.Context, maxBytes int64) (uploadFields, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return uploadFields{}, err
	}
	return uploadFields{
		Category: c.PostForm("category"),
		Brand:    c.PostForm("brand"),
		Color:    c.PostForm("color"),
		Price:    c.PostForm("price"),
	}, nil
}

// buildUploadInput turns a parsed submission into domain input. Unparsable
// values are passed on as invalid so the domain reports them in its own
// order. The returned file must be closed by the caller when not nil.
func buildUploadInput(c *gin.Context, fields uploadFields) (*wardrobe.UploadInput, multipart.File, error) {
	in := &wardrobe.UploadInput{
		Brand: fields.Brand,
		Color: fields.Color,
	}

	if category, ok := model.ParseCategory(fields.Category); ok {
		in.Category = category
	} else {
		in.Category = model.Category(strings.TrimSpace(fields.Category))
	}
	if price, err := wardrobe.ParsePrice(fields.Price); err == nil {
		in.Price = price
	}

	if c.Request.MultipartForm == nil || len(c.Request.MultipartForm.File["image"]) == 0 {
		return in, nil, nil
	}
	header := c.Request.MultipartForm.File["image"][0]

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	in.Filename = header.Filename
	in.Size = header.Size
	in.Body = file
	in.ContentType = header.Header.Get("Content-Type")
	return in, file, nil
}

// parseCategoryQuery resolves the repeated category query parameter.
// No parameter returns nil so the configured default applies.
func parseCategoryQuery(c *gin.Context) ([]model.Category, error) {
	var names []string
	for _, raw := range c.QueryArray("category") {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				names = append(names, p)
			}
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	categories, err := model.ParseCategories(names)
	if err != nil {
		return nil, errors.Join(wardrobe.ErrInvalidCategory, err)
	}
	return categories, nil
}
