package gin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/port/outbound"
	apperrors "github.com/outfitpicker/server/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockWardrobeDomain struct {
	mock.Mock
}

func (m *MockWardrobeDomain) PickRandom(ctx context.Context, category model.Category) (*model.Item, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockWardrobeDomain) Assemble(ctx context.Context, categories []model.Category) (*model.Outfit, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Outfit), args.Error(1)
}

func (m *MockWardrobeDomain) GenerateOutfit(ctx context.Context, categories []model.Category) (*model.Outfit, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Outfit), args.Error(1)
}

func (m *MockWardrobeDomain) Upload(ctx context.Context, in *wardrobe.UploadInput) (*model.Item, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockWardrobeDomain) Categories() []model.Category {
	return model.AllCategories()
}

func (m *MockWardrobeDomain) Inventory(ctx context.Context) ([]model.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryCount), args.Error(1)
}

func newAPIRouter(domain wardrobe.WardrobeDomain) *gin.Engine {
	r := gin.New()
	NewWardrobeAdapter(domain, 1<<20).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func newViewRouter(t *testing.T, domain wardrobe.WardrobeDomain) *gin.Engine {
	t.Helper()
	views, err := NewWardrobeViews(domain, 1<<20)
	require.NoError(t, err)
	r := gin.New()
	views.RegisterRoutes(r)
	return r
}

func shirt() *model.Item {
	return &model.Item{
		Key:      "Shirts/Shirts_tee.png_Acme_Blue_20240101120000",
		Category: model.CategoryShirts,
		Brand:    "Acme",
		Color:    "Blue",
		Price:    decimal.RequireFromString("19.99"),
	}
}

func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestUploadItem(t *testing.T) {
	fields := map[string]string{"category": "shirt", "brand": "Acme", "color": "Blue", "price": "19.99"}

	t.Run("creates item", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("Upload", mock.Anything, mock.MatchedBy(func(in *wardrobe.UploadInput) bool {
			data, _ := io.ReadAll(in.Body)
			return in.Category == model.CategoryShirts &&
				in.Filename == "tee.png" &&
				in.Price.Equal(decimal.RequireFromString("19.99")) &&
				string(data) == "png-bytes"
		})).Return(shirt(), nil)

		body, contentType := multipartBody(t, fields, "tee.png", []byte("png-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp model.ItemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "19.99", resp.Price)
		assert.Equal(t, model.CategoryShirts, resp.Category)
		domain.AssertExpectations(t)
	})

	t.Run("passes missing image to validation", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("Upload", mock.Anything, mock.MatchedBy(func(in *wardrobe.UploadInput) bool {
			return in.Body == nil
		})).Return(nil, wardrobe.ErrMissingImage)

		body, contentType := multipartBody(t, fields, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Please choose an image to upload.", resp.Error.Message)
	})

	t.Run("unparsable price reaches the domain as zero", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("Upload", mock.Anything, mock.MatchedBy(func(in *wardrobe.UploadInput) bool {
			return in.Price.IsZero()
		})).Return(nil, wardrobe.ErrInvalidPrice)

		bad := map[string]string{"category": "Shirts", "brand": "Acme", "color": "Blue", "price": "cheap"}
		body, contentType := multipartBody(t, bad, "tee.png", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		domain.AssertExpectations(t)
	})

	storeFailures := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"object write", fmt.Errorf("%w: boom", wardrobe.ErrObjectStoreWrite), http.StatusBadGateway, "STORE_ERROR"},
		{"metadata write", fmt.Errorf("%w: boom", wardrobe.ErrMetadataWrite), http.StatusBadGateway, "STORE_ERROR"},
		{"breaker open", fmt.Errorf("%w: %w", wardrobe.ErrObjectStoreUnavailable, outbound.ErrBackendUnavailable), http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
	}
	for _, tc := range storeFailures {
		t.Run(tc.name, func(t *testing.T) {
			domain := new(MockWardrobeDomain)
			domain.On("Upload", mock.Anything, mock.Anything).Return(nil, tc.err)

			body, contentType := multipartBody(t, fields, "tee.png", []byte("x"))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			newAPIRouter(domain).ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, decodeError(t, w).Error.Code)
		})
	}
}

func TestUploadItem_TooLarge(t *testing.T) {
	domain := new(MockWardrobeDomain)
	fields := map[string]string{"category": "Shirts", "brand": "Acme", "color": "Blue", "price": "19.99"}
	body, contentType := multipartBody(t, fields, "huge.png", bytes.Repeat([]byte("x"), 2<<20))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newAPIRouter(domain).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeError(t, w).Error.Code)
	domain.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestPickRandomItem(t *testing.T) {
	t.Run("returns item", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("PickRandom", mock.Anything, model.CategoryShirts).Return(shirt(), nil)

		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/items/random?category=Shirts", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"brand":"Acme"`)
	})

	t.Run("absent item is 404", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("PickRandom", mock.Anything, model.CategoryHats).Return(nil, nil)

		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/items/random?category=hat", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w).Error.Code)
	})

	t.Run("unknown category is 400", func(t *testing.T) {
		domain := new(MockWardrobeDomain)

		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/items/random?category=Socks", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		domain.AssertNotCalled(t, "PickRandom", mock.Anything, mock.Anything)
	})

	t.Run("store failure is 502", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("PickRandom", mock.Anything, model.CategoryShoes).
			Return(nil, fmt.Errorf("%w: connection refused", wardrobe.ErrStoreUnavailable))

		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/items/random?category=Shoes", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestGenerateOutfit(t *testing.T) {
	outfit := model.NewOutfit(2)
	outfit.Add(model.CategoryShirts, shirt())
	outfit.Add(model.CategoryHats, nil)

	t.Run("parses repeated and comma separated categories", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("GenerateOutfit", mock.Anything, []model.Category{model.CategoryShirts, model.CategoryHats, model.CategoryShoes}).
			Return(outfit, nil)

		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/outfits/random?category=shirts&category=Hats,shoe", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.OutfitResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "19.99", resp.TotalPrice)
		require.Len(t, resp.Entries, 2)
		assert.True(t, resp.Entries[0].Available)
		assert.False(t, resp.Entries[1].Available)
		assert.Nil(t, resp.Entries[1].Item)
	})

	t.Run("no categories uses the default", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("GenerateOutfit", mock.Anything, []model.Category(nil)).Return(outfit, nil)

		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/outfits/random", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		domain.AssertExpectations(t)
	})

	t.Run("unknown category is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		newAPIRouter(new(MockWardrobeDomain)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/outfits/random?category=Socks", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pick failure aborts", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("GenerateOutfit", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("pick Shirts: %w", wardrobe.ErrStoreUnavailable))

		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/outfits/random", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestCatalogRoutes(t *testing.T) {
	t.Run("categories", func(t *testing.T) {
		w := httptest.NewRecorder()
		newAPIRouter(new(MockWardrobeDomain)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"categories":["Shirts","Bottoms","Shoes","Hats"]}`, w.Body.String())
	})

	t.Run("inventory", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("Inventory", mock.Anything).Return([]model.CategoryCount{
			{Category: model.CategoryShirts, Count: 3},
			{Category: model.CategoryHats, Count: 2},
		}, nil)

		w := httptest.NewRecorder()
		newAPIRouter(domain).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp InventoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(5), resp.Total)
	})
}

func TestUploadPage(t *testing.T) {
	fields := map[string]string{"category": "Shirts", "brand": "Acme", "color": "Blue", "price": "19.99"}

	t.Run("renders form", func(t *testing.T) {
		w := httptest.NewRecorder()
		newViewRouter(t, new(MockWardrobeDomain)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), `name="brand"`)
		assert.Contains(t, w.Body.String(), `<option value="Hats">`)
	})

	t.Run("keeps input on failure", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("Upload", mock.Anything, mock.Anything).Return(nil, wardrobe.ErrMissingImage)

		body, contentType := multipartBody(t, fields, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newViewRouter(t, domain).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		html := w.Body.String()
		assert.Contains(t, html, "Please choose an image to upload.")
		assert.Contains(t, html, `value="Acme"`)
		assert.Contains(t, html, `value="19.99"`)
		assert.Contains(t, html, `<option value="Shirts" selected>`)
	})

	t.Run("clears input on success", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("Upload", mock.Anything, mock.Anything).Return(shirt(), nil)

		body, contentType := multipartBody(t, fields, "tee.png", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newViewRouter(t, domain).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		html := w.Body.String()
		assert.Contains(t, html, "Uploaded Blue Acme tee.png ($19.99) to Shirts.")
		assert.NotContains(t, html, `value="Acme"`)
	})

	t.Run("rejects oversized image", func(t *testing.T) {
		domain := new(MockWardrobeDomain)

		body, contentType := multipartBody(t, fields, "huge.png", bytes.Repeat([]byte("x"), 2<<20))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newViewRouter(t, domain).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "The image is too large.")
		domain.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("escapes user input", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("Upload", mock.Anything, mock.Anything).Return(nil, wardrobe.ErrMissingImage)

		body, contentType := multipartBody(t, map[string]string{"brand": `"><script>`}, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		newViewRouter(t, domain).ServeHTTP(w, req)

		assert.NotContains(t, w.Body.String(), "<script>")
	})
}

func TestOutfitPage(t *testing.T) {
	postOutfit := func(t *testing.T, domain *MockWardrobeDomain, categories ...string) *httptest.ResponseRecorder {
		t.Helper()
		form := url.Values{"category": categories}
		req := httptest.NewRequest(http.MethodPost, "/outfit", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		newViewRouter(t, domain).ServeHTTP(w, req)
		return w
	}

	t.Run("renders generator", func(t *testing.T) {
		w := httptest.NewRecorder()
		newViewRouter(t, new(MockWardrobeDomain)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/outfit", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Generate outfit")
	})

	t.Run("lists picks, flags missing and totals", func(t *testing.T) {
		pants := &model.Item{Category: model.CategoryBottoms, Brand: "Denim Co", Color: "Black", Price: decimal.RequireFromString("40.01")}
		outfit := model.NewOutfit(3)
		outfit.Add(model.CategoryShirts, shirt())
		outfit.Add(model.CategoryBottoms, pants)
		outfit.Add(model.CategoryHats, nil)

		domain := new(MockWardrobeDomain)
		domain.On("GenerateOutfit", mock.Anything, []model.Category{model.CategoryShirts, model.CategoryBottoms, model.CategoryHats}).
			Return(outfit, nil)

		w := postOutfit(t, domain, "Shirts", "Bottoms", "Hats")

		assert.Equal(t, http.StatusOK, w.Code)
		html := w.Body.String()
		assert.Contains(t, html, "Denim Co")
		assert.Contains(t, html, "$19.99")
		assert.Contains(t, html, "No Hats available")
		assert.Contains(t, html, "Total: $60.00")
		assert.Contains(t, html, `value="Hats" checked`)
	})

	t.Run("store failure shows one generic error", func(t *testing.T) {
		domain := new(MockWardrobeDomain)
		domain.On("GenerateOutfit", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("pick Shoes: %w", wardrobe.ErrStoreUnavailable))

		w := postOutfit(t, domain)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Something went wrong while reading the wardrobe.")
		assert.NotContains(t, w.Body.String(), "Total:")
	})
}

func TestToAppError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, toAppError(errors.New("other")).StatusCode)
	assert.Equal(t, http.StatusServiceUnavailable, toAppError(fmt.Errorf("%w: %w", wardrobe.ErrStoreUnavailable, outbound.ErrBackendUnavailable)).StatusCode)
}
