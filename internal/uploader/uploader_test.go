package uploader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/model"
)

type MockItemUploader struct {
	mock.Mock
}

func (m *MockItemUploader) Upload(ctx context.Context, in *wardrobe.UploadInput) (*model.Item, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

type countingRecorder map[string]int

func (r countingRecorder) RecordBatchFile(status string) { r[status]++ }

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("data-"+n), 0o644))
	}
	return dir
}

func testConfig(folder string) *Config {
	cfg := DefaultConfig()
	cfg.Folder = folder
	cfg.Interval = 0
	cfg.Brand = "Acme"
	cfg.Color = "Red"
	return cfg
}

func withName(name string) any {
	return mock.MatchedBy(func(in *wardrobe.UploadInput) bool { return in.Filename == name })
}

func TestListImages(t *testing.T) {
	dir := writeFiles(t, "b.JPG", "a.png", "notes.txt", "c.jpeg", "d.gif")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	files, err := ListImages(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.Equal(t, []string{"a.png", "b.JPG", "c.jpeg"}, names)
}

func TestListImages_Empty(t *testing.T) {
	_, err := ListImages(writeFiles(t, "readme.md"))
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestRun(t *testing.T) {
	t.Run("uploads each image with its content", func(t *testing.T) {
		dir := writeFiles(t, "a.png", "b.jpg", "skip.txt")
		up := new(MockItemUploader)
		up.On("Upload", mock.Anything, mock.MatchedBy(func(in *wardrobe.UploadInput) bool {
			data, _ := io.ReadAll(in.Body)
			return in.Filename == "a.png" &&
				in.ContentType == "image/png" &&
				in.Size == int64(len("data-a.png")) &&
				string(data) == "data-a.png" &&
				in.Brand == "Acme" && in.Color == "Red" &&
				in.Category == model.CategoryShirts
		})).Return(&model.Item{Key: "k1"}, nil).Once()
		up.On("Upload", mock.Anything, withName("b.jpg")).Return(&model.Item{Key: "k2"}, nil).Once()

		rec := countingRecorder{}
		summary, err := New(up, rec, testConfig(dir), nil).Run(context.Background())

		require.NoError(t, err)
		assert.NotEmpty(t, summary.RunID)
		assert.Equal(t, 2, summary.Files)
		assert.Equal(t, 2, summary.Uploaded)
		assert.Equal(t, 0, summary.Failed)
		assert.Equal(t, 2, rec["uploaded"])
		up.AssertExpectations(t)
	})

	t.Run("continues after a failed file", func(t *testing.T) {
		dir := writeFiles(t, "a.png", "b.png", "c.png")
		up := new(MockItemUploader)
		up.On("Upload", mock.Anything, withName("a.png")).Return(&model.Item{Key: "k1"}, nil)
		up.On("Upload", mock.Anything, withName("b.png")).Return(nil, wardrobe.ErrObjectStoreWrite)
		up.On("Upload", mock.Anything, withName("c.png")).Return(&model.Item{Key: "k3"}, nil)

		rec := countingRecorder{}
		summary, err := New(up, rec, testConfig(dir), nil).Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Uploaded)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, 1, rec["failed"])
		up.AssertNumberOfCalls(t, "Upload", 3)
	})

	t.Run("random price within range", func(t *testing.T) {
		dir := writeFiles(t, "a.png", "b.png")
		up := new(MockItemUploader)
		var prices []decimal.Decimal
		up.On("Upload", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			prices = append(prices, args.Get(1).(*wardrobe.UploadInput).Price)
		}).Return(&model.Item{}, nil)

		job := New(up, nil, testConfig(dir), nil)
		draws := []int64{0, 9000}
		job.int64N = func(n int64) int64 {
			assert.Equal(t, int64(9001), n)
			d := draws[0]
			draws = draws[1:]
			return d
		}

		_, err := job.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, prices, 2)
		assert.Equal(t, "10.00", prices[0].StringFixed(2))
		assert.Equal(t, "100.00", prices[1].StringFixed(2))
	})

	t.Run("fixed price", func(t *testing.T) {
		dir := writeFiles(t, "a.png")
		up := new(MockItemUploader)
		up.On("Upload", mock.Anything, mock.MatchedBy(func(in *wardrobe.UploadInput) bool {
			return in.Price.Equal(decimal.RequireFromString("42.50"))
		})).Return(&model.Item{}, nil)

		cfg := testConfig(dir)
		cfg.Price = decimal.RequireFromString("42.50")
		_, err := New(up, nil, cfg, nil).Run(context.Background())

		require.NoError(t, err)
		up.AssertExpectations(t)
	})

	t.Run("stops when cancelled during the interval", func(t *testing.T) {
		dir := writeFiles(t, "a.png", "b.png")
		ctx, cancel := context.WithCancel(context.Background())
		up := new(MockItemUploader)
		up.On("Upload", mock.Anything, withName("a.png")).Run(func(mock.Arguments) { cancel() }).Return(&model.Item{}, nil)

		cfg := testConfig(dir)
		cfg.Interval = time.Hour
		summary, err := New(up, nil, cfg, nil).Run(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, summary.Uploaded)
		up.AssertNumberOfCalls(t, "Upload", 1)
	})

	t.Run("missing folder", func(t *testing.T) {
		_, err := New(new(MockItemUploader), nil, testConfig(filepath.Join(t.TempDir(), "nope")), nil).Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("invalid price range", func(t *testing.T) {
		cfg := testConfig(writeFiles(t, "a.png"))
		cfg.MinPrice = decimal.NewFromInt(50)
		cfg.MaxPrice = decimal.NewFromInt(10)
		_, err := New(new(MockItemUploader), nil, cfg, nil).Run(context.Background())
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrNoImages))
	})
}
