// Package uploader submits a folder of clothing images through the wardrobe
// upload path, one file per interval.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/model"
)

// ErrNoImages is returned when the folder holds no uploadable image.
var ErrNoImages = errors.New("no image files found")

// contentTypes are the accepted image extensions.
var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ItemUploader is the upload operation the job drives.
type ItemUploader interface {
	Upload(ctx context.Context, in *wardrobe.UploadInput) (*model.Item, error)
}

// Recorder records per-file outcomes.
type Recorder interface {
	RecordBatchFile(status string)
}

// Config holds batch upload settings.
type Config struct {
	Folder   string
	Interval time.Duration
	Category model.Category
	Brand    string
	Color    string
	// Price is used for every file when positive. Otherwise each file gets
	// a random price between MinPrice and MaxPrice inclusive.
	Price    decimal.Decimal
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

// DefaultConfig returns the default batch settings.
func DefaultConfig() *Config {
	return &Config{
		Interval: 2 * time.Second,
		Category: model.CategoryShirts,
		Brand:    "Unknown",
		Color:    "Unknown",
		MinPrice: decimal.NewFromInt(10),
		MaxPrice: decimal.NewFromInt(100),
	}
}

// Summary reports one run.
type Summary struct {
	RunID    string
	Files    int
	Uploaded int
	Failed   int
}

// Job uploads every image in a folder.
type Job struct {
	uploader ItemUploader
	recorder Recorder
	config   *Config
	logger   *zap.Logger
	int64N   func(int64) int64
}

// New creates a batch upload job. recorder may be nil.
func New(uploader ItemUploader, recorder Recorder, config *Config, logger *zap.Logger) *Job {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{
		uploader: uploader,
		recorder: recorder,
		config:   config,
		logger:   logger,
		int64N:   rand.Int64N,
	}
}

// Run uploads the folder's images in name order. A failed file is logged
// and counted and the run continues. Cancelling ctx stops the run between
// files and returns the partial summary with the context error.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	log := j.logger.With(zap.String("run_id", summary.RunID))

	if err := j.validatePrices(); err != nil {
		return summary, err
	}

	files, err := ListImages(j.config.Folder)
	if err != nil {
		return summary, err
	}
	summary.Files = len(files)

	log.Info("Batch upload started",
		zap.String("folder", j.config.Folder),
		zap.Int("files", len(files)),
		zap.Duration("interval", j.config.Interval),
	)

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		item, err := j.uploadFile(ctx, path)
		if err != nil {
			summary.Failed++
			j.record("failed")
			log.Error("Batch file upload failed", zap.String("file", path), zap.Error(err))
		} else {
			summary.Uploaded++
			j.record("uploaded")
			log.Info("Batch file uploaded",
				zap.String("file", filepath.Base(path)),
				zap.String("key", item.Key),
				zap.String("price", item.PriceDisplay()),
			)
		}

		if i < len(files)-1 {
			if err := wait(ctx, j.config.Interval); err != nil {
				return summary, err
			}
		}
	}

	log.Info("Batch upload finished",
		zap.Int("uploaded", summary.Uploaded),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (j *Job) uploadFile(ctx context.Context, path string) (*model.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	return j.uploader.Upload(ctx, &wardrobe.UploadInput{
		Filename:    filepath.Base(path),
		ContentType: contentTypes[strings.ToLower(filepath.Ext(path))],
		Body:        f,
		Size:        info.Size(),
		Category:    j.config.Category,
		Brand:       j.config.Brand,
		Color:       j.config.Color,
		Price:       j.price(),
	})
}

// price returns the fixed price or a random one with cent precision.
func (j *Job) price() decimal.Decimal {
	if j.config.Price.IsPositive() {
		return j.config.Price
	}
	lo := j.config.MinPrice.Shift(2).IntPart()
	hi := j.config.MaxPrice.Shift(2).IntPart()
	return decimal.New(lo+j.int64N(hi-lo+1), -2)
}

func (j *Job) validatePrices() error {
	if j.config.Price.IsPositive() {
		return nil
	}
	if !j.config.MinPrice.IsPositive() || j.config.MaxPrice.LessThan(j.config.MinPrice) {
		return fmt.Errorf("invalid price range %s to %s", j.config.MinPrice, j.config.MaxPrice)
	}
	return nil
}

func (j *Job) record(status string) {
	if j.recorder != nil {
		j.recorder.RecordBatchFile(status)
	}
}

// ListImages returns the PNG and JPEG files directly inside folder, sorted
// by name.
func ListImages(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := contentTypes[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			files = append(files, filepath.Join(folder, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, folder)
	}
	return files, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
