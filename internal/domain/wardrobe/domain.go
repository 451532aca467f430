package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/port/outbound"
	"github.com/outfitpicker/server/internal/utils/requestctx"
)

// WardrobeDomain defines the interface for wardrobe business logic.
type WardrobeDomain interface {
	// Random selection
	PickRandom(ctx context.Context, category model.Category) (*model.Item, error)
	Assemble(ctx context.Context, categories []model.Category) (*model.Outfit, error)
	GenerateOutfit(ctx context.Context, categories []model.Category) (*model.Outfit, error)

	// Uploads
	Upload(ctx context.Context, in *UploadInput) (*model.Item, error)

	// Catalog
	Categories() []model.Category
	Inventory(ctx context.Context) ([]model.CategoryCount, error)
}

// wardrobeDomain implements WardrobeDomain.
type wardrobeDomain struct {
	itemDB  outbound.ItemDatabasePort
	picker  outbound.ItemPickerPort
	storage outbound.ObjectStoragePort
	metrics outbound.WardrobeMetricsPort
	config  *Config
	logger  *zap.Logger
	now     func() time.Time
}

// NewWardrobeDomain creates a new wardrobe domain service.
// picker may be nil, in which case random picks go to itemDB.
func NewWardrobeDomain(
	itemDB outbound.ItemDatabasePort,
	picker outbound.ItemPickerPort,
	storage outbound.ObjectStoragePort,
	metrics outbound.WardrobeMetricsPort,
	config *Config,
	logger *zap.Logger,
) WardrobeDomain {
	if config == nil {
		config = DefaultConfig()
	}
	if picker == nil {
		picker = itemDB
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &wardrobeDomain{
		itemDB:  itemDB,
		picker:  picker,
		storage: storage,
		metrics: metrics,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

func (d *wardrobeDomain) PickRandom(ctx context.Context, category model.Category) (*model.Item, error) {
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	item, err := d.picker.PickUniformRandom(ctx, outbound.ItemFilter{Category: category})
	if err != nil {
		d.metrics.RecordPick(category.String(), "error")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if item == nil {
		d.metrics.RecordPick(category.String(), "miss")
		return nil, nil
	}

	d.metrics.RecordPick(category.String(), "hit")
	return item, nil
}

func (d *wardrobeDomain) Assemble(ctx context.Context, categories []model.Category) (*model.Outfit, error) {
	outfit := model.NewOutfit(len(categories))

	for _, category := range categories {
		item, err := d.PickRandom(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("pick %s: %w", category, err)
		}
		outfit.Add(category, item)
	}

	missing := outfit.Missing()
	d.metrics.RecordOutfit(len(missing))
	if len(missing) > 0 {
		d.logger.Debug("Outfit assembled with empty slots",
			zap.Int("categories", len(categories)),
			zap.Int("missing", len(missing)),
		)
	}

	return outfit, nil
}

func (d *wardrobeDomain) GenerateOutfit(ctx context.Context, categories []model.Category) (*model.Outfit, error) {
	if len(categories) == 0 {
		categories = d.config.OutfitCategories
	}

	outfit, err := d.Assemble(ctx, categories)
	if err != nil {
		return nil, err
	}

	if d.storage == nil || d.config.PresignExpiry <= 0 {
		return outfit, nil
	}

	for i := range outfit.Entries {
		entry := &outfit.Entries[i]
		if entry.Item == nil {
			continue
		}
		url, err := d.storage.GetPresignedURL(ctx, entry.Item.Key, d.config.PresignExpiry)
		if err != nil {
			d.logger.Warn("Failed to presign outfit image",
				zap.String("key", entry.Item.Key),
				zap.Error(err),
			)
			continue
		}
		entry.ImageURL = url
	}

	return outfit, nil
}

func (d *wardrobeDomain) Upload(ctx context.Context, in *UploadInput) (*model.Item, error) {
	if err := in.Validate(); err != nil {
		d.metrics.RecordUpload("rejected")
		return nil, err
	}

	now := d.now()
	item := &model.Item{
		Key:       BuildObjectKey(in.Category, in.Filename, strings.TrimSpace(in.Brand), strings.TrimSpace(in.Color), now),
		Category:  in.Category,
		Brand:     strings.TrimSpace(in.Brand),
		Color:     strings.TrimSpace(in.Color),
		Price:     in.Price.Round(2),
		CreatedAt: now.UTC(),
	}

	err := d.storage.Put(ctx, &outbound.PutObjectInput{
		Key:         item.Key,
		Body:        in.Body,
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata:    ObjectMetadata(item),
	})
	if err != nil {
		d.metrics.RecordUpload("object_failed")
		if errors.Is(err, outbound.ErrBackendUnavailable) {
			return nil, fmt.Errorf("%w: %w", ErrObjectStoreUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrObjectStoreWrite, err)
	}

	// The object is already stored; a failed insert leaves it orphaned.
	if err := d.itemDB.Create(ctx, item); err != nil {
		d.metrics.RecordUpload("metadata_failed")
		d.logger.Error("Object stored without metadata row",
			zap.String("key", item.Key),
			zap.String("request_id", requestctx.RequestID(ctx)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrMetadataWrite, err)
	}

	d.metrics.RecordUpload("success")
	d.logger.Info("Item uploaded",
		zap.String("key", item.Key),
		zap.String("request_id", requestctx.RequestID(ctx)),
		zap.String("category", item.Category.String()),
		zap.String("price", item.Price.StringFixed(2)),
	)

	return item, nil
}

func (d *wardrobeDomain) Categories() []model.Category {
	return model.AllCategories()
}

func (d *wardrobeDomain) Inventory(ctx context.Context) ([]model.CategoryCount, error) {
	counts, err := d.itemDB.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	byCategory := make(map[model.Category]int64, len(counts))
	for _, c := range counts {
		byCategory[c.Category] = c.Count
	}

	out := make([]model.CategoryCount, 0, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		out = append(out, model.CategoryCount{Category: c, Count: byCategory[c]})
	}
	return out, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordPick(string, string) {}
func (noopMetrics) RecordUpload(string)       {}
func (noopMetrics) RecordOutfit(int)          {}
