package s3

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/port/outbound"
)

// Object metadata keys written alongside each uploaded image.
const (
	MetaBrand    = "brand"
	MetaColor    = "color"
	MetaPrice    = "price"
	MetaCategory = "category"
)

// ObjectPicker implements ItemPickerPort by sampling keys in the bucket.
type ObjectPicker struct {
	api    objectAPI
	bucket string
	logger *zap.Logger
	intN   func(n int) int
}

// NewObjectPicker creates a picker over the category prefixes of bucket.
func NewObjectPicker(client *s3.Client, bucket string, logger *zap.Logger) *ObjectPicker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObjectPicker{
		api:    client,
		bucket: bucket,
		logger: logger,
		intN:   rand.IntN,
	}
}

// PickUniformRandom lists the category prefix once and keeps a single
// reservoir slot, so every image key is chosen with equal probability
// without holding the listing in memory.
func (p *ObjectPicker) PickUniformRandom(ctx context.Context, filter outbound.ItemFilter) (*model.Item, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(p.bucket)}
	if filter.Category != "" {
		input.Prefix = aws.String(filter.Category.Prefix())
	}
	paginator := s3.NewListObjectsV2Paginator(p.api, input)

	var chosen string
	seen := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !IsImageKey(key) {
				continue
			}
			seen++
			if p.intN(seen) == 0 {
				chosen = key
			}
		}
	}
	if seen == 0 {
		return nil, nil
	}

	return p.describe(ctx, chosen, filter.Category)
}

// describe reads the chosen object's metadata into an Item.
func (p *ObjectPicker) describe(ctx context.Context, key string, category model.Category) (*model.Item, error) {
	head, err := p.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		// Deleted between list and head.
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("head object %s: %w", key, err)
	}

	meta := head.Metadata
	item := &model.Item{
		Key:      key,
		Category: category,
		Brand:    meta[MetaBrand],
		Color:    meta[MetaColor],
		Price:    decimal.Zero,
	}
	if c, ok := model.ParseCategory(meta[MetaCategory]); ok {
		item.Category = c
	}
	if raw := meta[MetaPrice]; raw != "" {
		price, err := decimal.NewFromString(strings.TrimPrefix(raw, "$"))
		if err != nil {
			p.logger.Debug("Ignoring unparsable price metadata",
				zap.String("key", key),
				zap.String("price", raw),
			)
		} else {
			item.Price = price.Round(2)
		}
	}
	if head.LastModified != nil {
		item.CreatedAt = head.LastModified.UTC()
	}
	return item, nil
}

var imageExtensions = []string{".png", ".jpg", ".jpeg"}

// IsImageKey reports whether key names a png or jpeg image. Uploaded keys
// carry the original filename followed by "_" and the descriptive fields,
// so the extension may sit in the middle of the last path segment.
func IsImageKey(key string) bool {
	name := strings.ToLower(path.Base(key))
	if strings.HasSuffix(key, "/") {
		return false
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(name, ext) || strings.Contains(name, ext+"_") {
			return true
		}
	}
	return false
}

// Compile-time check
var _ outbound.ItemPickerPort = (*ObjectPicker)(nil)
