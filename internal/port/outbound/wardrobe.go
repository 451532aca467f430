package outbound

import (
	"context"

	"github.com/outfitpicker/server/internal/model"
)

// ItemFilter narrows the items a random pick draws from.
type ItemFilter struct {
	Category model.Category
}

// ItemDatabasePort defines item metadata persistence.
type ItemDatabasePort interface {
	// Create inserts a new item row.
	Create(ctx context.Context, item *model.Item) error

	// PickUniformRandom returns one item drawn uniformly among those matching
	// the filter, or nil when none match.
	PickUniformRandom(ctx context.Context, filter ItemFilter) (*model.Item, error)

	// CountByCategory returns the number of stored items per category.
	CountByCategory(ctx context.Context) ([]model.CategoryCount, error)
}

// ItemPickerPort draws a uniform random item for a filter.
// The database adapter and the object-store adapter both satisfy it.
type ItemPickerPort interface {
	PickUniformRandom(ctx context.Context, filter ItemFilter) (*model.Item, error)
}

// WardrobeMetricsPort records wardrobe domain events.
type WardrobeMetricsPort interface {
	// RecordPick records a random pick result: hit, miss or error.
	RecordPick(category, result string)

	// RecordUpload records an upload outcome.
	RecordUpload(status string)

	// RecordOutfit records an assembled outfit and how many slots were empty.
	RecordOutfit(missing int)
}
