package sqlstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/port/outbound"
)

// ItemDBAdapter implements ItemDatabasePort on the uploads table.
type ItemDBAdapter struct {
	db *gorm.DB
}

// NewItemDBAdapter creates a new item database adapter.
func NewItemDBAdapter(db *gorm.DB) *ItemDBAdapter {
	return &ItemDBAdapter{db: db}
}

func (a *ItemDBAdapter) Create(ctx context.Context, item *model.Item) error {
	return a.db.WithContext(ctx).Create(item).Error
}

// PickUniformRandom lets the database order matching rows randomly and
// returns the first. Each call holds its own pooled connection only for
// the duration of the query.
func (a *ItemDBAdapter) PickUniformRandom(ctx context.Context, filter outbound.ItemFilter) (*model.Item, error) {
	var item model.Item
	err := a.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		q := tx.Model(&model.Item{})
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		return q.Order(randomOrder(tx)).Take(&item).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (a *ItemDBAdapter) CountByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	var counts []model.CategoryCount
	err := a.db.WithContext(ctx).
		Model(&model.Item{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// randomOrder returns the dialect's random ordering expression.
func randomOrder(db *gorm.DB) clause.OrderBy {
	fn := "RAND()"
	switch db.Dialector.Name() {
	case "postgres", "sqlite":
		fn = "RANDOM()"
	}
	return clause.OrderBy{Expression: clause.Expr{SQL: fn}}
}

var _ outbound.ItemDatabasePort = (*ItemDBAdapter)(nil)
