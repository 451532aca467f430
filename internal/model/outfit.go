package model

import "github.com/shopspring/decimal"

// OutfitEntry is one category slot of an outfit.
// Item is nil when nothing was available for the category.
type OutfitEntry struct {
	Category Category
	Item     *Item
	ImageURL string
}

// Available reports whether an item was picked for this slot.
func (e OutfitEntry) Available() bool {
	return e.Item != nil
}

// Outfit is an ephemeral bundle of at most one item per category.
// It is never persisted.
type Outfit struct {
	Entries []OutfitEntry
	Total   decimal.Decimal
}

// NewOutfit creates an empty outfit with a zero total.
func NewOutfit(capacity int) *Outfit {
	return &Outfit{
		Entries: make([]OutfitEntry, 0, capacity),
		Total:   decimal.Zero,
	}
}

// Add appends a slot and accumulates the item price into the total.
// A nil item contributes nothing.
func (o *Outfit) Add(category Category, item *Item) {
	o.Entries = append(o.Entries, OutfitEntry{Category: category, Item: item})
	if item != nil {
		o.Total = o.Total.Add(item.Price)
	}
}

// Get returns the item picked for a category.
func (o *Outfit) Get(category Category) (*Item, bool) {
	for _, e := range o.Entries {
		if e.Category == category {
			return e.Item, e.Item != nil
		}
	}
	return nil, false
}

// Items returns the category to item mapping of present picks.
func (o *Outfit) Items() map[Category]*Item {
	items := make(map[Category]*Item, len(o.Entries))
	for _, e := range o.Entries {
		if e.Item != nil {
			items[e.Category] = e.Item
		}
	}
	return items
}

// Missing returns the categories with no available item.
func (o *Outfit) Missing() []Category {
	var missing []Category
	for _, e := range o.Entries {
		if e.Item == nil {
			missing = append(missing, e.Category)
		}
	}
	return missing
}

// TotalDisplay returns the total price formatted for display.
func (o *Outfit) TotalDisplay() string {
	return FormatPrice(o.Total)
}

// OutfitEntryResponse represents one outfit slot in API responses.
type OutfitEntryResponse struct {
	Category  Category      `json:"category"`
	Available bool          `json:"available"`
	Item      *ItemResponse `json:"item,omitempty"`
}

// OutfitResponse represents an outfit in API responses.
type OutfitResponse struct {
	Entries    []OutfitEntryResponse `json:"entries"`
	TotalPrice string                `json:"total_price"`
}

// ToResponse converts an outfit to its API representation.
func (o *Outfit) ToResponse() *OutfitResponse {
	resp := &OutfitResponse{
		Entries:    make([]OutfitEntryResponse, 0, len(o.Entries)),
		TotalPrice: o.Total.StringFixed(2),
	}
	for _, e := range o.Entries {
		entry := OutfitEntryResponse{Category: e.Category, Available: e.Item != nil}
		if e.Item != nil {
			entry.Item = e.Item.ToResponse()
			entry.Item.ImageURL = e.ImageURL
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return resp
}
