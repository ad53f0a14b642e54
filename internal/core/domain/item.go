// internal/core/domain/item.go
package domain

import (
	"fmt"
	"strings"
)

// Item represents a single stocked item
type Item struct {
	ID       int64  `json:"id"`
	ItemName string `json:"item_name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// ItemUpdate carries the mutable fields of an item. It never carries an ID.
type ItemUpdate struct {
	ItemName string `json:"item_name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// ItemSearchCond filters a list query. Nil fields are not applied.
type ItemSearchCond struct {
	ItemName *string `json:"item_name,omitempty"`
	MaxPrice *int    `json:"max_price,omitempty"`
}

// NewItem builds an unsaved item
func NewItem(name string, price, quantity int) *Item {
	return &Item{
		ItemName: name,
		Price:    price,
		Quantity: quantity,
	}
}

// Validate performs domain validation on the item
func (i *Item) Validate() error {
	return validateFields(i.Price, i.Quantity)
}

// Apply overwrites the mutable fields with the update values. ID is untouched.
func (i *Item) Apply(update ItemUpdate) {
	i.ItemName = update.ItemName
	i.Price = update.Price
	i.Quantity = update.Quantity
}

// IsPersisted reports whether the store has assigned an ID
func (i *Item) IsPersisted() bool {
	return i.ID != 0
}

// Validate performs domain validation on the update
func (u ItemUpdate) Validate() error {
	return validateFields(u.Price, u.Quantity)
}

func validateFields(price, quantity int) error {
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidItem)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidItem)
	}
	return nil
}

// NameFilter returns the name substring and whether it should be applied.
// A blank name is treated as absent.
func (c ItemSearchCond) NameFilter() (string, bool) {
	if c.ItemName == nil || strings.TrimSpace(*c.ItemName) == "" {
		return "", false
	}
	return *c.ItemName, true
}

// PriceFilter returns the maximum price and whether it should be applied
func (c ItemSearchCond) PriceFilter() (int, bool) {
	if c.MaxPrice == nil {
		return 0, false
	}
	return *c.MaxPrice, true
}

// IsEmpty reports whether no filter applies
func (c ItemSearchCond) IsEmpty() bool {
	_, hasName := c.NameFilter()
	_, hasPrice := c.PriceFilter()
	return !hasName && !hasPrice
}

// SearchByName is a convenience constructor for a name-only filter
func SearchByName(name string) ItemSearchCond {
	return ItemSearchCond{ItemName: &name}
}

// SearchByMaxPrice is a convenience constructor for a price-only filter
func SearchByMaxPrice(maxPrice int) ItemSearchCond {
	return ItemSearchCond{MaxPrice: &maxPrice}
}

// WithName returns a copy of the condition with the name filter set
func (c ItemSearchCond) WithName(name string) ItemSearchCond {
	c.ItemName = &name
	return c
}

// WithMaxPrice returns a copy of the condition with the price filter set
func (c ItemSearchCond) WithMaxPrice(maxPrice int) ItemSearchCond {
	c.MaxPrice = &maxPrice
	return c
}
