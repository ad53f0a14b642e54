package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/itemservice/internal/core/domain"
)

func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name      string
		item      *domain.Item
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid_item",
			item:      domain.NewItem("apple", 1000, 5),
			wantError: false,
		},
		{
			name:      "zero_price_and_quantity_allowed",
			item:      domain.NewItem("free sample", 0, 0),
			wantError: false,
		},
		{
			name:      "negative_price",
			item:      domain.NewItem("apple", -1, 5),
			wantError: true,
			errorMsg:  "price cannot be negative",
		},
		{
			name:      "negative_quantity",
			item:      domain.NewItem("apple", 1000, -5),
			wantError: true,
			errorMsg:  "quantity cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()

			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidItem)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestItemUpdate_Validate(t *testing.T) {
	require.NoError(t, domain.ItemUpdate{ItemName: "pear", Price: 10, Quantity: 1}.Validate())

	err := domain.ItemUpdate{ItemName: "pear", Price: -10, Quantity: 1}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
}

func TestItem_Apply(t *testing.T) {
	item := &domain.Item{ID: 42, ItemName: "apple", Price: 1000, Quantity: 5}

	item.Apply(domain.ItemUpdate{ItemName: "green apple", Price: 1200, Quantity: 3})

	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, "green apple", item.ItemName)
	assert.Equal(t, 1200, item.Price)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.IsPersisted())
	assert.False(t, domain.NewItem("x", 1, 1).IsPersisted())
}

func TestItemSearchCond_Filters(t *testing.T) {
	blank := "   "
	empty := ""

	tests := []struct {
		name      string
		cond      domain.ItemSearchCond
		wantName  string
		hasName   bool
		wantPrice int
		hasPrice  bool
	}{
		{
			name: "no_filters",
			cond: domain.ItemSearchCond{},
		},
		{
			name: "blank_name_is_absent",
			cond: domain.ItemSearchCond{ItemName: &blank},
		},
		{
			name: "empty_name_is_absent",
			cond: domain.ItemSearchCond{ItemName: &empty},
		},
		{
			name:     "name_only",
			cond:     domain.SearchByName("an"),
			wantName: "an",
			hasName:  true,
		},
		{
			name:      "zero_max_price_is_present",
			cond:      domain.SearchByMaxPrice(0),
			wantPrice: 0,
			hasPrice:  true,
		},
		{
			name:      "both",
			cond:      domain.SearchByName("a").WithMaxPrice(2000),
			wantName:  "a",
			hasName:   true,
			wantPrice: 2000,
			hasPrice:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, hasName := tt.cond.NameFilter()
			price, hasPrice := tt.cond.PriceFilter()

			assert.Equal(t, tt.hasName, hasName)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.hasPrice, hasPrice)
			assert.Equal(t, tt.wantPrice, price)
			assert.Equal(t, !tt.hasName && !tt.hasPrice, tt.cond.IsEmpty())
		})
	}
}
