// internal/core/ports/item_repository.go
package ports

import (
	"context"

	"github.com/ammerola/itemservice/internal/core/domain"
)

// ItemRepository defines the persistence port for items.
// This interface is implemented by the database adapters.
type ItemRepository interface {
	// Save inserts the item and writes the generated ID back onto it.
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// Update overwrites name, price and quantity. A missing ID is not an error.
	Update(ctx context.Context, itemID int64, update domain.ItemUpdate) error
	// FindByID returns nil, nil when no row matches.
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	// FindAll never returns a nil slice on success.
	FindAll(ctx context.Context, cond domain.ItemSearchCond) ([]*domain.Item, error)
}
