// internal/core/ports/item_service.go
package ports

import (
	"context"

	"github.com/ammerola/itemservice/internal/core/domain"
)

// ItemService defines the application service port for items.
// This interface is implemented by the application service.
type ItemService interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, itemID int64, update domain.ItemUpdate) error
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	FindAll(ctx context.Context, cond domain.ItemSearchCond) ([]*domain.Item, error)
}
