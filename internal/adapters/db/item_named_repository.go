// internal/adapters/db/item_named_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/itemservice/internal/core/domain"
	"github.com/ammerola/itemservice/internal/core/ports"
)

// NamedItemRepository implements ports.ItemRepository with @name binding
type NamedItemRepository struct {
	db     ports.Querier
	logger *slog.Logger
}

var _ ports.ItemRepository = (*NamedItemRepository)(nil)

// NewNamedItemRepository creates an item repository using pgx.NamedArgs
func NewNamedItemRepository(db ports.Querier, logger *slog.Logger) *NamedItemRepository {
	return &NamedItemRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "item"), slog.String("binding", "named")),
	}
}

func itemArgs(name string, price, quantity int) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":     name,
		"price":    price,
		"quantity": quantity,
	}
}

// Save inserts a new item and sets its generated ID
func (r *NamedItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	var id int64
	args := itemArgs(item.ItemName, item.Price, item.Quantity)

	if err := r.db.QueryRow(ctx, insertItemNamedSQL, args).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotPersisted
		}
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	if id == 0 {
		return nil, domain.ErrNotPersisted
	}

	item.ID = id

	r.logger.DebugContext(ctx, "item saved", slog.Int64("item_id", id))

	return item, nil
}

// Update overwrites name, price and quantity of the item with itemID.
// ItemUpdate has no id, so it is added to the argument map here.
func (r *NamedItemRepository) Update(ctx context.Context, itemID int64, update domain.ItemUpdate) error {
	args := itemArgs(update.ItemName, update.Price, update.Quantity)
	args["id"] = itemID

	tag, err := r.db.Exec(ctx, updateItemNamedSQL, args)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	r.logger.DebugContext(ctx, "item updated",
		slog.Int64("item_id", itemID),
		slog.Int64("rows_affected", tag.RowsAffected()))

	return nil
}

// FindByID retrieves an item by ID, or nil when it does not exist
func (r *NamedItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := r.db.QueryRow(ctx, findItemByIDNamedSQL, pgx.NamedArgs{"id": id})

	item, err := ScanOne(row, scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return item, nil
}

// FindAll retrieves the items matching cond
func (r *NamedItemRepository) FindAll(ctx context.Context, cond domain.ItemSearchCond) ([]*domain.Item, error) {
	query, args, err := BuildFindAllNamedQuery(cond)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	r.logger.DebugContext(ctx, "finding items", slog.String("sql", query))

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	items, err := ScanMany(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}

	return items, nil
}
