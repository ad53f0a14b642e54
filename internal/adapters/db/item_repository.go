// internal/adapters/db/item_repository.go
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

// ItemRepository implements ports.ItemRepository with ordinal ($n) binding
type ItemRepository struct {
	db     ports.Querier
	logger *slog.Logger
}

// Statically assert that *ItemRepository implements the ItemRepository interface.
var _ ports.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new item repository. db may be the pool or a pgx.Tx.
func NewItemRepository(db ports.Querier, logger *slog.Logger) *ItemRepository {
	return &ItemRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "item"), slog.String("binding", "positional")),
	}
}

// Save inserts a new item and sets its generated ID
func (r *ItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	var id int64
	err := r.db.QueryRow(ctx, insertItemSQL, item.ItemName, item.Price, item.Quantity).Scan(&id)
	if err != nil {
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

// Update overwrites name, price and quantity of the item with itemID
func (r *ItemRepository) Update(ctx context.Context, itemID int64, update domain.ItemUpdate) error {
	tag, err := r.db.Exec(ctx, updateItemSQL, update.ItemName, update.Price, update.Quantity, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	r.logger.DebugContext(ctx, "item updated",
		slog.Int64("item_id", itemID),
		slog.Int64("rows_affected", tag.RowsAffected()))

	return nil
}

// FindByID retrieves an item by ID, or nil when it does not exist
func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := ScanOne(r.db.QueryRow(ctx, findItemByIDSQL, id), scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return item, nil
}

// FindAll retrieves the items matching cond
func (r *ItemRepository) FindAll(ctx context.Context, cond domain.ItemSearchCond) ([]*domain.Item, error) {
	query, args, err := BuildFindAllQuery(cond)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	r.logger.DebugContext(ctx, "finding items", slog.String("sql", query))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	items, err := ScanMany(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}

	return items, nil
}
