// internal/adapters/db/item_sql_repository.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/ammerola/itemservice/internal/core/domain"
	"github.com/ammerola/itemservice/internal/core/ports"
)

// SQLItemRepository implements ports.ItemRepository on database/sql. Inserts
// are generated from a column/value map by a prepared squirrel builder.
type SQLItemRepository struct {
	db     *sql.DB
	insert squirrel.InsertBuilder
	logger *slog.Logger
}

var _ ports.ItemRepository = (*SQLItemRepository)(nil)

// NewSQLItemRepository creates an item repository over a database/sql handle
// opened with the pgx stdlib driver (see Database.SQLDB).
func NewSQLItemRepository(db *sql.DB, logger *slog.Logger) *SQLItemRepository {
	return &SQLItemRepository{
		db: db,
		insert: squirrel.Insert(itemsTable).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar),
		logger: logger.With(slog.String("repository", "item"), slog.String("binding", "sql")),
	}
}

// itemValues maps the insertable item fields to their columns
func itemValues(item *domain.Item) map[string]interface{} {
	return map[string]interface{}{
		"name":     item.ItemName,
		"price":    item.Price,
		"quantity": item.Quantity,
	}
}

// Save inserts a new item and sets its generated ID
func (r *SQLItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	query, args, err := r.insert.SetMap(itemValues(item)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert: %w", err)
	}

	var id sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotPersisted
		}
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	if !id.Valid || id.Int64 == 0 {
		return nil, domain.ErrNotPersisted
	}

	item.ID = id.Int64

	r.logger.DebugContext(ctx, "item saved", slog.Int64("item_id", item.ID))

	return item, nil
}

// Update overwrites name, price and quantity of the item with itemID
func (r *SQLItemRepository) Update(ctx context.Context, itemID int64, update domain.ItemUpdate) error {
	res, err := r.db.ExecContext(ctx, updateItemSQL, update.ItemName, update.Price, update.Quantity, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil {
		r.logger.DebugContext(ctx, "item updated",
			slog.Int64("item_id", itemID),
			slog.Int64("rows_affected", affected))
	}

	return nil
}

// FindByID retrieves an item by ID, or nil when it does not exist
func (r *SQLItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	item := &domain.Item{}

	err := r.db.QueryRowContext(ctx, findItemByIDSQL, id).
		Scan(&item.ID, &item.ItemName, &item.Price, &item.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	return item, nil
}

// FindAll retrieves the items matching cond
func (r *SQLItemRepository) FindAll(ctx context.Context, cond domain.ItemSearchCond) ([]*domain.Item, error) {
	query, args, err := BuildFindAllQuery(cond)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	r.logger.DebugContext(ctx, "finding items", slog.String("sql", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		item := &domain.Item{}
		if err := rows.Scan(&item.ID, &item.ItemName, &item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}
