// internal/core/services/item.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ammerola/itemservice/internal/core/domain"
	"github.com/ammerola/itemservice/internal/core/ports"
)

const itemCachePrefix = "item"

// ItemCacheKey is the cache key of a single item, e.g. item:42
func ItemCacheKey(id int64) string {
	return itemCachePrefix + ":" + strconv.FormatInt(id, 10)
}

// ItemService handles item business logic
type ItemService struct {
	repo     ports.ItemRepository
	cache    ports.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// Statically assert that *ItemService implements the ItemService interface.
var _ ports.ItemService = (*ItemService)(nil)

// NewItemService creates a new item service. A nil cache disables caching.
func NewItemService(repo ports.ItemRepository, cache ports.CacheRepository, cacheTTL time.Duration, logger *slog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With(slog.String("service", "item")),
	}
}

// Create validates and saves a new item
func (s *ItemService) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.InfoContext(ctx, "saved item",
		slog.Int64("item_id", saved.ID),
		slog.String("item_name", saved.ItemName))

	return saved, nil
}

// Update validates and applies an update, then evicts the cached copy
func (s *ItemService) Update(ctx context.Context, itemID int64, update domain.ItemUpdate) error {
	if err := update.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Update(ctx, itemID, update); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, ItemCacheKey(itemID)); err != nil {
			s.logger.WarnContext(ctx, "failed to evict cached item",
				slog.Int64("item_id", itemID),
				slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "updated item", slog.Int64("item_id", itemID))

	return nil
}

// FindByID returns the item, or nil when it does not exist
func (s *ItemService) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	if cached, ok := s.cached(ctx, id); ok {
		return cached, nil
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, ItemCacheKey(id), item, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "failed to cache item",
				slog.Int64("item_id", id),
				slog.String("error", err.Error()))
		}
	}

	return item, nil
}

// GetByID is FindByID for callers that need the item to exist
func (s *ItemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrItemNotFound, id)
	}
	return item, nil
}

// FindAll returns the items matching cond
func (s *ItemService) FindAll(ctx context.Context, cond domain.ItemSearchCond) ([]*domain.Item, error) {
	items, err := s.repo.FindAll(ctx, cond)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	s.logger.DebugContext(ctx, "listed items", slog.Int("count", len(items)))

	return items, nil
}

func (s *ItemService) cached(ctx context.Context, id int64) (*domain.Item, bool) {
	if s.cache == nil {
		return nil, false
	}

	var item domain.Item
	if err := s.cache.Get(ctx, ItemCacheKey(id), &item); err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "cache read failed",
				slog.Int64("item_id", id),
				slog.String("error", err.Error()))
		}
		return nil, false
	}

	return &item, true
}
