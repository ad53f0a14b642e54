package app_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/itemservice/internal/adapters/db"
	"github.com/ammerola/itemservice/internal/app"
	"github.com/ammerola/itemservice/internal/core/domain"
	"github.com/ammerola/itemservice/internal/pkg/config"
	"github.com/ammerola/itemservice/test/helpers"
)

func TestDatabaseConfig(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	cfg.Database.MaxConnLifetime = time.Hour

	dbConfig := app.DatabaseConfig(cfg.Database)

	assert.Equal(t, "localhost", dbConfig.Host)
	assert.Equal(t, "5432", dbConfig.Port)
	assert.Equal(t, "test", dbConfig.User)
	assert.Equal(t, "test_items", dbConfig.Database)
	assert.Equal(t, "disable", dbConfig.SSLMode)
	assert.Equal(t, int32(10), dbConfig.MaxConnections)
	assert.Equal(t, int32(2), dbConfig.MinConnections)
	assert.Equal(t, time.Hour, dbConfig.MaxConnLifetime)
	assert.Equal(t, "describe", dbConfig.StatementCacheMode)
	assert.True(t, dbConfig.EnableQueryLogging)
}

func TestNewItemRepository(t *testing.T) {
	tests := []struct {
		name     string
		variant  string
		expected interface{}
		wantErr  bool
	}{
		{name: "default", variant: "", expected: &db.ItemRepository{}},
		{name: "positional", variant: config.RepositoryPositional, expected: &db.ItemRepository{}},
		{name: "named", variant: config.RepositoryNamed, expected: &db.NamedItemRepository{}},
		{name: "unknown", variant: "jdbc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, sqlDB, err := app.NewItemRepository(tt.variant, nil, helpers.TestLogger())
			assert.Nil(t, sqlDB)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown repository variant")
				assert.Nil(t, repo)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.expected, repo)
		})
	}
}

func TestNewRedisCache(t *testing.T) {
	testRedis := helpers.SetupTestRedis(t)
	host, port, err := net.SplitHostPort(testRedis.Server.Addr())
	require.NoError(t, err)

	cfg := helpers.LoadTestConfig().Redis
	cfg.Host = host
	cfg.Port = port
	cfg.TTL = time.Minute

	ctx := context.Background()
	client, cache, err := app.NewRedisCache(ctx, cfg, helpers.TestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	item := &domain.Item{ID: 1, ItemName: "itemA", Price: 10000, Quantity: 10}
	require.NoError(t, cache.Set(ctx, "item:1", item))

	var got domain.Item
	require.NoError(t, cache.Get(ctx, "item:1", &got))
	assert.Equal(t, *item, got)
	assert.Equal(t, time.Minute, testRedis.Server.TTL("item:1"))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	cfg := helpers.LoadTestConfig().Redis
	cfg.Host = "127.0.0.1"
	cfg.Port = "1"
	cfg.DialTimeout = 100 * time.Millisecond
	cfg.MaxRetries = -1

	client, cache, err := app.NewRedisCache(context.Background(), cfg, helpers.TestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
	assert.Nil(t, client)
	assert.Nil(t, cache)
}
