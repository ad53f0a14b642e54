//go:build integration
// +build integration

package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/ammerola/itemservice/internal/adapters/db"
	"github.com/ammerola/itemservice/internal/core/domain"
	"github.com/ammerola/itemservice/internal/core/ports"
	"github.com/ammerola/itemservice/test/helpers"
)

func BenchmarkItemRepositories(b *testing.B) {
	testDB := helpers.SetupTestDB(b)
	sqlDB := testDB.Database.SQLDB()
	b.Cleanup(func() { sqlDB.Close() })

	repos := map[string]ports.ItemRepository{
		"Positional": db.NewItemRepository(testDB.Database, helpers.TestLogger()),
		"Named":      db.NewNamedItemRepository(testDB.Database, helpers.TestLogger()),
		"SQL":        db.NewSQLItemRepository(sqlDB, helpers.TestLogger()),
	}
	ctx := context.Background()

	for name, repo := range repos {
		helpers.TruncateItems(b, testDB.PgxPool)

		b.Run(name+"/Save", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = repo.Save(ctx, domain.NewItem(fmt.Sprintf("bench-%d", i), i%5000, 1))
			}
		})

		b.Run(name+"/FindByID", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = repo.FindByID(ctx, int64(i%100)+1)
			}
		})

		b.Run(name+"/FindAll", func(b *testing.B) {
			cond := domain.SearchByName("bench-1").WithMaxPrice(2500)
			for i := 0; i < b.N; i++ {
				_, _ = repo.FindAll(ctx, cond)
			}
		})
	}
}
