package db_test

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/itemservice/internal/adapters/db"
	"github.com/ammerola/itemservice/internal/core/domain"
)

func TestBuildFindAllQuery(t *testing.T) {
	tests := []struct {
		name         string
		cond         domain.ItemSearchCond
		expectedSQL  string
		expectedArgs []interface{}
	}{
		{
			name:         "no_filters",
			cond:         domain.ItemSearchCond{},
			expectedSQL:  "SELECT id, name, price, quantity FROM items",
			expectedArgs: nil,
		},
		{
			name:         "name_only",
			cond:         domain.SearchByName("app"),
			expectedSQL:  "SELECT id, name, price, quantity FROM items WHERE name LIKE $1",
			expectedArgs: []interface{}{"%app%"},
		},
		{
			name:         "price_only",
			cond:         domain.SearchByMaxPrice(5000),
			expectedSQL:  "SELECT id, name, price, quantity FROM items WHERE price <= $1",
			expectedArgs: []interface{}{5000},
		},
		{
			name:         "name_and_price",
			cond:         domain.SearchByName("app").WithMaxPrice(5000),
			expectedSQL:  "SELECT id, name, price, quantity FROM items WHERE name LIKE $1 AND price <= $2",
			expectedArgs: []interface{}{"%app%", 5000},
		},
		{
			name:         "blank_name_is_absent",
			cond:         domain.SearchByName("   "),
			expectedSQL:  "SELECT id, name, price, quantity FROM items",
			expectedArgs: nil,
		},
		{
			name:         "zero_max_price_is_present",
			cond:         domain.SearchByMaxPrice(0),
			expectedSQL:  "SELECT id, name, price, quantity FROM items WHERE price <= $1",
			expectedArgs: []interface{}{0},
		},
		{
			name:         "wildcards_are_escaped",
			cond:         domain.SearchByName("50%_off"),
			expectedSQL:  "SELECT id, name, price, quantity FROM items WHERE name LIKE $1",
			expectedArgs: []interface{}{`%50\%\_off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := db.BuildFindAllQuery(tt.cond)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, query)
			if tt.expectedArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.expectedArgs, args)
			}
		})
	}
}

func TestBuildFindAllNamedQuery(t *testing.T) {
	tests := []struct {
		name         string
		cond         domain.ItemSearchCond
		expectedSQL  string
		expectedArgs pgx.NamedArgs
	}{
		{
			name:         "no_filters",
			cond:         domain.ItemSearchCond{},
			expectedSQL:  "SELECT id, name, price, quantity FROM items",
			expectedArgs: pgx.NamedArgs{},
		},
		{
			name:         "name_only",
			cond:         domain.SearchByName("ban"),
			expectedSQL:  "SELECT id, name, price, quantity FROM items WHERE name LIKE @name_pattern",
			expectedArgs: pgx.NamedArgs{"name_pattern": "%ban%"},
		},
		{
			name:         "price_only",
			cond:         domain.SearchByMaxPrice(1200),
			expectedSQL:  "SELECT id, name, price, quantity FROM items WHERE price <= @max_price",
			expectedArgs: pgx.NamedArgs{"max_price": 1200},
		},
		{
			name:         "name_and_price",
			cond:         domain.SearchByName("ban").WithMaxPrice(1200),
			expectedSQL:  "SELECT id, name, price, quantity FROM items WHERE name LIKE @name_pattern AND price <= @max_price",
			expectedArgs: pgx.NamedArgs{"name_pattern": "%ban%", "max_price": 1200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := db.BuildFindAllNamedQuery(tt.cond)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, query)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"apple", "%apple%"},
		{"", "%%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, db.ContainsPattern(tt.input))
		})
	}
}
