// internal/adapters/db/item_query.go
package db

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/itemservice/internal/core/domain"
)

const itemsTable = "items"

var itemColumns = []string{"id", "name", "price", "quantity"}

// Positional statements ($n placeholders)
const (
	insertItemSQL   = `INSERT INTO items (name, price, quantity) VALUES ($1, $2, $3) RETURNING id`
	updateItemSQL   = `UPDATE items SET name = $1, price = $2, quantity = $3 WHERE id = $4`
	findItemByIDSQL = `SELECT id, name, price, quantity FROM items WHERE id = $1`
)

// Named statements (@name placeholders bound with pgx.NamedArgs)
const (
	insertItemNamedSQL   = `INSERT INTO items (name, price, quantity) VALUES (@name, @price, @quantity) RETURNING id`
	updateItemNamedSQL   = `UPDATE items SET name = @name, price = @price, quantity = @quantity WHERE id = @id`
	findItemByIDNamedSQL = `SELECT id, name, price, quantity FROM items WHERE id = @id`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a plain substring into a LIKE pattern matching any
// value that contains it. Wildcard characters in s match literally.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func selectItems() squirrel.SelectBuilder {
	return squirrel.Select(itemColumns...).From(itemsTable)
}

// BuildFindAllQuery renders the list statement for cond with $n placeholders.
// The name predicate always precedes the price predicate.
func BuildFindAllQuery(cond domain.ItemSearchCond) (string, []interface{}, error) {
	qb := selectItems().PlaceholderFormat(squirrel.Dollar)

	if name, ok := cond.NameFilter(); ok {
		qb = qb.Where(squirrel.Like{"name": ContainsPattern(name)})
	}
	if maxPrice, ok := cond.PriceFilter(); ok {
		qb = qb.Where(squirrel.LtOrEq{"price": maxPrice})
	}

	return qb.ToSql()
}

// BuildFindAllNamedQuery renders the same statement as BuildFindAllQuery with
// @name_pattern and @max_price placeholders.
func BuildFindAllNamedQuery(cond domain.ItemSearchCond) (string, pgx.NamedArgs, error) {
	qb := selectItems()
	args := pgx.NamedArgs{}

	if name, ok := cond.NameFilter(); ok {
		qb = qb.Where("name LIKE @name_pattern")
		args["name_pattern"] = ContainsPattern(name)
	}
	if maxPrice, ok := cond.PriceFilter(); ok {
		qb = qb.Where("price <= @max_price")
		args["max_price"] = maxPrice
	}

	query, _, err := qb.ToSql()
	if err != nil {
		return "", nil, err
	}

	return query, args, nil
}

// scanItem maps one id, name, price, quantity row onto an Item
func scanItem(row pgx.Row) (*domain.Item, error) {
	item := &domain.Item{}
	if err := row.Scan(&item.ID, &item.ItemName, &item.Price, &item.Quantity); err != nil {
		return nil, err
	}
	return item, nil
}
