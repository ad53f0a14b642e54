package db_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/itemservice/internal/adapters/db"
	"github.com/ammerola/itemservice/test/helpers"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(db.EmbeddedMigrations(), "migrations/*.sql")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"migrations/000001_create_items.down.sql",
		"migrations/000001_create_items.up.sql",
	}, files)

	up, err := fs.ReadFile(db.EmbeddedMigrations(), "migrations/000001_create_items.up.sql")
	require.NoError(t, err)

	schema := string(up)
	for _, column := range []string{"id", "name", "price", "quantity"} {
		assert.Contains(t, schema, column)
	}
	assert.True(t, strings.Contains(schema, "CHECK (price >= 0)"))
	assert.True(t, strings.Contains(schema, "CHECK (quantity >= 0)"))
}

func TestNewMigrator_RequiresConfig(t *testing.T) {
	_, err := db.NewMigrator(nil, helpers.TestLogger())
	assert.Error(t, err)
}
