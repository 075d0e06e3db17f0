package migrations_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/database/migrations"
	"github.com/shashiranjanraj/pizzeria/pkg/database"
	"github.com/shashiranjanraj/pizzeria/pkg/migration"
)

func TestMigrateAndRollback(t *testing.T) {
	db, err := database.Connect("sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	ctx := context.Background()
	var out bytes.Buffer
	runner := migration.New(db, &out)

	require.NoError(t, runner.Run(ctx))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Order{}))
	assert.True(t, db.Migrator().HasIndex(&models.Order{}, "UserID"))
	assert.Contains(t, out.String(), "20260101000001_create_orders_table")

	require.NoError(t, runner.Rollback(ctx))
	assert.False(t, db.Migrator().HasTable(&models.Order{}))
	assert.False(t, db.Migrator().HasTable(&models.User{}))
}

func TestSqliteOrderIDsAreNeverReused(t *testing.T) {
	db, err := database.Connect("sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, migrations.Migrate(context.Background(), db))

	var ddl string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'orders'").Scan(&ddl).Error)
	assert.Contains(t, ddl, "AUTOINCREMENT")

	owner := &models.User{Username: "alice", Email: "alice@pizzeria.local", Password: "x", IsActive: true}
	require.NoError(t, db.Create(owner).Error)

	first := &models.Order{Quantity: 1, PizzaSize: models.SizeSmall, OrderStatus: models.StatusPending, UserID: owner.ID}
	require.NoError(t, db.Omit("User").Create(first).Error)
	require.NoError(t, db.Delete(&models.Order{}, first.ID).Error)

	second := &models.Order{Quantity: 1, PizzaSize: models.SizeSmall, OrderStatus: models.StatusPending, UserID: owner.ID}
	require.NoError(t, db.Omit("User").Create(second).Error)
	assert.Greater(t, second.ID, first.ID)
}
