package seeders

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/database/migrations"
	"github.com/shashiranjanraj/pizzeria/pkg/database"
)

func TestRunAllIsIdempotent(t *testing.T) {
	db, err := database.Connect("sqlite", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, migrations.Migrate(context.Background(), db))

	var out bytes.Buffer
	ctx := context.Background()
	require.NoError(t, RunAll(ctx, db, &out))
	require.NoError(t, RunAll(ctx, db, &out))
	assert.Contains(t, out.String(), "Seeding users... done")

	var users, orders int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(len(demoUsers)), users)
	assert.Equal(t, int64(len(models.PizzaSizes)), orders)

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsStaff)
}
