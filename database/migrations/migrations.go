// Package migrations registers the schema migrations of the order service.
// Importing it for side effects makes them visible to pkg/migration.
package migrations

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/pkg/migration"
)

// Migrate applies every pending migration to db without printing progress.
// Tests use it so they run against the same DDL as production.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return migration.New(db, nil).Run(ctx)
}
