package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", createUsersTable{})
}

type createUsersTable struct{}

func (createUsersTable) Up(db *gorm.DB) error {
	if db.Migrator().HasTable(&models.User{}) {
		return nil
	}
	return db.Migrator().CreateTable(&models.User{})
}

func (createUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}
