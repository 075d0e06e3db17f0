package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/migration"
)

func init() {
	migration.Register("20260101000001_create_orders_table", createOrdersTable{})
}

// sqlite only stops reusing the rowid of a deleted highest row when the
// table is declared AUTOINCREMENT, which gorm's sqlite dialector never
// emits. Order ids must never be reused.
var sqliteOrdersDDL = []string{
	"CREATE TABLE `orders` (" +
		"`id` integer PRIMARY KEY AUTOINCREMENT," +
		"`quantity` integer NOT NULL," +
		"`pizza_size` text NOT NULL DEFAULT 'SMALL'," +
		"`order_status` text NOT NULL DEFAULT 'PENDING'," +
		"`user_id` integer NOT NULL," +
		"`created_at` datetime," +
		"`updated_at` datetime," +
		"CONSTRAINT `fk_users_orders` FOREIGN KEY (`user_id`) REFERENCES `users`(`id`) ON DELETE CASCADE)",
	"CREATE INDEX `idx_orders_user_id` ON `orders`(`user_id`)",
}

// Orders reference their owner through user_id. On the other drivers the
// foreign key comes from the User relation on models.Order, and gorm emits
// an identity/serial column that never hands out an id twice.
type createOrdersTable struct{}

func (createOrdersTable) Up(db *gorm.DB) error {
	if db.Migrator().HasTable(&models.Order{}) {
		return nil
	}
	if db.Dialector.Name() != "sqlite" {
		return db.Migrator().CreateTable(&models.Order{})
	}
	for _, stmt := range sqliteOrdersDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (createOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Order{})
}
