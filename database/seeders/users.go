package seeders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
)

func init() {
	Register("users", seedUsers)
	Register("orders", seedOrders)
}

// Demo accounts. Both share SEED_PASSWORD (default "password").
var demoUsers = []models.User{
	{Username: "admin", Email: "admin@pizzeria.local", IsStaff: true, IsActive: true},
	{Username: "johndoe", Email: "johndoe@pizzeria.local", IsActive: true},
}

func seedUsers(ctx context.Context, db *gorm.DB) error {
	users := repositories.NewUserRepository(db)
	hash, err := auth.HashPassword(config.Get("SEED_PASSWORD", "password"))
	if err != nil {
		return err
	}

	for _, u := range demoUsers {
		taken, err := users.Exists(ctx, u.Username, u.Email)
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		u.Password = hash
		if err := users.Create(ctx, &u); err != nil {
			return err
		}
	}
	return nil
}

// seedOrders gives the demo customer one order of each size, once.
func seedOrders(ctx context.Context, db *gorm.DB) error {
	customer, err := repositories.NewUserRepository(db).FindByUsername(ctx, "johndoe")
	if err != nil {
		return fmt.Errorf("demo customer: %w", err)
	}
	orders := repositories.NewOrderRepository(db)
	existing, err := orders.ByOwner(ctx, customer.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i, size := range models.PizzaSizes {
		o := &models.Order{Quantity: i + 1, PizzaSize: size, OrderStatus: models.StatusPending, UserID: customer.ID}
		if err := orders.Create(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
