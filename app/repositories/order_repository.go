package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

// ErrOrderNotFound is returned when no order has the requested id.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository is the gorm-backed order store. Writes touch only the
// columns they own, so concurrent field and status updates do not clobber
// each other; otherwise the last write wins.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	if err := r.db.WithContext(ctx).Omit("User").Create(o).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// All returns every order, oldest first.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	orders := []models.Order{}
	if err := r.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ByOwner returns the orders placed by userID, oldest first.
func (r *OrderRepository) ByOwner(ctx context.Context, userID uint) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	orders := []models.Order{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders of user %d: %w", userID, err)
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	return findOrder(r.db.WithContext(ctx), id)
}

// UpdateFields overwrites quantity and pizza_size.
func (r *OrderRepository) UpdateFields(ctx context.Context, id uint, quantity int, size models.PizzaSize) (*models.Order, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	return r.update(ctx, id, map[string]interface{}{
		"quantity":   quantity,
		"pizza_size": size,
	})
}

// UpdateStatus overwrites order_status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	return r.update(ctx, id, map[string]interface{}{"order_status": status})
}

// Delete hard-deletes the order and returns it as it was.
func (r *OrderRepository) Delete(ctx context.Context, id uint) (*models.Order, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())

	var snapshot *models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := findOrder(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return fmt.Errorf("delete order %d: %w", id, err)
		}
		snapshot = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *OrderRepository) update(ctx context.Context, id uint, columns map[string]interface{}) (*models.Order, error) {
	var updated *models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOrder(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Order{ID: id}).Updates(columns).Error; err != nil {
			return fmt.Errorf("update order %d: %w", id, err)
		}
		o, err := findOrder(tx, id)
		updated = o
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func findOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var o models.Order
	err := db.First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}
	return &o, nil
}
