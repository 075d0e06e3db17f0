package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/event"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/rbac"
)

const (
	detailInvalidToken = "Invalid Token"
	detailNotSuperuser = "You are not a superuser"
	detailNotAllowed   = "User is not allowed to carry out the request"
	detailNoSuchOrder  = "No order with such id"
	detailNotFound     = "Order not found"
)

// UserDirectory resolves a verified subject to a user.
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// OrderStore persists orders. Lookups of a missing id return
// repositories.ErrOrderNotFound.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	All(ctx context.Context) ([]models.Order, error)
	ByOwner(ctx context.Context, userID uint) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	UpdateFields(ctx context.Context, id uint, quantity int, size models.PizzaSize) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id uint) (*models.Order, error)
}

// OrderService runs the order lifecycle for an already-verified subject.
//
// UpdateOrder and DeleteOrder only require an authenticated caller; they do
// not check that the caller owns the order. Such writes are logged at WARN
// and flagged on the emitted event.
type OrderService struct {
	users     UserDirectory
	orders    OrderStore
	validator Validator
	events    *event.Bus
}

// NewOrderService wires the service. A nil validator means Permissive and a
// nil bus disables events.
func NewOrderService(users UserDirectory, orders OrderStore, v Validator, bus *event.Bus) *OrderService {
	if v == nil {
		v = Permissive{}
	}
	return &OrderService{users: users, orders: orders, validator: v, events: bus}
}

// Hello is an authenticated probe.
func (s *OrderService) Hello(ctx context.Context, subject string) (string, error) {
	if _, err := s.authorize(ctx, subject, rbac.AuthenticatedOnly, ""); err != nil {
		return "", err
	}
	return "Hello World", nil
}

// CreateOrder places a PENDING order owned by the caller.
func (s *OrderService) CreateOrder(ctx context.Context, subject string, quantity int, size models.PizzaSize) (*models.Order, error) {
	user, err := s.authorize(ctx, subject, rbac.AuthenticatedOnly, "")
	if err != nil {
		return nil, err
	}
	size = size.OrDefault()
	if err := s.validator.ValidateOrder(quantity, size); err != nil {
		return nil, err
	}

	o := &models.Order{
		Quantity:    quantity,
		PizzaSize:   size,
		OrderStatus: models.StatusPending,
		UserID:      user.ID,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	s.fire(ctx, EventOrderCreated, o, user)
	return o, nil
}

// ListAllOrders returns every order. Staff only.
func (s *OrderService) ListAllOrders(ctx context.Context, subject string) ([]models.Order, error) {
	if _, err := s.authorize(ctx, subject, rbac.StaffOnly, detailNotSuperuser); err != nil {
		return nil, err
	}
	return s.orders.All(ctx)
}

// GetOrderByID returns any order by id. Staff only.
func (s *OrderService) GetOrderByID(ctx context.Context, subject string, id uint) (*models.Order, error) {
	if _, err := s.authorize(ctx, subject, rbac.StaffOnly, detailNotAllowed); err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return o, nil
}

// ListOwnOrders returns the caller's orders.
func (s *OrderService) ListOwnOrders(ctx context.Context, subject string) ([]models.Order, error) {
	user, err := s.authorize(ctx, subject, rbac.AuthenticatedOnly, "")
	if err != nil {
		return nil, err
	}
	return s.orders.ByOwner(ctx, user.ID)
}

// GetOwnOrderByID returns one of the caller's orders. An id that is missing
// and an id owned by someone else fail identically.
func (s *OrderService) GetOwnOrderByID(ctx context.Context, subject string, id uint) (*models.Order, error) {
	user, err := s.authorize(ctx, subject, rbac.AuthenticatedOnly, "")
	if err != nil {
		return nil, err
	}
	own, err := s.orders.ByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for i := range own {
		if own[i].ID == id {
			return &own[i], nil
		}
	}
	return nil, newError(ErrBadRequest, detailNoSuchOrder)
}

// UpdateOrder overwrites quantity and pizza size. Any authenticated caller
// may update any order.
func (s *OrderService) UpdateOrder(ctx context.Context, subject string, id uint, quantity int, size models.PizzaSize) (*models.Order, error) {
	user, err := s.authorize(ctx, subject, rbac.AuthenticatedOnly, "")
	if err != nil {
		return nil, err
	}
	size = size.OrDefault()
	if err := s.validator.ValidateOrder(quantity, size); err != nil {
		return nil, err
	}

	o, err := s.orders.UpdateFields(ctx, id, quantity, size)
	if err != nil {
		return nil, storeError(err)
	}
	s.fire(ctx, EventOrderUpdated, o, user)
	return o, nil
}

// UpdateOrderStatus sets the status of any order to any value. Staff only.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, subject string, id uint, status models.OrderStatus) (*models.Order, error) {
	user, err := s.authorize(ctx, subject, rbac.StaffOnly, detailNotAllowed)
	if err != nil {
		return nil, err
	}
	status = status.OrDefault()
	if err := s.validator.ValidateStatus(status); err != nil {
		return nil, err
	}

	o, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, storeError(err)
	}
	s.fire(ctx, EventOrderStatusChanged, o, user)
	return o, nil
}

// DeleteOrder hard-deletes any order and returns it as it was. Any
// authenticated caller may delete any order.
func (s *OrderService) DeleteOrder(ctx context.Context, subject string, id uint) (*models.Order, error) {
	user, err := s.authorize(ctx, subject, rbac.AuthenticatedOnly, "")
	if err != nil {
		return nil, err
	}
	o, err := s.orders.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	s.fire(ctx, EventOrderDeleted, o, user)
	return o, nil
}

// authorize resolves subject and applies gate. forbidden is the detail used
// when the gate rejects a resolved user.
func (s *OrderService) authorize(ctx context.Context, subject string, gate rbac.Gate, forbidden string) (*models.User, error) {
	var principal rbac.Principal
	user, err := s.users.FindByUsername(ctx, subject)
	switch {
	case err == nil:
		principal = user
	case errors.Is(err, repositories.ErrUserNotFound):
	default:
		return nil, fmt.Errorf("resolve subject: %w", err)
	}

	err = rbac.Check(gate, principal)
	if err == nil {
		return user, nil
	}
	metrics.AuthorizationDenials.WithLabelValues(gate.String()).Inc()
	logger.WithCtx(ctx).Info("authorization denied", "gate", gate.String(), "subject", subject, "reason", err)
	if errors.Is(err, rbac.ErrForbidden) {
		return nil, newError(ErrForbidden, forbidden)
	}
	return nil, newError(ErrUnauthorized, detailInvalidToken)
}

func (s *OrderService) fire(ctx context.Context, name string, o *models.Order, actor *models.User) {
	foreign := !o.OwnedBy(actor)
	if foreign && name != EventOrderStatusChanged {
		logger.WithCtx(ctx).Warn("order mutated by non-owner",
			"event", name, "order_id", o.ID, "owner_id", o.UserID, "actor", actor.Username)
	}
	s.events.Fire(ctx, name, OrderEvent{Order: *o, Actor: actor.Username, Foreign: foreign})
}

func storeError(err error) error {
	if errors.Is(err, repositories.ErrOrderNotFound) {
		return newError(ErrNotFound, detailNotFound)
	}
	return err
}
