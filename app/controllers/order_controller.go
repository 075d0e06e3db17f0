package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/bind"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

// Quantity is a pointer so an absent or null quantity is rejected rather
// than read as zero.
type orderInput struct {
	Quantity  *int             `json:"quantity" validate:"required"`
	PizzaSize models.PizzaSize `json:"pizza_size"`
}

type statusInput struct {
	OrderStatus models.OrderStatus `json:"order_status"`
}

// OrderController serves the /orders routes. Every handler expects
// middleware.Authenticate to have run.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

func (c *OrderController) Hello(w http.ResponseWriter, r *http.Request) {
	subject, ok := c.subject(w, r)
	if !ok {
		return
	}
	msg, err := c.service.Hello(r.Context(), subject)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": msg})
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := c.subject(w, r)
	if !ok {
		return
	}
	var in orderInput
	if !decode(w, r, &in) {
		return
	}
	o, err := c.service.CreateOrder(r.Context(), subject, *in.Quantity, in.PizzaSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Created(w, o)
}

func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	subject, ok := c.subject(w, r)
	if !ok {
		return
	}
	orders, err := c.service.ListAllOrders(r.Context(), subject)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	subject, id, ok := c.subjectAndID(w, r)
	if !ok {
		return
	}
	o, err := c.service.GetOrderByID(r.Context(), subject, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, o)
}

func (c *OrderController) ListOwn(w http.ResponseWriter, r *http.Request) {
	subject, ok := c.subject(w, r)
	if !ok {
		return
	}
	orders, err := c.service.ListOwnOrders(r.Context(), subject)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) ShowOwn(w http.ResponseWriter, r *http.Request) {
	subject, id, ok := c.subjectAndID(w, r)
	if !ok {
		return
	}
	o, err := c.service.GetOwnOrderByID(r.Context(), subject, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, o)
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	subject, id, ok := c.subjectAndID(w, r)
	if !ok {
		return
	}
	var in orderInput
	if !decode(w, r, &in) {
		return
	}
	o, err := c.service.UpdateOrder(r.Context(), subject, id, *in.Quantity, in.PizzaSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, o)
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	subject, id, ok := c.subjectAndID(w, r)
	if !ok {
		return
	}
	var in statusInput
	if !decode(w, r, &in) {
		return
	}
	o, err := c.service.UpdateOrderStatus(r.Context(), subject, id, in.OrderStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, o)
}

// Delete answers 204 with no body; the removed order is only logged.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	subject, id, ok := c.subjectAndID(w, r)
	if !ok {
		return
	}
	o, err := c.service.DeleteOrder(r.Context(), subject, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	logger.WithCtx(r.Context()).Info("order deleted",
		"order_id", o.ID, "owner_id", o.UserID, "quantity", o.Quantity,
		"pizza_size", o.PizzaSize, "order_status", o.OrderStatus)
	response.NoContent(w)
}

func (c *OrderController) subject(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := middleware.SubjectFromCtx(r)
	if !ok {
		response.Unauthorized(w, "Invalid Token")
	}
	return subject, ok
}

func (c *OrderController) subjectAndID(w http.ResponseWriter, r *http.Request) (string, uint, bool) {
	subject, ok := c.subject(w, r)
	if !ok {
		return "", 0, false
	}
	id, ok := orderID(r)
	if !ok {
		response.BadRequest(w, "Invalid order id")
		return "", 0, false
	}
	return subject, id, true
}

func decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	err := bind.JSON(w, r, dest)
	if err == nil {
		return true
	}
	var bindErr *bind.Error
	if !errors.As(err, &bindErr) {
		writeError(w, r, err)
		return false
	}
	if bindErr.Fields != nil {
		response.ValidationError(w, bindErr.Fields)
		return false
	}
	response.Error(w, bindErr.Status, bindErr.Detail)
	return false
}
