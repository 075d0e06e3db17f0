package services

import "github.com/shashiranjanraj/pizzeria/app/models"

// Events fired on the bus after a successful write.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent is the payload of every order event.
type OrderEvent struct {
	Order models.Order `json:"order"`
	Actor string       `json:"actor"`
	// Foreign is set when Actor does not own the order.
	Foreign bool `json:"foreign"`
}
