package models

import "time"

// PizzaSize is the size of every pizza in an order.
type PizzaSize string

const (
	SizeSmall      PizzaSize = "SMALL"
	SizeMedium     PizzaSize = "MEDIUM"
	SizeLarge      PizzaSize = "LARGE"
	SizeExtraLarge PizzaSize = "EXTRA_LARGE"
)

// PizzaSizes lists the known sizes in menu order.
var PizzaSizes = []PizzaSize{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge}

func (s PizzaSize) Valid() bool {
	for _, known := range PizzaSizes {
		if s == known {
			return true
		}
	}
	return false
}

// OrDefault returns SMALL for an empty size.
func (s PizzaSize) OrDefault() PizzaSize {
	if s == "" {
		return SizeSmall
	}
	return s
}

// OrderStatus is where an order is in delivery. The intended flow is
// PENDING → IN_TRANSIT → DELIVERED, but staff may set any status at any time.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusInTransit OrderStatus = "IN_TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
)

var OrderStatuses = []OrderStatus{StatusPending, StatusInTransit, StatusDelivered}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrDefault returns PENDING for an empty status.
func (s OrderStatus) OrDefault() OrderStatus {
	if s == "" {
		return StatusPending
	}
	return s
}

// Order is a pizza order. UserID is fixed at creation. Orders are hard
// deleted and ids are never reused.
type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	PizzaSize   PizzaSize   `gorm:"size:20;not null;default:'SMALL'" json:"pizza_size"`
	OrderStatus OrderStatus `gorm:"size:20;not null;default:'PENDING'" json:"order_status"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        *User       `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OwnedBy reports whether u placed the order.
func (o *Order) OwnedBy(u *User) bool {
	return o != nil && u != nil && o.UserID == u.ID
}
