package services

import (
	"sort"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

// Validator checks order input before it reaches the store. Failures must
// be BadRequest errors.
type Validator interface {
	ValidateOrder(quantity int, size models.PizzaSize) error
	ValidateStatus(status models.OrderStatus) error
}

// NewValidator returns Strict for "strict" and Permissive otherwise.
func NewValidator(mode string) Validator {
	if mode == "strict" {
		return Strict{}
	}
	return Permissive{}
}

// Permissive accepts any input.
type Permissive struct{}

func (Permissive) ValidateOrder(int, models.PizzaSize) error { return nil }
func (Permissive) ValidateStatus(models.OrderStatus) error   { return nil }

// Strict requires a positive quantity and known enum values.
type Strict struct{}

type orderRules struct {
	Quantity  int              `json:"quantity"   validate:"min=1"`
	PizzaSize models.PizzaSize `json:"pizza_size" validate:"in=SMALL|MEDIUM|LARGE|EXTRA_LARGE"`
}

type statusRules struct {
	OrderStatus models.OrderStatus `json:"order_status" validate:"in=PENDING|IN_TRANSIT|DELIVERED"`
}

func (Strict) ValidateOrder(quantity int, size models.PizzaSize) error {
	return firstViolation(validate.Struct(orderRules{Quantity: quantity, PizzaSize: size}))
}

func (Strict) ValidateStatus(status models.OrderStatus) error {
	return firstViolation(validate.Struct(statusRules{OrderStatus: status}))
}

func firstViolation(errs map[string]string) error {
	if !validate.HasErrors(errs) {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return newError(ErrBadRequest, errs[fields[0]])
}
