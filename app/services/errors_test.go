package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizzeria/app/models"
)

func TestErrorUnwrapsToKind(t *testing.T) {
	err := newError(ErrBadRequest, "No order with such id")

	assert.ErrorIs(t, err, ErrBadRequest)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "bad request: No order with such id", err.Error())

	wrapped := fmt.Errorf("handler: %w", err)
	assert.ErrorIs(t, wrapped, ErrBadRequest)
	assert.Equal(t, "No order with such id", Detail(wrapped))
	assert.Equal(t, "", Detail(errors.New("plain")))
}

func TestStrictValidator(t *testing.T) {
	v := NewValidator("strict")

	assert.NoError(t, v.ValidateOrder(1, models.SizeMedium))
	assert.ErrorIs(t, v.ValidateOrder(0, models.SizeMedium), ErrBadRequest)
	assert.Equal(t, "The quantity must be at least 1.", Detail(v.ValidateOrder(0, models.SizeMedium)))
	assert.ErrorIs(t, v.ValidateOrder(2, "GIANT"), ErrBadRequest)
	assert.Equal(t, "The selected pizza_size is invalid.", Detail(v.ValidateOrder(0, "GIANT")))

	for _, s := range models.OrderStatuses {
		assert.NoError(t, v.ValidateStatus(s))
	}
	assert.ErrorIs(t, v.ValidateStatus("LOST"), ErrBadRequest)
}

func TestPermissiveValidator(t *testing.T) {
	v := NewValidator("")
	assert.IsType(t, Permissive{}, v)
	assert.NoError(t, v.ValidateOrder(-1, "GIANT"))
	assert.NoError(t, v.ValidateStatus("LOST"))
}
