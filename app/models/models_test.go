package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/app/models"
)

func TestPizzaSize(t *testing.T) {
	assert.True(t, models.SizeExtraLarge.Valid())
	assert.False(t, models.PizzaSize("HUGE").Valid())
	assert.Equal(t, models.SizeSmall, models.PizzaSize("").OrDefault())
	assert.Equal(t, models.SizeLarge, models.SizeLarge.OrDefault())
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, models.StatusInTransit.Valid())
	assert.False(t, models.OrderStatus("LOST").Valid())
	assert.Equal(t, models.StatusPending, models.OrderStatus("").OrDefault())
}

func TestOrderJSONShape(t *testing.T) {
	o := models.Order{ID: 3, Quantity: 2, PizzaSize: models.SizeMedium, OrderStatus: models.StatusPending, UserID: 9}
	b, err := json.Marshal(o)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, float64(3), got["id"])
	assert.Equal(t, float64(2), got["quantity"])
	assert.Equal(t, "MEDIUM", got["pizza_size"])
	assert.Equal(t, "PENDING", got["order_status"])
	assert.NotContains(t, got, "User")
}

func TestUserNeverSerialisesPassword(t *testing.T) {
	b, err := json.Marshal(models.User{Username: "alice", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
}

func TestOwnershipAndStaff(t *testing.T) {
	alice := &models.User{ID: 1}
	bob := &models.User{ID: 2, IsStaff: true}
	o := &models.Order{UserID: 1}

	assert.True(t, o.OwnedBy(alice))
	assert.False(t, o.OwnedBy(bob))
	assert.False(t, alice.Staff())
	assert.True(t, bob.Staff())

	var nobody *models.User
	assert.False(t, nobody.Staff())
}
