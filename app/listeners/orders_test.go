package listeners_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shashiranjanraj/pizzeria/app/listeners"
	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/event"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	return m.Called(ctx, key, v).Error(0)
}

func payload(size models.PizzaSize, status models.OrderStatus) services.OrderEvent {
	return services.OrderEvent{
		Order: models.Order{ID: 7, Quantity: 1, PizzaSize: size, OrderStatus: status, UserID: 3},
		Actor: "alice",
	}
}

func TestCountersFollowEvents(t *testing.T) {
	bus := event.NewBus()
	listeners.Register(bus, nil)
	ctx := context.Background()

	created := testutil.ToFloat64(metrics.OrdersCreated.WithLabelValues("LARGE"))
	changed := testutil.ToFloat64(metrics.OrderStatusChanges.WithLabelValues("DELIVERED"))
	deleted := testutil.ToFloat64(metrics.OrdersDeleted)

	bus.Fire(ctx, services.EventOrderCreated, payload(models.SizeLarge, models.StatusPending))
	bus.Fire(ctx, services.EventOrderStatusChanged, payload(models.SizeLarge, models.StatusDelivered))
	bus.Fire(ctx, services.EventOrderUpdated, payload(models.SizeLarge, models.StatusDelivered))
	bus.Fire(ctx, services.EventOrderDeleted, payload(models.SizeLarge, models.StatusDelivered))

	assert.Equal(t, created+1, testutil.ToFloat64(metrics.OrdersCreated.WithLabelValues("LARGE")))
	assert.Equal(t, changed+1, testutil.ToFloat64(metrics.OrderStatusChanges.WithLabelValues("DELIVERED")))
	assert.Equal(t, deleted+1, testutil.ToFloat64(metrics.OrdersDeleted))
}

func TestEventsArePublished(t *testing.T) {
	bus := event.NewBus()
	pub := new(mockPublisher)
	listeners.Register(bus, pub)

	p := payload(models.SizeSmall, models.StatusPending)
	pub.On("PublishJSON", mock.Anything, services.EventOrderCreated, p).Return(nil).Once()
	pub.On("PublishJSON", mock.Anything, services.EventOrderDeleted, p).Return(errors.New("channel closed")).Once()

	assert.NotPanics(t, func() {
		bus.Fire(context.Background(), services.EventOrderCreated, p)
		bus.Fire(context.Background(), services.EventOrderDeleted, p)
	})
	pub.AssertExpectations(t)
}
