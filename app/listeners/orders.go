// Package listeners subscribes side effects to order events: counters,
// an audit log line, and publication to the message broker.
package listeners

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/broker"
	"github.com/shashiranjanraj/pizzeria/pkg/event"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

// Publisher sends an event to an external broker. *broker.Dispatcher
// satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

var orderEvents = []string{
	services.EventOrderCreated,
	services.EventOrderUpdated,
	services.EventOrderStatusChanged,
	services.EventOrderDeleted,
}

// Register wires the listeners onto bus. pub may be nil when no broker is
// configured.
func Register(bus *event.Bus, pub Publisher) {
	bus.Listen(services.EventOrderCreated, countCreated)
	bus.Listen(services.EventOrderStatusChanged, countStatusChange)
	bus.Listen(services.EventOrderDeleted, countDeleted)

	for _, name := range orderEvents {
		bus.Listen(name, audit(name))
		if pub != nil {
			bus.Listen(name, publish(pub, name))
		}
	}
}

func countCreated(_ context.Context, payload interface{}) {
	if e, ok := payload.(services.OrderEvent); ok {
		metrics.OrdersCreated.WithLabelValues(string(e.Order.PizzaSize)).Inc()
	}
}

func countStatusChange(_ context.Context, payload interface{}) {
	if e, ok := payload.(services.OrderEvent); ok {
		metrics.OrderStatusChanges.WithLabelValues(string(e.Order.OrderStatus)).Inc()
	}
}

func countDeleted(context.Context, interface{}) {
	metrics.OrdersDeleted.Inc()
}

func audit(name string) event.Handler {
	return func(ctx context.Context, payload interface{}) {
		e, ok := payload.(services.OrderEvent)
		if !ok {
			return
		}
		logger.WithCtx(ctx).Info("order event",
			"event", name,
			"order_id", e.Order.ID,
			"owner_id", e.Order.UserID,
			"actor", e.Actor,
			"foreign", e.Foreign,
			"order_status", e.Order.OrderStatus,
		)
	}
}

// publish never fails the request; broker errors are logged.
func publish(pub Publisher, name string) event.Handler {
	return func(ctx context.Context, payload interface{}) {
		err := pub.PublishJSON(context.WithoutCancel(ctx), name, payload)
		switch {
		case err == nil:
		case errors.Is(err, broker.ErrBacklogFull):
			logger.WithCtx(ctx).Warn("order event dropped", "event", name, "error", err)
		default:
			logger.WithCtx(ctx).Error("order event publish failed", "event", name, "error", err)
		}
	}
}
