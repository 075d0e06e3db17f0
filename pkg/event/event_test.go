package event_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/pizzeria/pkg/event"
)

func TestFireInOrder(t *testing.T) {
	bus := event.NewBus()
	var got []string
	bus.Listen("order.created", func(_ context.Context, p interface{}) { got = append(got, "a:"+p.(string)) })
	bus.Listen("order.created", func(_ context.Context, p interface{}) { got = append(got, "b:"+p.(string)) })
	bus.Listen("order.deleted", func(context.Context, interface{}) { got = append(got, "wrong") })

	bus.Fire(context.Background(), "order.created", "1")

	assert.Equal(t, []string{"a:1", "b:1"}, got)
}

func TestNilAndZeroBus(t *testing.T) {
	var nilBus *event.Bus
	assert.NotPanics(t, func() { nilBus.Fire(context.Background(), "x", nil) })

	var zero event.Bus
	called := false
	zero.Listen("x", func(context.Context, interface{}) { called = true })
	zero.Fire(context.Background(), "x", nil)
	assert.True(t, called)

	zero.Flush()
	called = false
	zero.Fire(context.Background(), "x", nil)
	assert.False(t, called)
}
