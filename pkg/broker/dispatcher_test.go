package broker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/broker"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

type senderFunc func(ctx context.Context, key string, v any) error

func (f senderFunc) PublishJSON(ctx context.Context, key string, v any) error { return f(ctx, key, v) }

func TestDispatcherDeliversEverythingBeforeClose(t *testing.T) {
	var n atomic.Int64
	d := broker.NewDispatcher(senderFunc(func(ctx context.Context, _ string, _ any) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		n.Add(1)
		return nil
	}), 4, 200)

	for i := 0; i < 100; i++ {
		require.NoError(t, d.PublishJSON(context.Background(), "order.created", i))
	}
	require.NoError(t, d.Close())
	assert.Equal(t, int64(100), n.Load())

	assert.ErrorIs(t, d.PublishJSON(context.Background(), "order.created", 0), broker.ErrClosed)
	assert.NoError(t, d.Close())
}

func TestDispatcherDropsWhenBacklogFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	d := broker.NewDispatcher(senderFunc(func(context.Context, string, any) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}), 1, 1)

	require.NoError(t, d.PublishJSON(context.Background(), "order.deleted", 1))
	<-started
	require.NoError(t, d.PublishJSON(context.Background(), "order.deleted", 2))

	before := testutil.ToFloat64(metrics.EventsDropped.WithLabelValues("order.deleted"))
	err := d.PublishJSON(context.Background(), "order.deleted", 3)
	assert.ErrorIs(t, err, broker.ErrBacklogFull)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EventsDropped.WithLabelValues("order.deleted")))

	close(release)
	require.NoError(t, d.Close())
}

func TestDispatcherSurvivesSenderFailures(t *testing.T) {
	var calls atomic.Int64
	d := broker.NewDispatcher(senderFunc(func(_ context.Context, key string, _ any) error {
		calls.Add(1)
		if key == "boom" {
			panic("channel gone")
		}
		return errors.New("nack")
	}), 1, 4)

	require.NoError(t, d.PublishJSON(context.Background(), "boom", nil))
	require.NoError(t, d.PublishJSON(context.Background(), "order.updated", nil))
	require.NoError(t, d.Close())
	assert.Equal(t, int64(2), calls.Load())
}
