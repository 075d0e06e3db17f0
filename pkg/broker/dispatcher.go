package broker

import (
	"context"
	"errors"
	"sync"

	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

var (
	// ErrBacklogFull is returned when every worker is busy and the backlog is
	// at capacity. The message is dropped.
	ErrBacklogFull = errors.New("broker: backlog full")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("broker: dispatcher closed")
)

// Sender is the synchronous side of a Dispatcher. *Publisher satisfies it.
type Sender interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

type message struct {
	key string
	v   any
}

// Dispatcher publishes on a fixed number of background workers so request
// handlers never wait on the broker. PublishJSON never blocks.
type Dispatcher struct {
	sender Sender

	mu     sync.RWMutex
	closed bool
	queue  chan message
	wg     sync.WaitGroup
}

// NewDispatcher starts workers goroutines draining a backlog of the given
// size.
func NewDispatcher(sender Sender, workers, backlog int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if backlog < workers {
		backlog = workers
	}
	d := &Dispatcher{sender: sender, queue: make(chan message, backlog)}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	return d
}

// PublishJSON enqueues v. ctx is not used for the publish itself, which
// gets its own bounded context on the worker.
func (d *Dispatcher) PublishJSON(_ context.Context, routingKey string, v any) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.queue <- message{key: routingKey, v: v}:
		return nil
	default:
		metrics.EventsDropped.WithLabelValues(routingKey).Inc()
		return ErrBacklogFull
	}
}

// Close stops accepting messages and waits until the backlog is drained.
// It is safe to call more than once.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
	return nil
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for m := range d.queue {
		d.send(m)
	}
}

func (d *Dispatcher) send(m message) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("broker: publish panicked", "routing_key", m.key, "panic", r)
		}
	}()

	ctx, cancel := WithTimeout(context.Background())
	defer cancel()
	if err := d.sender.PublishJSON(ctx, m.key, m.v); err != nil {
		metrics.EventsDropped.WithLabelValues(m.key).Inc()
		logger.Error("broker: publish failed", "routing_key", m.key, "error", err)
	}
}
