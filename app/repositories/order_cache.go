package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/cache"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

// CachedOrderRepository puts a Redis read-through cache in front of
// FindByID. Every write fences and evicts the order's key after it commits,
// so a lookup racing with the write cannot backfill the old row. List
// queries always go to the database. A ttl of zero or less disables the
// cache.
type CachedOrderRepository struct {
	*OrderRepository
	cache *cache.Store
	ttl   time.Duration
}

func NewCachedOrderRepository(repo *OrderRepository, store *cache.Store, ttl time.Duration) *CachedOrderRepository {
	return &CachedOrderRepository{OrderRepository: repo, cache: store, ttl: ttl}
}

func orderKey(id uint) string { return "order:" + strconv.FormatUint(uint64(id), 10) }

func orderFence(id uint) string { return orderKey(id) + ":fence" }

func (r *CachedOrderRepository) enabled() bool { return r.ttl > 0 && r.cache.Enabled() }

func (r *CachedOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	if !r.enabled() {
		return r.OrderRepository.FindByID(ctx, id)
	}

	var cached models.Order
	err := r.cache.Get(ctx, orderKey(id), &cached)
	if err == nil {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.WithCtx(ctx).Warn("order cache read failed", "order_id", id, "error", err)
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	var (
		o       *models.Order
		loadErr error
		loaded  bool
	)
	err = r.cache.Fill(ctx, orderKey(id), orderFence(id), r.ttl, func() (interface{}, error) {
		loaded = true
		o, loadErr = r.OrderRepository.FindByID(ctx, id)
		return o, loadErr
	})
	switch {
	case loadErr != nil:
		return nil, loadErr
	case !loaded:
		logger.WithCtx(ctx).Warn("order cache backfill skipped", "order_id", id, "error", err)
		return r.OrderRepository.FindByID(ctx, id)
	case errors.Is(err, cache.ErrFenced):
		logger.WithCtx(ctx).Debug("order cache backfill fenced", "order_id", id)
	case err != nil:
		logger.WithCtx(ctx).Warn("order cache backfill failed", "order_id", id, "error", err)
	}
	return o, nil
}

func (r *CachedOrderRepository) UpdateFields(ctx context.Context, id uint, quantity int, size models.PizzaSize) (*models.Order, error) {
	o, err := r.OrderRepository.UpdateFields(ctx, id, quantity, size)
	r.evict(ctx, id)
	return o, err
}

func (r *CachedOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	o, err := r.OrderRepository.UpdateStatus(ctx, id, status)
	r.evict(ctx, id)
	return o, err
}

func (r *CachedOrderRepository) Delete(ctx context.Context, id uint) (*models.Order, error) {
	o, err := r.OrderRepository.Delete(ctx, id)
	r.evict(ctx, id)
	return o, err
}

// evict runs after the write's transaction has committed.
func (r *CachedOrderRepository) evict(ctx context.Context, id uint) {
	if !r.enabled() {
		return
	}
	if err := r.cache.Invalidate(ctx, orderKey(id), orderFence(id)); err != nil {
		logger.WithCtx(ctx).Warn("order cache evict failed", "order_id", id, "error", err)
	}
}
