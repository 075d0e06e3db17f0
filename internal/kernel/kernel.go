// Package kernel wires configuration, storage and services into a running
// application. Commands build one Kernel and ask it for what they need.
package kernel

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/listeners"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/broker"
	"github.com/shashiranjanraj/pizzeria/pkg/cache"
	"github.com/shashiranjanraj/pizzeria/pkg/database"
	"github.com/shashiranjanraj/pizzeria/pkg/event"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
)

const (
	publishWorkers = 4
	publishBacklog = 256
)

type Kernel struct {
	DB     *gorm.DB
	Cache  *cache.Store
	Bus    *event.Bus
	Tokens *auth.JWT

	Users  *repositories.UserRepository
	Orders *services.OrderService
	Auth   *services.AuthService

	closers []func() error
}

// New wires services over an open database. store may be a disabled
// cache and pub may be nil.
func New(db *gorm.DB, store *cache.Store, pub listeners.Publisher) *Kernel {
	bus := event.NewBus()
	listeners.Register(bus, pub)

	tokens := auth.NewJWT(config.JWTSecret())
	users := repositories.NewUserRepository(db)
	orders := repositories.NewCachedOrderRepository(repositories.NewOrderRepository(db), store, config.CacheTTL())

	return &Kernel{
		DB:     db,
		Cache:  store,
		Bus:    bus,
		Tokens: tokens,
		Users:  users,
		Orders: services.NewOrderService(users, orders, services.NewValidator(config.OrderValidation()), bus),
		Auth:   services.NewAuthService(users, tokens),
	}
}

// Boot loads config and connects to every configured backend. Only the
// database is required; Redis, RabbitMQ and the Mongo log sink are skipped
// with a warning when unreachable.
func Boot(ctx context.Context) (*Kernel, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	flushLogs, err := logger.Setup(config.AppEnv(), config.LogMongoURI())
	if err != nil {
		logger.Warn("mongo log sink disabled", "error", err)
	}

	db, err := database.Connect(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		flushLogs()
		return nil, err
	}
	logger.Info("database connected", "driver", config.DatabaseDriver())

	store, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("order cache disabled", "error", err)
	}

	var pub listeners.Publisher
	var closePub []func() error
	if url := config.AMQPURL(); url != "" {
		p, err := broker.Dial(url, config.AMQPExchange())
		if err != nil {
			logger.Warn("event publishing disabled", "error", err)
		} else {
			d := broker.NewDispatcher(p, publishWorkers, publishBacklog)
			pub, closePub = d, []func() error{d.Close, p.Close}
			logger.Info("publishing order events", "exchange", config.AMQPExchange())
		}
	}

	k := New(db, store, pub)
	k.closers = append(k.closers, closePub...)
	k.closers = append(k.closers, store.Close, func() error { return database.Close(db) }, func() error {
		flushLogs()
		return nil
	})
	return k, nil
}

// Close releases backends in registration order, so queued events are
// published before the broker connection, cache and database go away.
func (k *Kernel) Close() {
	for _, c := range k.closers {
		if err := c(); err != nil {
			logger.Warn("shutdown: close failed", "error", err)
		}
	}
	k.closers = nil
}
