// Package cache is a small JSON-over-Redis store. A Store without a client
// is valid and behaves as a permanent miss, so callers need no nil checks
// when Redis is not configured or unreachable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrMiss is returned by Get when the key is absent.
	ErrMiss = errors.New("cache: miss")
	// ErrFenced is returned by Fill when a writer invalidated the key while
	// the value was loading. Nothing was stored.
	ErrFenced = errors.New("cache: fenced by concurrent write")
)

// fenceTTL only has to outlive a single in-flight Fill.
const fenceTTL = time.Minute

type Store struct {
	rdb *redis.Client
}

// New wraps an existing client. rdb may be nil.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Connect dials Redis and pings it. On failure it returns a disabled Store
// together with the error so the caller can decide to carry on without it.
func Connect(ctx context.Context, addr, password string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return New(nil), fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb), nil
}

// Enabled reports whether a Redis client is attached.
func (s *Store) Enabled() bool { return s != nil && s.rdb != nil }

// Get unmarshals the value at key into dest.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) error {
	if !s.Enabled() {
		return ErrMiss
	}
	val, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

// Set stores value under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

// Del removes keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// Fill loads a value and stores it at key, unless fence is written between
// the start of load and the store. Writers call Invalidate with the same
// fence after committing, so a reader that loaded a row before the write
// can never put it back into the cache afterwards.
//
// An error from load is returned unchanged. load is not called when Redis
// cannot start the watch; that error is returned and callers should read
// the source directly.
func (s *Store) Fill(ctx context.Context, key, fence string, ttl time.Duration, load func() (interface{}, error)) error {
	if !s.Enabled() {
		_, err := load()
		return err
	}
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		value, err := load()
		if err != nil {
			return err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, fence)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrFenced
	}
	return err
}

// Invalidate writes fence and removes key in one round trip, aborting any
// Fill of key that is still loading.
func (s *Store) Invalidate(ctx context.Context, key, fence string) error {
	if !s.Enabled() {
		return nil
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, fence)
		pipe.Expire(ctx, fence, fenceTTL)
		pipe.Del(ctx, key)
		return nil
	})
	return err
}

func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Close()
}
