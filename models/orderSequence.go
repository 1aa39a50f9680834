package models

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const OrderSequenceKey = "goodland:order_number_seq"

// OrderSequence hands out order numbers. Two calls never return the same number.
type OrderSequence interface {
	Next(ctx context.Context) (int64, error)
}

// StoreOrderSequence delegates to the store's own counter.
type StoreOrderSequence struct {
	Store Store
}

func (s StoreOrderSequence) Next(ctx context.Context) (int64, error) {
	return s.Store.NextOrderNumber(ctx)
}

// RedisOrderSequence is a Redis INCR counter. The key is seeded with SETNX from
// the highest persisted order number before the first INCR, so concurrent
// instances agree on the starting point.
type RedisOrderSequence struct {
	rdb    *redis.Client
	store  Store
	key    string
	mu     sync.Mutex
	seeded bool
}

func NewRedisOrderSequence(rdb *redis.Client, store Store) *RedisOrderSequence {
	return &RedisOrderSequence{rdb: rdb, store: store, key: OrderSequenceKey}
}

func (s *RedisOrderSequence) seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seeded {
		return nil
	}
	max, err := s.store.MaxOrderNumber(ctx)
	if err != nil {
		return fmt.Errorf("seed order sequence: %w", err)
	}
	if err := s.rdb.SetNX(ctx, s.key, max, 0).Err(); err != nil {
		return fmt.Errorf("seed order sequence: %w", err)
	}
	s.seeded = true
	return nil
}

func (s *RedisOrderSequence) Next(ctx context.Context) (int64, error) {
	if err := s.seed(ctx); err != nil {
		return 0, err
	}
	n, err := s.rdb.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	if n != 1 {
		return n, nil
	}
	// 1 after seeding means either an empty history or a key lost since; the
	// latter must move past what is already persisted
	max, err := s.store.MaxOrderNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	if max == 0 {
		return n, nil
	}
	n, err = s.rdb.IncrBy(ctx, s.key, max).Result()
	if err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return n, nil
}
