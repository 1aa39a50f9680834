package workflow

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/bsm/redislock"
	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/sirupsen/logrus"
)

// ItemLocker serializes writes to one inventory item's stock counters.
type ItemLocker interface {
	Lock(ctx context.Context, itemID string) (unlock func(), err error)
}

const lockStripes = 64

// LocalItemLocker is a striped in-process lock. Two items may share a stripe,
// which only costs some parallelism.
type LocalItemLocker struct {
	stripes [lockStripes]chan struct{}
}

func NewLocalItemLocker() *LocalItemLocker {
	l := &LocalItemLocker{}
	for i := range l.stripes {
		l.stripes[i] = make(chan struct{}, 1)
	}
	return l
}

func (l *LocalItemLocker) stripe(itemID string) chan struct{} {
	h := fnv.New32a()
	_, _ = h.Write([]byte(itemID))
	return l.stripes[h.Sum32()%lockStripes]
}

func (l *LocalItemLocker) Lock(ctx context.Context, itemID string) (func(), error) {
	ch := l.stripe(itemID)
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("lock inventory item %s: %w", itemID, ctx.Err())
	}
}

// RedisItemLocker adds a redislock lease on top of the local lock so several
// server instances serialize on the same item.
type RedisItemLocker struct {
	local  *LocalItemLocker
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

func NewRedisItemLocker(client *redislock.Client) *RedisItemLocker {
	return &RedisItemLocker{
		local:  NewLocalItemLocker(),
		client: client,
		ttl:    30 * time.Second,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 100),
	}
}

func inventoryLockKey(itemID string) string {
	return "lock:inventory:" + itemID
}

func (l *RedisItemLocker) Lock(ctx context.Context, itemID string) (func(), error) {
	unlockLocal, err := l.local.Lock(ctx, itemID)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger()
	if l.client == nil {
		logger.WithField("inventory_item_id", itemID).Warn("redis lock not ready; proceeding with local lock only")
		return unlockLocal, nil
	}

	lock, err := l.client.Obtain(ctx, inventoryLockKey(itemID), l.ttl, &redislock.Options{RetryStrategy: l.retry})
	if err != nil {
		unlockLocal()
		if ctx.Err() != nil {
			return nil, fmt.Errorf("lock inventory item %s: %w", itemID, ctx.Err())
		}
		logger.WithFields(logrus.Fields{
			"inventory_item_id": itemID,
			"error":             err.Error(),
		}).Warn("could not obtain redis lock")
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("lock inventory item %s: %w", itemID, models.ErrItemBusy)
		}
		return nil, fmt.Errorf("lock inventory item %s: %w", itemID, err)
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			config.LogError(logger, "workflow", "RedisItemLocker.Lock", "release", itemID, err)
		}
		unlockLocal()
	}, nil
}
