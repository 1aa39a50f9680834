package events

import (
	"context"
	"sync"
	"time"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/sirupsen/logrus"
)

type EventType string

const (
	NotificationCreated EventType = "notification.created"
	OrderPlaced         EventType = "order.placed"
	OrderCompleted      EventType = "order.completed"
	InventoryChanged    EventType = "inventory.changed"
)

type Event struct {
	Type          EventType   `json:"type"`
	OccurredAt    time.Time   `json:"occurred_at"`
	CorrelationId string      `json:"correlation_id,omitempty"`
	Payload       interface{} `json:"payload"`
}

// Publisher is what producers depend on.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

const defaultSubscriberBuffer = 64

// Bus fans events out to subscribers. Publish never blocks: a subscriber whose
// buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	buffer int
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event), buffer: defaultSubscriberBuffer}
}

// Subscribe returns a channel of future events and a func that unsubscribes and closes it.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

func (b *Bus) Publish(ctx context.Context, ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			config.GetLogger().WithFields(logrus.Fields{
				"event_type":     ev.Type,
				"correlation_id": ev.CorrelationId,
			}).Warn("event dropped: subscriber buffer full")
		}
	}
}

func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel; later publishes are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
