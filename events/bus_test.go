package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestBus_FansOutToEverySubscriber(t *testing.T) {
	bus := NewBus()
	a, cancelA := bus.Subscribe()
	defer cancelA()
	b, cancelB := bus.Subscribe()
	defer cancelB()
	require.Equal(t, 2, bus.SubscriberCount())

	bus.Publish(context.Background(), Event{Type: OrderPlaced, CorrelationId: "c-1"})

	for _, ch := range []<-chan Event{a, b} {
		ev := receive(t, ch)
		assert.Equal(t, OrderPlaced, ev.Type)
		assert.Equal(t, "c-1", ev.CorrelationId)
		assert.False(t, ev.OccurredAt.IsZero())
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, bus.SubscriberCount())
	bus.Publish(context.Background(), Event{Type: OrderCompleted})
}

func TestBus_FullSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	bus.buffer = 1
	_, cancel := bus.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			bus.Publish(context.Background(), Event{Type: InventoryChanged})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestBus_CloseEndsSubscriptions(t *testing.T) {
	bus := NewBus()
	ch, _ := bus.Subscribe()
	bus.Close()
	_, ok := <-ch
	assert.False(t, ok)

	late, _ := bus.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}

type recordingSink struct {
	mu     sync.Mutex
	sent   []map[string]string
	bodies [][]byte
	fail   bool
	got    chan struct{}
}

func (s *recordingSink) Send(ctx context.Context, data []byte, attrs map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.got <- struct{}{} }()
	if s.fail {
		return errors.New("broker unavailable")
	}
	s.sent = append(s.sent, attrs)
	s.bodies = append(s.bodies, data)
	return nil
}

func TestForward_RelaysSelectedTypes(t *testing.T) {
	bus := NewBus()
	sink := &recordingSink{got: make(chan struct{}, 8)}
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		Forward(ctx, bus, sink, OrderPlaced)
		close(stopped)
	}()
	require.Eventually(t, func() bool { return bus.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	bus.Publish(ctx, Event{Type: InventoryChanged})
	bus.Publish(ctx, Event{Type: OrderPlaced, CorrelationId: "abc", Payload: map[string]int{"order_number": 7}})

	select {
	case <-sink.got:
	case <-time.After(time.Second):
		t.Fatal("event was not forwarded")
	}
	cancel()
	<-stopped

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.sent, 1)
	assert.Equal(t, "order.placed", sink.sent[0]["event_type"])
	assert.Equal(t, "abc", sink.sent[0]["correlation_id"])

	var decoded struct {
		Type    string         `json:"type"`
		Payload map[string]int `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(sink.bodies[0], &decoded))
	assert.Equal(t, 7, decoded.Payload["order_number"])
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestForward_SurvivesSinkErrors(t *testing.T) {
	bus := NewBus()
	sink := &recordingSink{got: make(chan struct{}, 8), fail: true}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Forward(ctx, bus, sink)
	require.Eventually(t, func() bool { return bus.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	bus.Publish(ctx, Event{Type: NotificationCreated})
	bus.Publish(ctx, Event{Type: NotificationCreated})
	for i := 0; i < 2; i++ {
		select {
		case <-sink.got:
		case <-time.After(time.Second):
			t.Fatal("forwarder stopped after a failed send")
		}
	}
}
