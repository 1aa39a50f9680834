package events

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/goodlandcafe/pos_backend/config"
	"github.com/sirupsen/logrus"
)

// MessageSink delivers an encoded event outside the process.
type MessageSink interface {
	Send(ctx context.Context, data []byte, attrs map[string]string) error
}

// PubSubSink publishes to a Google Cloud Pub/Sub topic.
type PubSubSink struct {
	topic *pubsub.Topic
}

func NewPubSubSink(topic *pubsub.Topic) *PubSubSink {
	return &PubSubSink{topic: topic}
}

func (s *PubSubSink) Send(ctx context.Context, data []byte, attrs map[string]string) error {
	res := s.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs})
	_, err := res.Get(ctx)
	return err
}

func (s *PubSubSink) Stop() {
	s.topic.Stop()
}

// Forward relays events of the given types from the bus to sink until ctx is
// done. Delivery failures are logged and the event is dropped.
func Forward(ctx context.Context, bus *Bus, sink MessageSink, types ...EventType) {
	want := make(map[EventType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	logger := config.GetLogger()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if len(want) > 0 && !want[ev.Type] {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				config.LogError(logger, "events", "Forward", "marshal", ev.Type, err)
				continue
			}
			sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			err = sink.Send(sendCtx, data, map[string]string{
				"event_type":     string(ev.Type),
				"correlation_id": ev.CorrelationId,
			})
			cancel()
			if err != nil {
				config.LogError(logger, "events", "Forward", "send", ev.Type, err)
				continue
			}
			logger.WithFields(logrus.Fields{"event_type": ev.Type}).Debug("event forwarded")
		}
	}
}
