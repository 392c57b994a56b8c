package realtime

import (
	"sync"

	"neohand/pkg/logger"
)

// Event kinds pushed through the hub.
const (
	EventMessageInsert   = "message.insert"
	EventSupporterChange = "supporter.change"
)

// Event is one change-feed notification. Payload is the affected entity.
type Event struct {
	Kind    string
	Topic   string
	Payload interface{}
}

// MessageTopic names the per-room message feed.
func MessageTopic(roomID string) string {
	return "messages:" + roomID
}

// AllMessagesTopic carries every message insert regardless of room; the
// dashboard listens here to keep its session list and unread flags current.
const AllMessagesTopic = "messages"

// SupporterTopic is the unscoped roster feed: any supporter mutation lands
// here.
const SupporterTopic = "supporters"

// Subscription is one listener on a topic. Events arrive on C until Close is
// called; after that the channel is closed and no more events are delivered.
type Subscription struct {
	C chan Event

	hub   *Hub
	topic string
	once  sync.Once
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Hub fans change events out to subscribers. Delivery is non-blocking: a
// subscriber that cannot keep up is dropped and unregistered rather than
// stalling the publisher, the same policy the socket layer applies to slow
// clients.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe registers a listener on topic. The returned subscription must be
// closed when the consumer is torn down, or stale listeners accumulate.
func (h *Hub) Subscribe(topic string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 16
	}
	sub := &Subscription{
		C:     make(chan Event, buffer),
		hub:   h,
		topic: topic,
	}

	h.mu.Lock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if subs, ok := h.topics[sub.topic]; ok {
		if _, registered := subs[sub]; registered {
			delete(subs, sub)
			close(sub.C)
		}
		if len(subs) == 0 {
			delete(h.topics, sub.topic)
		}
	}
	h.mu.Unlock()
}

// Publish delivers the event to every subscriber of its topic. Subscribers
// with a full buffer are dropped.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	subs := h.topics[event.Topic]
	dropped := make([]*Subscription, 0)
	for sub := range subs {
		select {
		case sub.C <- event:
		default:
			dropped = append(dropped, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range dropped {
		logger.Warn("dropping slow subscriber on topic %s", event.Topic)
		sub.Close()
	}
}

// SubscriberCount reports how many listeners a topic currently has.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
