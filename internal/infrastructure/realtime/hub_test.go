package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToTopicSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(MessageTopic("room-1"), 4)
	defer sub.Close()

	other := hub.Subscribe(MessageTopic("room-2"), 4)
	defer other.Close()

	hub.Publish(Event{Kind: EventMessageInsert, Topic: MessageTopic("room-1"), Payload: "hello"})

	select {
	case event := <-sub.C:
		assert.Equal(t, EventMessageInsert, event.Kind)
		assert.Equal(t, "hello", event.Payload)
	case <-time.After(time.Second):
		t.Fatal("expected event on room-1 subscription")
	}

	select {
	case event := <-other.C:
		t.Fatalf("room-2 subscription received foreign event: %+v", event)
	default:
	}
}

func TestHubCloseReleasesSubscription(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(SupporterTopic, 1)

	require.Equal(t, 1, hub.SubscriberCount(SupporterTopic))
	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount(SupporterTopic))

	// Closing twice must not panic.
	sub.Close()

	_, open := <-sub.C
	assert.False(t, open)
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(MessageTopic("room-1"), 1)

	hub.Publish(Event{Kind: EventMessageInsert, Topic: MessageTopic("room-1")})
	hub.Publish(Event{Kind: EventMessageInsert, Topic: MessageTopic("room-1")}) // buffer full

	assert.Equal(t, 0, hub.SubscriberCount(MessageTopic("room-1")))

	// The buffered event is still readable, then the channel closes.
	<-sub.C
	_, open := <-sub.C
	assert.False(t, open)
}
