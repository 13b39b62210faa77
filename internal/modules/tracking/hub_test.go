package tracking

import (
	"testing"

	"bikerental/internal/domain"

	"github.com/stretchr/testify/assert"
)

func event(bookingID int64, lat float64) LocationEvent {
	return LocationEvent{
		Type:      EventLocationUpdate,
		BookingID: bookingID,
		Location:  domain.GeoPoint{Lat: lat, Lng: 77.2090},
	}
}

func TestHub_PublishDeliversInOrder(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe(ChannelForBooking(1))

	for i := 0; i < 5; i++ {
		hub.Publish(ChannelForBooking(1), event(1, float64(i)))
	}

	for i := 0; i < 5; i++ {
		ev := <-sub.Events()
		assert.Equal(t, float64(i), ev.Location.Lat)
	}
}

func TestHub_NoReplayForLateSubscriber(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Publish(ChannelForBooking(1), event(1, 1))
	hub.Publish(ChannelForBooking(1), event(1, 2))

	late := hub.Subscribe(ChannelForBooking(1))
	hub.Publish(ChannelForBooking(1), event(1, 3))

	ev := <-late.Events()
	assert.Equal(t, 3.0, ev.Location.Lat)
	assert.Len(t, late.Events(), 0)
}

func TestHub_ChannelsAreIsolated(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub1 := hub.Subscribe(ChannelForBooking(1))
	sub2 := hub.Subscribe(ChannelForBooking(2))

	hub.Publish(ChannelForBooking(1), event(1, 28.6))

	ev := <-sub1.Events()
	assert.Equal(t, int64(1), ev.BookingID)
	assert.Len(t, sub2.Events(), 0)
}

func TestHub_UnsubscribeClosesStream(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe(ChannelForBooking(1))
	assert.Equal(t, 1, hub.SubscriberCount(ChannelForBooking(1)))

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.SubscriberCount(ChannelForBooking(1)))

	_, open := <-sub.Events()
	assert.False(t, open)

	// publishing to an empty channel is a no-op
	hub.Publish(ChannelForBooking(1), event(1, 28.6))
}

func TestHub_SlowSubscriberIsDropped(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	sub := hub.Subscribe(ChannelForBooking(1))

	// one past the buffer with nobody draining
	for i := 0; i <= subscriberBuffer; i++ {
		hub.Publish(ChannelForBooking(1), event(1, float64(i)))
	}

	assert.Equal(t, 0, hub.SubscriberCount(ChannelForBooking(1)))

	// buffered events are still drained, then the stream ends
	n := 0
	for range sub.Events() {
		n++
	}
	assert.Equal(t, subscriberBuffer, n)
}

func TestHub_CloseClosesAllSubscribers(t *testing.T) {
	hub := NewHub()

	sub1 := hub.Subscribe(ChannelForBooking(1))
	sub2 := hub.Subscribe(ChannelForBooking(2))

	hub.Close()

	_, open := <-sub1.Events()
	assert.False(t, open)
	_, open = <-sub2.Events()
	assert.False(t, open)
}
