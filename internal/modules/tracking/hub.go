package tracking

import (
	"fmt"
	"sync"

	"bikerental/internal/domain"
)

// LocationEvent is one position report for a booking, pushed to every
// observer on that booking's channel.
type LocationEvent struct {
	Type      string          `json:"type"`
	BookingID int64           `json:"booking_id"`
	Location  domain.GeoPoint `json:"location"`
}

const EventLocationUpdate = "location_update"

// ChannelForBooking names the channel carrying one booking's updates.
func ChannelForBooking(bookingID int64) string {
	return fmt.Sprintf("booking-%d", bookingID)
}

// subscriberBuffer must absorb short consumer stalls; a subscriber that
// falls further behind is dropped rather than served a gappy stream.
const subscriberBuffer = 64

type Subscriber struct {
	channel string
	events  chan LocationEvent

	closeOnce sync.Once
}

// Events yields this subscriber's stream. The channel is closed when
// the subscriber is dropped or unsubscribed; no history is replayed.
func (s *Subscriber) Events() <-chan LocationEvent {
	return s.events
}

func (s *Subscriber) close() {
	s.closeOnce.Do(func() { close(s.events) })
}

// Hub fans location events out to channel subscribers. Within one
// channel delivery order matches publish order; a new subscriber sees
// only events published after it joined.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*Subscriber]struct{}),
	}
}

func (h *Hub) Subscribe(channel string) *Subscriber {
	sub := &Subscriber{
		channel: channel,
		events:  make(chan LocationEvent, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		h.channels[channel] = subs
	}
	subs[sub] = struct{}{}

	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

// Publish delivers ev to every current subscriber of the channel. The
// hub lock serializes publishes, so per-channel order is stable. A
// subscriber whose buffer is full is dropped outright: closing its
// stream is honest, silently skipping an event would not be.
func (h *Hub) Publish(channel string, ev LocationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.channels[channel] {
		select {
		case sub.events <- ev:
		default:
			h.remove(sub)
		}
	}
}

func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channel, subs := range h.channels {
		for sub := range subs {
			sub.close()
		}
		delete(h.channels, channel)
	}
}

// remove expects h.mu held for writing.
func (h *Hub) remove(sub *Subscriber) {
	subs, ok := h.channels[sub.channel]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.channels, sub.channel)
	}
	sub.close()
}
