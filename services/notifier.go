package services

import (
	"sync"

	"hotel-booking-backend/models"
)

type RoomEventKind string

const (
	RoomCreated RoomEventKind = "room.created"
	RoomUpdated RoomEventKind = "room.updated"
	RoomDeleted RoomEventKind = "room.deleted"
)

// RoomEvent describes an inventory mutation. Room is nil for deletions;
// RoomID and HotelID are always set.
type RoomEvent struct {
	Kind    RoomEventKind `json:"kind"`
	HotelID uint          `json:"hotelId"`
	RoomID  uint          `json:"roomId"`
	Room    *models.Room  `json:"room,omitempty"`
}

// ChangeNotifier fans inventory events out to connected subscribers.
// Delivery is fire-and-forget and at-most-once: there is no
// persistence, no replay, and a subscriber whose buffer is full loses
// the event rather than stalling the mutation that produced it.
// Events for the same room keep emission order because Publish sends
// under one lock. The notifier is a constructed dependency, handed to
// whatever triggers mutations, never ambient state.
type ChangeNotifier struct {
	mu     sync.Mutex
	subs   map[uint64]chan RoomEvent
	nextID uint64
}

const subscriberBuffer = 16

func NewChangeNotifier() *ChangeNotifier {
	return &ChangeNotifier{subs: make(map[uint64]chan RoomEvent)}
}

// Subscribe registers a listener. The returned cancel func must be
// called when the listener goes away; it closes the channel.
func (n *ChangeNotifier) Subscribe() (<-chan RoomEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan RoomEvent, subscriberBuffer)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if c, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber connected right now. It never
// blocks: a slow subscriber drops the event.
func (n *ChangeNotifier) Publish(ev RoomEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount is used by tests and the health endpoint.
func (n *ChangeNotifier) SubscriberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
