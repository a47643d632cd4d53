package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierDeliversInOrder(t *testing.T) {
	n := NewChangeNotifier()
	ch, cancel := n.Subscribe()
	defer cancel()

	n.Publish(RoomEvent{Kind: RoomCreated, HotelID: 1, RoomID: 7})
	n.Publish(RoomEvent{Kind: RoomUpdated, HotelID: 1, RoomID: 7})
	n.Publish(RoomEvent{Kind: RoomDeleted, HotelID: 1, RoomID: 7})

	kinds := []RoomEventKind{(<-ch).Kind, (<-ch).Kind, (<-ch).Kind}
	assert.Equal(t, []RoomEventKind{RoomCreated, RoomUpdated, RoomDeleted}, kinds)
}

func TestNotifierLateSubscriberMissesEarlierEvents(t *testing.T) {
	n := NewChangeNotifier()

	n.Publish(RoomEvent{Kind: RoomCreated, HotelID: 1, RoomID: 1})

	ch, cancel := n.Subscribe()
	defer cancel()
	n.Publish(RoomEvent{Kind: RoomUpdated, HotelID: 1, RoomID: 1})

	ev := <-ch
	assert.Equal(t, RoomUpdated, ev.Kind)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected replayed event %v", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestNotifierDropsWhenSubscriberFull(t *testing.T) {
	n := NewChangeNotifier()
	ch, cancel := n.Subscribe()
	defer cancel()

	// one more than the buffer; the overflow is dropped, not blocked on
	for i := 0; i < subscriberBuffer+1; i++ {
		n.Publish(RoomEvent{Kind: RoomUpdated, HotelID: 1, RoomID: uint(i)})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Equal(t, subscriberBuffer, received)
			return
		}
	}
}

func TestNotifierCancelClosesChannel(t *testing.T) {
	n := NewChangeNotifier()
	ch, cancel := n.Subscribe()
	require.Equal(t, 1, n.SubscriberCount())

	cancel()
	assert.Equal(t, 0, n.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// cancelling twice is harmless
	cancel()
}

func TestNotifierPublishWithoutSubscribers(t *testing.T) {
	n := NewChangeNotifier()
	// must not panic or block
	n.Publish(RoomEvent{Kind: RoomDeleted, HotelID: 3, RoomID: 9})
	assert.Equal(t, 0, n.SubscriberCount())
}
