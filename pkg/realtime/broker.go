package realtime

import (
	"sync"
)

// subscriberBuffer is how many undelivered events a subscriber may lag behind
// before further events are dropped for it. Publishing never blocks on a slow
// subscriber.
const subscriberBuffer = 16

func NewBroker() *Broker {
	return &Broker{
		rooms: make(map[uint]map[uint]chan Event),
	}
}

// Event is a single realtime message published to a room.
type Event struct {
	Type    string
	Payload any
}

// Broker fans events out to rooms, one room per event id. Membership only
// lives in memory, a subscriber absent at publish time never receives the
// event.
type Broker struct {
	lock   sync.Mutex
	rooms  map[uint]map[uint]chan Event
	nextID uint
}

// Join adds a subscriber to the room and returns its id along with the
// channel events will arrive on. The channel is never closed by the broker,
// callers stop reading when they leave.
func (b *Broker) Join(roomID uint) (uint, <-chan Event) {
	b.lock.Lock()
	defer b.lock.Unlock()

	room, ok := b.rooms[roomID]
	if !ok {
		room = make(map[uint]chan Event)
		b.rooms[roomID] = room
	}

	b.nextID++
	channel := make(chan Event, subscriberBuffer)
	room[b.nextID] = channel

	return b.nextID, channel
}

// Leave removes a subscriber from the room. Leaving a room one is not in is a
// no-op.
func (b *Broker) Leave(roomID uint, subscriberID uint) {
	b.lock.Lock()
	defer b.lock.Unlock()

	room, ok := b.rooms[roomID]
	if !ok {
		return
	}

	delete(room, subscriberID)
	if len(room) == 0 {
		delete(b.rooms, roomID)
	}
}

// Publish delivers the event to every current member of the room. Delivery is
// fire and forget, a subscriber whose buffer is full misses the event and
// publishing to an empty room is not an error.
func (b *Broker) Publish(roomID uint, event Event) {
	b.lock.Lock()
	subscribers := make([]chan Event, 0, len(b.rooms[roomID]))
	for _, channel := range b.rooms[roomID] {
		subscribers = append(subscribers, channel)
	}
	b.lock.Unlock()

	for _, channel := range subscribers {
		select {
		case channel <- event:
		default:
		}
	}
}

// Subscribers returns the number of current members of the room.
func (b *Broker) Subscribers(roomID uint) int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.rooms[roomID])
}
