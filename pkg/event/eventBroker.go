package event

import (
	"sync"

	"github.com/cuff-app/cuff/pkg/model"
	"github.com/google/uuid"
)

// PostCreated is the type of the event published whenever an admin creates a post.
const PostCreated = "post-created"

// subscriberBuffer is how many events a slow subscriber may lag behind before events are dropped
// for it.
const subscriberBuffer = 8

func NewEventBroker() *Broker {
	return &Broker{
		subscribers: make(map[string]subscriber),
	}
}

type Event struct {
	Type string
	Post model.Event
}

// Filter decides whether a subscriber gets to see an event.
type Filter func(Event) bool

type subscriber struct {
	filter  Filter
	channel chan Event
}

// Broker fans out published events to every subscriber whose filter accepts them.
type Broker struct {
	subscribers map[string]subscriber
	lock        sync.Mutex
}

// Subscribe registers a subscriber and returns its id and the channel events are delivered on. A nil
// filter accepts every event.
func (b *Broker) Subscribe(filter Filter) (string, <-chan Event) {
	b.lock.Lock()
	defer b.lock.Unlock()

	id := uuid.NewString()
	channel := make(chan Event, subscriberBuffer)
	b.subscribers[id] = subscriber{filter: filter, channel: channel}
	return id, channel
}

// Unsubscribe removes the subscriber and closes its channel. Unknown ids are ignored.
func (b *Broker) Unsubscribe(id string) {
	b.lock.Lock()
	defer b.lock.Unlock()

	s, ok := b.subscribers[id]
	if !ok {
		return
	}
	close(s.channel)
	delete(b.subscribers, id)
}

func (b *Broker) Subscribers() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.subscribers)
}

// Publish delivers the event to every interested subscriber without blocking and returns how many
// received it.
func (b *Broker) Publish(event Event) int {
	b.lock.Lock()
	defer b.lock.Unlock()

	delivered := 0
	for _, s := range b.subscribers {
		if s.filter != nil && !s.filter(event) {
			continue
		}
		select {
		case s.channel <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// PublishPost announces a newly created post.
func (b *Broker) PublishPost(post model.Post) {
	b.Publish(Event{Type: PostCreated, Post: post.Event()})
}
