package event

import (
	"testing"

	"github.com/cuff-app/cuff/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_Subscribe(t *testing.T) {
	eventBroker := NewEventBroker()

	id1, _ := eventBroker.Subscribe(nil)
	id2, _ := eventBroker.Subscribe(nil)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, eventBroker.Subscribers())
}

func TestBroker_Unsubscribe(t *testing.T) {
	eventBroker := NewEventBroker()
	id, events := eventBroker.Subscribe(nil)

	eventBroker.Unsubscribe(id)

	assert.Equal(t, 0, eventBroker.Subscribers())
	_, open := <-events
	assert.False(t, open, "want channel to be closed")
}

func TestBroker_Unsubscribe_Twice(t *testing.T) {
	eventBroker := NewEventBroker()
	id, _ := eventBroker.Subscribe(nil)

	eventBroker.Unsubscribe(id)

	assert.NotPanics(t, func() { eventBroker.Unsubscribe(id) })
}

func TestBroker_Publish(t *testing.T) {
	eventBroker := NewEventBroker()
	_, events1 := eventBroker.Subscribe(nil)
	_, events2 := eventBroker.Subscribe(nil)

	delivered := eventBroker.Publish(Event{Type: PostCreated, Post: model.Event{ID: 1, Title: "Pizza"}})

	assert.Equal(t, 2, delivered)
	for _, events := range []<-chan Event{events1, events2} {
		event := <-events
		assert.Equal(t, PostCreated, event.Type)
		assert.Equal(t, "Pizza", event.Post.Title)
	}
}

func TestBroker_Publish_Filter(t *testing.T) {
	eventBroker := NewEventBroker()
	_, everything := eventBroker.Subscribe(nil)
	_, nothing := eventBroker.Subscribe(func(Event) bool { return false })

	delivered := eventBroker.Publish(Event{Type: PostCreated})

	assert.Equal(t, 1, delivered)
	assert.Len(t, everything, 1)
	assert.Len(t, nothing, 0)
}

func TestBroker_Publish_DropsWhenSubscriberLags(t *testing.T) {
	eventBroker := NewEventBroker()
	_, events := eventBroker.Subscribe(nil)

	for i := 0; i < subscriberBuffer+3; i++ {
		eventBroker.Publish(Event{Type: PostCreated, Post: model.Event{ID: uint(i)}})
	}

	require.Len(t, events, subscriberBuffer)
	first := <-events
	assert.Equal(t, uint(0), first.Post.ID)
}

func TestBroker_PublishPost(t *testing.T) {
	eventBroker := NewEventBroker()
	_, events := eventBroker.Subscribe(nil)

	eventBroker.PublishPost(model.Post{ID: 4, Title: "Bagels", Location: "Skutt", Status: model.StatusActive})

	event := <-events
	assert.Equal(t, PostCreated, event.Type)
	assert.Equal(t, model.Event{ID: 4, Title: "Bagels", Location: "Skutt", Status: model.StatusActive}, event.Post)
}
