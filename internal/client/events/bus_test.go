package events

import (
	"testing"

	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestBus_PublishReachesSubscribersInOrder(t *testing.T) {
	b := NewBus()
	var got []string

	b.Subscribe(TopicResourceChanged, func(e Event) { got = append(got, "first:"+string(e.Kind)) })
	b.Subscribe(TopicResourceChanged, func(e Event) { got = append(got, "second:"+string(e.Kind)) })
	b.Subscribe(TopicSessionCleared, func(Event) { got = append(got, "cleared") })

	b.Publish(ResourceChanged(models.KindProducts))

	assert.Equal(t, []string{"first:products", "second:products"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0

	unsub := b.Subscribe(TopicSessionCleared, func(Event) { calls++ })
	b.Publish(SessionCleared())
	unsub()
	unsub()
	b.Publish(SessionCleared())

	assert.Equal(t, 1, calls)
}

func TestBus_HandlerMayUnsubscribeDuringPublish(t *testing.T) {
	b := NewBus()
	calls := 0

	var unsub func()
	unsub = b.Subscribe(TopicSessionCleared, func(Event) {
		calls++
		unsub()
	})

	b.Publish(SessionCleared())
	b.Publish(SessionCleared())
	assert.Equal(t, 1, calls)
}

func TestBus_NilIsSafe(t *testing.T) {
	var b *Bus
	unsub := b.Subscribe(TopicSessionCleared, func(Event) { t.Fatal("must not be called") })
	b.Publish(SessionCleared())
	unsub()
}
