// Package events carries in-process invalidation signals between the
// session store and the view synchronizers.
package events

import (
	"sync"

	"github.com/dmitrijs2005/booky/internal/client/models"
)

type Topic string

const (
	// TopicSessionCleared is published when the credential is dropped
	// (logout, expiry, identity change). Cached records must go with it.
	TopicSessionCleared Topic = "session.cleared"
	// TopicResourceChanged is published after a successful mutation of Kind.
	TopicResourceChanged Topic = "resource.changed"
)

type Event struct {
	Topic Topic
	Kind  models.Kind
}

type Handler func(Event)

// Bus is a synchronous fan-out. Handlers run on the publisher's goroutine
// in subscription order and must not block. A nil *Bus drops everything.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic]map[int]Handler
	order  map[Topic][]int
}

func NewBus() *Bus {
	return &Bus{
		subs:  make(map[Topic]map[int]Handler),
		order: make(map[Topic][]int),
	}
}

// Subscribe registers h for topic and returns a func that removes it.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	if b == nil || h == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	b.subs[topic][id] = h
	b.order[topic] = append(b.order[topic], id)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic Topic, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs[topic], id)
	ids := b.order[topic]
	for i, v := range ids {
		if v == id {
			b.order[topic] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

// Publish delivers e to the current subscribers of e.Topic. The handler list
// is snapshotted first, so handlers may subscribe or unsubscribe freely.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order[e.Topic]))
	for _, id := range b.order[e.Topic] {
		handlers = append(handlers, b.subs[e.Topic][id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}

func SessionCleared() Event {
	return Event{Topic: TopicSessionCleared}
}

func ResourceChanged(kind models.Kind) Event {
	return Event{Topic: TopicResourceChanged, Kind: kind}
}
