// Package events allows for the registering and receiving of events.
package events

import (
	"fmt"
	"sync"
)

// Event is a single message delivered on a topic.
type Event struct {
	Topic string
	Data  string
}

// subscriber is a registered receiver and the topics it cares about.
type subscriber struct {
	ch     chan Event
	topics map[string]bool
}

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]subscriber
	mu sync.RWMutex
}

// New constructs an events for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]subscriber),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, sub := range evt.m {
		delete(evt.m, id)
		close(sub.ch)
	}
}

// Acquire takes a unique id and the set of topics to listen on and returns
// a channel that can be used to receive events. With no topics the
// channel receives every event.
func (evt *Events) Acquire(id string, topics ...string) <-chan Event {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if sub, exists := evt.m[id]; exists {
		return sub.ch
	}

	// Since a message will be dropped if the websocket receiver is
	// not ready to receive, this arbitrary buffer should give the receiver
	// enough time to not lose a message. Websocket send could take long.
	const messageBuffer = 100

	sub := subscriber{
		ch:     make(chan Event, messageBuffer),
		topics: make(map[string]bool, len(topics)),
	}
	for _, topic := range topics {
		sub.topics[topic] = true
	}

	evt.m[id] = sub
	return sub.ch
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	sub, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(sub.ch)
	return nil
}

// Send signals a message to every channel registered for the topic. Send
// will not block waiting for a receiver on any given channel.
func (evt *Events) Send(topic string, data string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	e := Event{
		Topic: topic,
		Data:  data,
	}

	for _, sub := range evt.m {
		if len(sub.topics) > 0 && !sub.topics[topic] {
			continue
		}

		select {
		case sub.ch <- e:
		default:
		}
	}
}

// Subscribers returns the number of registered receivers.
func (evt *Events) Subscribers() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.m)
}
