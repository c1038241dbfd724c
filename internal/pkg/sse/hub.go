package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// AdminTopic is the topic every approver and admin listens on.
const AdminTopic = "admins"

// Event is one server-sent event. Data is sent as JSON.
type Event struct {
	Name string
	Data interface{}
}

// Hub fans events out to listeners grouped by topic. An employee's own
// topic is their employee ID.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[chan Event]struct{}
	buffer int
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[chan Event]struct{}),
		buffer: 16,
	}
}

// Subscribe registers one listener on all given topics. cancel removes it
// and closes the channel.
func (h *Hub) Subscribe(topics ...string) (events <-chan Event, cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	for _, topic := range topics {
		if h.topics[topic] == nil {
			h.topics[topic] = make(map[chan Event]struct{})
		}
		h.topics[topic][ch] = struct{}{}
	}

	var once sync.Once
	cancel = func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if h.closed {
				return
			}
			for _, topic := range topics {
				delete(h.topics[topic], ch)
				if len(h.topics[topic]) == 0 {
					delete(h.topics, topic)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish hands ev to every listener on topic and returns how many took it.
// A listener whose buffer is full misses the event.
func (h *Hub) Publish(topic string, ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.topics[topic] {
		select {
		case ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

// Listeners returns the number of listeners on topic.
func (h *Hub) Listeners(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Close ends every subscription. Later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true

	seen := make(map[chan Event]struct{})
	for _, listeners := range h.topics {
		for ch := range listeners {
			if _, ok := seen[ch]; !ok {
				seen[ch] = struct{}{}
				close(ch)
			}
		}
	}
	h.topics = make(map[string]map[chan Event]struct{})
}

// Write encodes ev in the text/event-stream wire format.
func Write(w io.Writer, ev Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.Name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data)
	return err
}
