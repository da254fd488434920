package pubsub

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Handler receives an encoded event.
type Handler func(topic EventType, data []byte) error

// localClient delivers events in-process. It is used when no GCP project is configured.
type localClient struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// LocalClient is a PubSubClient that dispatches to in-process subscribers.
type LocalClient interface {
	PubSubClient
	Subscribe(topic EventType, h Handler)
}

// NewLocal creates an in-process client.
func NewLocal() LocalClient {
	return &localClient{handlers: make(map[EventType][]Handler)}
}

func (c *localClient) Subscribe(topic EventType, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = append(c.handlers[topic], h)
}

// SendMessage encodes data exactly as the remote client would and calls every subscriber.
// The first subscriber error is returned.
func (c *localClient) SendMessage(topic EventType, data any) error {
	payload, err := Encode(data)
	if err != nil {
		return err
	}
	c.mu.RLock()
	handlers := append([]Handler(nil), c.handlers[topic]...)
	c.mu.RUnlock()

	if len(handlers) == 0 {
		log.Debug("No local subscriber for event", "topic", topic)
	}
	var first error
	for _, h := range handlers {
		if err := h(topic, payload); err != nil {
			log.Error("Local subscriber failed", "topic", topic, "error", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (c *localClient) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

func (c *localClient) Close() {}
