package pubsub

import "sync"

// Published is one event captured by MockPubSubClient.
type Published struct {
	Topic EventType
	Data  any
}

// MockPubSubClient records published events instead of delivering them.
type MockPubSubClient struct {
	mu sync.Mutex

	// Err, when set, fails every SendMessage after recording it.
	Err       error
	Published []Published
}

func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

func (m *MockPubSubClient) SendMessage(topic EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, Published{Topic: topic, Data: data})
	return m.Err
}

// Topics lists the published topics in order.
func (m *MockPubSubClient) Topics() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, 0, len(m.Published))
	for _, p := range m.Published {
		out = append(out, p.Topic)
	}
	return out
}

func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

func (m *MockPubSubClient) Close() {}
