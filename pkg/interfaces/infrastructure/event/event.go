// Package event defines the in-process event bus.
package event

// EventType names a topic. The bus prefixes it with the configured topic
// prefix.
type EventType string

// EventBus is a synchronous/asynchronous publish-subscribe bus. Handlers are
// plain funcs whose parameters match the published arguments.
type EventBus interface {
	Subscribe(eventType EventType, handler interface{}) error
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error
	Unsubscribe(eventType EventType, handler interface{}) error
	Publish(eventType EventType, args ...interface{})
	HasCallback(eventType EventType) bool

	// WaitAsync blocks until every async handler has returned.
	WaitAsync()

	// GetEventHistory returns the retained arguments of past publishes.
	GetEventHistory(eventType EventType) []interface{}
}
