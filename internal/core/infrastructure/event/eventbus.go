// Package event implements the in-process event bus on asaskevich/EventBus.
package event

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"

	eventconfig "github.com/dgc-network/smart/internal/config/event"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/event"
)

// EventBus wraps evbus.Bus with topic prefixing and a bounded per-topic
// history. A disabled bus accepts every call and does nothing.
type EventBus struct {
	bus     evbus.Bus
	options *eventconfig.EventOptions

	historyMu    sync.RWMutex
	eventHistory map[event.EventType][]interface{}
}

var _ event.EventBus = (*EventBus)(nil)

// New creates a bus. A nil config uses the defaults.
func New(config *eventconfig.Config) *EventBus {
	if config == nil {
		config = eventconfig.New(nil)
	}
	return &EventBus{
		bus:          evbus.New(),
		options:      config.GetOptions(),
		eventHistory: make(map[event.EventType][]interface{}),
	}
}

// topic is the underlying bus topic of eventType.
func (eb *EventBus) topic(eventType event.EventType) string {
	if eb.options.TopicPrefix == "" {
		return string(eventType)
	}
	return eb.options.TopicPrefix + "." + string(eventType)
}

func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	if !eb.options.Enabled {
		return nil
	}
	return eb.bus.Subscribe(eb.topic(eventType), handler)
}

func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	if !eb.options.Enabled {
		return nil
	}
	return eb.bus.SubscribeAsync(eb.topic(eventType), handler, transactional)
}

func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	if !eb.options.Enabled {
		return nil
	}
	return eb.bus.Unsubscribe(eb.topic(eventType), handler)
}

// Publish records args in the history and delivers them to the subscribers
// of eventType.
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if !eb.options.Enabled {
		return
	}
	eb.saveEventToHistory(eventType, args)
	eb.bus.Publish(eb.topic(eventType), args...)
}

func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	if !eb.options.Enabled {
		return false
	}
	return eb.bus.HasCallback(eb.topic(eventType))
}

func (eb *EventBus) WaitAsync() {
	if !eb.options.Enabled {
		return
	}
	eb.bus.WaitAsync()
}

// saveEventToHistory keeps the last HistorySize publishes. Single argument
// publishes are stored as the argument itself.
func (eb *EventBus) saveEventToHistory(eventType event.EventType, args []interface{}) {
	limit := eb.options.HistorySize
	if limit <= 0 {
		return
	}

	var entry interface{} = args
	if len(args) == 1 {
		entry = args[0]
	}

	eb.historyMu.Lock()
	defer eb.historyMu.Unlock()
	history := append(eb.eventHistory[eventType], entry)
	if len(history) > limit {
		history = append([]interface{}(nil), history[len(history)-limit:]...)
	}
	eb.eventHistory[eventType] = history
}

// GetEventHistory returns a copy of the retained publishes, oldest first.
func (eb *EventBus) GetEventHistory(eventType event.EventType) []interface{} {
	eb.historyMu.RLock()
	defer eb.historyMu.RUnlock()
	history := eb.eventHistory[eventType]
	if len(history) == 0 {
		return nil
	}
	return append([]interface{}(nil), history...)
}
