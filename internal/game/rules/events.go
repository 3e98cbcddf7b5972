package rules

import (
	"sync"
	"time"

	"github.com/magefree/mage-tale-go/internal/game/cards"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Attribute events
	EventAttributeWillChange EventType = "ATTRIBUTE_WILL_CHANGE"
	EventAttributeDidChange  EventType = "ATTRIBUTE_DID_CHANGE"

	// Item events
	EventItemWillBeUsed    EventType = "ITEM_WILL_BE_USED"
	EventItemWasUsed       EventType = "ITEM_WAS_USED"
	EventItemWasGained     EventType = "ITEM_WAS_GAINED"
	EventItemWasLost       EventType = "ITEM_WAS_LOST"
	EventItemWasEquipped   EventType = "ITEM_WAS_EQUIPPED"
	EventItemWasUnequipped EventType = "ITEM_WAS_UNEQUIPPED"
)

// AllEventTypes lists every event type the game publishes.
var AllEventTypes = []EventType{
	EventAttributeWillChange,
	EventAttributeDidChange,
	EventItemWillBeUsed,
	EventItemWasUsed,
	EventItemWasGained,
	EventItemWasLost,
	EventItemWasEquipped,
	EventItemWasUnequipped,
}

// IsAttributeChange returns true for the will/did attribute change pair.
func (et EventType) IsAttributeChange() bool {
	return et == EventAttributeWillChange || et == EventAttributeDidChange
}

// Event represents a state change that observers may react to.
// Attribute events fill Attribute/From/To; item events fill Item.
type Event struct {
	Type        EventType
	CharacterID string
	Attribute   string
	From        int
	To          int
	Item        *cards.Item
	Timestamp   time.Time
}

// NewAttributeEvent creates an attribute change event.
func NewAttributeEvent(eventType EventType, characterID, attribute string, from, to int) Event {
	return Event{
		Type:        eventType,
		CharacterID: characterID,
		Attribute:   attribute,
		From:        from,
		To:          to,
		Timestamp:   time.Now(),
	}
}

// NewItemEvent creates an item event carrying a copy of the item.
func NewItemEvent(eventType EventType, characterID string, item cards.Item) Event {
	cpy := item.Clone()
	return Event{
		Type:        eventType,
		CharacterID: characterID,
		Item:        &cpy,
		Timestamp:   time.Now(),
	}
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// Unsubscribe removes the listener it was returned for. Calling it more
// than once is a no-op.
type Unsubscribe func()

type typedListener struct {
	handle   int
	callback Listener
}

// EventBus provides a synchronous publish/subscribe registry keyed by event type.
// Listeners run in registration order against a snapshot of the registry taken
// when Publish is called, so subscribing or unsubscribing from inside a
// listener does not affect the dispatch in progress.
type EventBus struct {
	mu         sync.RWMutex
	listeners  map[EventType][]typedListener
	nextHandle int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]typedListener),
	}
}

// Subscribe registers a listener for a specific event type.
func (bus *EventBus) Subscribe(eventType EventType, listener Listener) Unsubscribe {
	if listener == nil {
		return func() {}
	}
	bus.mu.Lock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[eventType] = append(bus.listeners[eventType], typedListener{
		handle:   handle,
		callback: listener,
	})
	bus.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { bus.remove(eventType, handle) })
	}
}

func (bus *EventBus) remove(eventType EventType, handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	listeners := bus.listeners[eventType]
	for i := range listeners {
		if listeners[i].handle != handle {
			continue
		}
		// Copy rather than splice in place: a publish in progress may hold
		// the old slice.
		remaining := make([]typedListener, 0, len(listeners)-1)
		remaining = append(remaining, listeners[:i]...)
		remaining = append(remaining, listeners[i+1:]...)
		if len(remaining) == 0 {
			delete(bus.listeners, eventType)
		} else {
			bus.listeners[eventType] = remaining
		}
		return
	}
}

// Publish delivers the event to all listeners of its type synchronously.
// Publishing a type with no listeners is a no-op.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	snapshot := bus.listeners[event.Type]
	bus.mu.RUnlock()

	for _, listener := range snapshot {
		listener.callback(event)
	}
}

// PublishBatch publishes multiple events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// ListenerCount returns the number of listeners registered for a type.
func (bus *EventBus) ListenerCount(eventType EventType) int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.listeners[eventType])
}

// HasBucket reports whether the registry holds an entry for the type.
func (bus *EventBus) HasBucket(eventType EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	_, ok := bus.listeners[eventType]
	return ok
}
