package hlc

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// AdvanceHandler is called after a node's clock state has been replaced
type AdvanceHandler func(nodeID string, ts Timestamp)

// RejectHandler is called when an increment or merge fails, the node's state is unchanged
type RejectHandler func(nodeID string, err error)

// HandlerID uniquely identifies a registered event handler
type HandlerID uuid.UUID

// EventHandlers manages a collection of handlers of a specific type
type EventHandlers[T any] struct {
	handlers atomic.Pointer[[]T]
	mu       sync.Mutex
	ids      []HandlerID // parallel to handlers, guarded by mu
}

// NewEventHandlers creates a new handler collection for any type
func NewEventHandlers[T any]() *EventHandlers[T] {
	registry := &EventHandlers[T]{}
	registry.handlers.Store(&[]T{})
	return registry
}

// Add registers a handler and returns its ID
func (l *EventHandlers[T]) Add(handler T) HandlerID {
	id := HandlerID(uuid.New())

	l.mu.Lock()
	defer l.mu.Unlock()

	currentSlice := l.handlers.Load()
	newSlice := make([]T, len(*currentSlice)+1)
	copy(newSlice, *currentSlice)
	newSlice[len(*currentSlice)] = handler

	l.ids = append(l.ids, id)
	l.handlers.Store(&newSlice)

	return id
}

// Remove unregisters a handler by its ID
func (l *EventHandlers[T]) Remove(id HandlerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	index := -1
	for i, other := range l.ids {
		if other == id {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	currentSlice := l.handlers.Load()
	newSlice := make([]T, 0, len(*currentSlice)-1)
	newSlice = append(newSlice, (*currentSlice)[:index]...)
	newSlice = append(newSlice, (*currentSlice)[index+1:]...)

	l.ids = append(l.ids[:index], l.ids[index+1:]...)
	l.handlers.Store(&newSlice)
	return true
}

// ForEach executes a function for each handler without taking the lock
func (l *EventHandlers[T]) ForEach(fn func(T)) {
	currentSlice := l.handlers.Load()
	if currentSlice == nil || len(*currentSlice) == 0 {
		return
	}

	for i := range *currentSlice {
		fn((*currentSlice)[i])
	}
}

// Len returns the number of registered handlers
func (l *EventHandlers[T]) Len() int {
	return len(*l.handlers.Load())
}
