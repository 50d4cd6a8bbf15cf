// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/types"
)

// Handler defines the function signature for event subscribers.
// The return value reports whether the event was consumed; dispatch
// continues regardless.
type Handler func(e Event) bool

// SubscriptionID identifies one registration for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager is a synchronous mutation bus keyed by tree id.
type Manager struct {
	mu       sync.RWMutex
	nextID   SubscriptionID
	handlers map[types.TreeID]map[Type][]subscription
	owners   map[SubscriptionID]types.TreeID
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[types.TreeID]map[Type][]subscription),
		owners:   make(map[SubscriptionID]types.TreeID),
	}
}

// Subscribe adds a handler for one event type on one tree.
func (m *Manager) Subscribe(tree types.TreeID, eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	byType, ok := m.handlers[tree]
	if !ok {
		byType = make(map[Type][]subscription)
		m.handlers[tree] = byType
	}
	byType[eventType] = append(byType[eventType], subscription{id: id, handler: handler})
	m.owners[id] = tree
	logger.DebugTagf("event", "subscription %d on tree %s for %v", id, tree, eventType)
	return id
}

// Unsubscribe removes a registration. Unknown ids are ignored.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tree, ok := m.owners[id]
	if !ok {
		return
	}
	delete(m.owners, id)
	for t, subs := range m.handlers[tree] {
		for i, s := range subs {
			if s.id == id {
				m.handlers[tree][t] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
	logger.DebugTagf("event", "subscription %d removed", id)
}

// HandlerCount reports how many handlers are registered for a tree.
func (m *Manager) HandlerCount(tree types.TreeID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, subs := range m.handlers[tree] {
		n += len(subs)
	}
	return n
}

// Dispatch delivers an event synchronously to every handler registered for
// its tree and type, in subscription order. Handlers may unsubscribe
// themselves during dispatch.
func (m *Manager) Dispatch(tree types.TreeID, eventType Type, data interface{}) {
	m.mu.RLock()
	subs := m.handlers[tree][eventType]
	handlersCopy := make([]subscription, len(subs))
	copy(handlersCopy, subs)
	m.mu.RUnlock()

	if len(handlersCopy) == 0 {
		return
	}
	logger.DebugTagf("event", "dispatching %v on tree %s to %d handler(s)", eventType, tree, len(handlersCopy))

	e := Event{Tree: tree, Type: eventType, Data: data}
	for _, s := range handlersCopy {
		s.handler(e)
	}
}
