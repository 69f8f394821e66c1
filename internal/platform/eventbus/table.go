package eventbus

import (
	"sort"
	"sync"
)

// EventInfo summarises one registered event name.
type EventInfo struct {
	Name     string `json:"name"`
	Handlers int    `json:"handlers"`
}

// table maps event names to their handlers in registration order.
type table struct {
	mu     sync.RWMutex // protects events
	events map[string][]Slot
}

func newTable() *table {
	return &table{events: make(map[string][]Slot)}
}

// add appends s under name and returns the new handler count.
func (t *table) add(name string, s Slot) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[name] = append(t.events[name], s)
	return len(t.events[name])
}

// remove drops every handler for name and returns how many there were.
func (t *table) remove(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.events[name])
	delete(t.events, name)
	return n
}

// handlersFor returns the handlers for name. The result is capped so later
// registrations never show through it, and stays valid after the lock is
// released.
func (t *table) handlersFor(name string) []Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	slots := t.events[name]
	return slots[:len(slots):len(slots)]
}

func (t *table) names() []EventInfo {
	t.mu.RLock()
	infos := make([]EventInfo, 0, len(t.events))
	for name, slots := range t.events {
		infos = append(infos, EventInfo{Name: name, Handlers: len(slots)})
	}
	t.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
