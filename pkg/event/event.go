// Package event is an in-process publish/subscribe bus. Listeners run on a
// bounded worker pool so a publisher never waits on them.
package event

import (
	"errors"
	"sync"

	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/workerpool"
)

// Event is what listeners receive.
type Event struct {
	Name    string
	Payload interface{}
}

// Handler is a function that receives an event.
type Handler func(Event)

// Bus dispatches events by name.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	pool     *workerpool.Pool
}

// NewBus returns a Bus running listeners on pool. A nil pool makes Publish
// synchronous, which is what tests usually want.
func NewBus(pool *workerpool.Pool) *Bus {
	return &Bus{handlers: map[string][]Handler{}, pool: pool}
}

// Listen registers a handler for each of the given event names.
func (b *Bus) Listen(handler Handler, names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range names {
		b.handlers[name] = append(b.handlers[name], handler)
	}
}

// Publish hands the event to every listener. When the pool is saturated the
// event is dropped for that listener and a warning is logged.
func (b *Bus) Publish(name string, payload interface{}) {
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers[name]))
	copy(hs, b.handlers[name])
	b.mu.RUnlock()

	evt := Event{Name: name, Payload: payload}
	for _, h := range hs {
		if b.pool == nil {
			h(evt)
			continue
		}

		h := h
		if err := b.pool.Submit(func() { h(evt) }); err != nil {
			if errors.Is(err, workerpool.ErrPoolClosed) {
				return
			}
			logger.Warn("event: listener dropped", "event", name, "error", err)
		}
	}
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}
