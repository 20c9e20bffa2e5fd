package telemetry

import (
	"sync"
	"time"
)

const (
	EventHoldStarted   = "hold_started"
	EventHoldCancelled = "hold_cancelled"
	EventHoldActivated = "hold_activated"

	// AllEvents subscribes a handler to every event type.
	AllEvents = "*"
)

type Event struct {
	Type      string
	Timestamp time.Time
	Data      map[string]interface{}
}

type EventHandler interface {
	Handle(event Event)
	GetID() string
}

type funcHandler struct {
	id string
	fn func(Event)
}

func (f funcHandler) Handle(event Event) { f.fn(event) }
func (f funcHandler) GetID() string      { return f.id }

// HandlerFunc wraps fn as an EventHandler identified by id.
func HandlerFunc(id string, fn func(Event)) EventHandler {
	return funcHandler{id: id, fn: fn}
}

// Bus delivers events to subscribers on a single worker goroutine, in
// publish order. Publish never blocks; events are dropped when the buffer
// is full.
type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	buffer      chan Event
	closed      bool
	dropped     int
	wg          sync.WaitGroup
}

func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 64
	}

	bus := &Bus{
		subscribers: make(map[string][]EventHandler),
		buffer:      make(chan Event, bufferSize),
	}

	bus.startWorker()
	return bus
}

// Publish queues event and reports whether it was accepted.
func (b *Bus) Publish(event Event) bool {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}

	select {
	case b.buffer <- event:
		return true
	default:
		b.dropped++
		return false
	}
}

func (b *Bus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

func (b *Bus) Unsubscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subscribers[eventType]
	for i, h := range handlers {
		if h.GetID() == handler.GetID() {
			b.subscribers[eventType] = append(handlers[:i], handlers[i+1:]...)
			break
		}
	}
}

// Dropped reports how many events were discarded because the buffer was full.
func (b *Bus) Dropped() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

// Shutdown stops accepting events, delivers what is queued and waits for the
// worker to exit.
func (b *Bus) Shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.buffer)
	b.mu.Unlock()

	b.wg.Wait()
}

func (b *Bus) startWorker() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for event := range b.buffer {
			b.dispatchEvent(event)
		}
	}()
}

func (b *Bus) dispatchEvent(event Event) {
	b.mu.RLock()
	handlers := make([]EventHandler, 0, len(b.subscribers[event.Type])+len(b.subscribers[AllEvents]))
	handlers = append(handlers, b.subscribers[event.Type]...)
	handlers = append(handlers, b.subscribers[AllEvents]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.safeHandle(handler, event)
	}
}

func (b *Bus) safeHandle(handler EventHandler, event Event) {
	defer func() {
		// a failing subscriber must not stop delivery to the others
		_ = recover()
	}()
	handler.Handle(event)
}
