package events

import (
	"log"
	"sync"
	"sync/atomic"
)

const defaultTopicBuffer = 64

// EventHandler is a function that handles an event
type EventHandler func(event interface{})

// Publisher allows publishing events
type Publisher interface {
	Publish(eventType string, event interface{})
}

// Subscriber allows subscribing to events. The returned func removes the
// subscription; calling it more than once is a no-op.
type Subscriber interface {
	Subscribe(eventType string, handler EventHandler) (unsubscribe func())
}

// EventBus provides both publishing and subscribing
type EventBus interface {
	Publisher
	Subscriber
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// InMemoryBus fans events out to subscribers. Each topic owns one worker
// goroutine, so handlers of a topic never run concurrently with each other.
type InMemoryBus struct {
	mu          sync.RWMutex
	subscribers map[string][]subscription
	workers     map[string]*topicWorker
	bufferSize  int
	nextID      atomic.Uint64
	dropped     atomic.Int64
}

// NewEventBus creates a new event bus with the default buffer size.
func NewEventBus() *InMemoryBus {
	return NewEventBusWithBuffer(defaultTopicBuffer)
}

// NewEventBusWithBuffer allows configuring the per-topic worker queue size.
// A buffer of at least 1 is enforced to avoid unbuffered sends.
func NewEventBusWithBuffer(buffer int) *InMemoryBus {
	if buffer < 1 {
		buffer = 1
	}
	return &InMemoryBus{
		subscribers: make(map[string][]subscription),
		workers:     make(map[string]*topicWorker),
		bufferSize:  buffer,
	}
}

// Subscribe adds a handler for a specific event type.
func (b *InMemoryBus) Subscribe(eventType string, handler EventHandler) func() {
	id := b.nextID.Add(1)

	b.mu.Lock()
	b.subscribers[eventType] = append(b.subscribers[eventType], subscription{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(eventType, id) })
	}
}

func (b *InMemoryBus) unsubscribe(eventType string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers of that event type.
// Publishing is non-blocking: if the topic queue is full, the event is dropped.
func (b *InMemoryBus) Publish(eventType string, event interface{}) {
	handlers := b.handlersFor(eventType)
	if len(handlers) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	worker := b.workerLocked(eventType)
	if worker == nil {
		return
	}

	select {
	case worker.ch <- eventEnvelope{event: event, handlers: handlers}:
	default:
		b.dropped.Add(1)
		log.Printf("Event bus queue full for topic %s; dropping event", eventType)
	}
}

// SubscriberCount reports how many handlers are registered for a topic.
func (b *InMemoryBus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[eventType])
}

// DroppedCount returns the number of events dropped due to full queues.
func (b *InMemoryBus) DroppedCount() int64 {
	return b.dropped.Load()
}

// Shutdown drains and stops all topic workers. Publishing after Shutdown is a
// no-op.
func (b *InMemoryBus) Shutdown() {
	b.mu.Lock()
	workers := b.workers
	b.workers = nil
	for _, w := range workers {
		w.close()
	}
	b.mu.Unlock()

	for _, w := range workers {
		w.wg.Wait()
	}
}

func (b *InMemoryBus) handlersFor(eventType string) []EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subs := b.subscribers[eventType]
	handlers := make([]EventHandler, len(subs))
	for i, s := range subs {
		handlers[i] = s.handler
	}
	return handlers
}

// workerLocked returns the topic worker, creating it if needed. Callers hold b.mu.
func (b *InMemoryBus) workerLocked(eventType string) *topicWorker {
	if b.workers == nil {
		return nil
	}
	if worker, ok := b.workers[eventType]; ok {
		return worker
	}

	worker := newTopicWorker(b.bufferSize)
	b.workers[eventType] = worker
	return worker
}

type eventEnvelope struct {
	event    interface{}
	handlers []EventHandler
}

type topicWorker struct {
	ch       chan eventEnvelope
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func newTopicWorker(buffer int) *topicWorker {
	w := &topicWorker{ch: make(chan eventEnvelope, buffer)}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *topicWorker) run() {
	defer w.wg.Done()
	for env := range w.ch {
		for _, handler := range env.handlers {
			deliver(handler, env.event)
		}
	}
}

func deliver(h EventHandler, e interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panicked: %v", r)
		}
	}()
	h(e)
}

func (w *topicWorker) close() {
	w.stopOnce.Do(func() { close(w.ch) })
}

// NoOpPublisher discards every event.
type NoOpPublisher struct{}

func (NoOpPublisher) Publish(string, interface{}) {}
