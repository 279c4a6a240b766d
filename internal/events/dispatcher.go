package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned when an async dispatcher cannot accept more events.
	ErrQueueFull = errors.New("events: dispatch queue full")
	// ErrDispatcherClosed is returned by Publish after Close.
	ErrDispatcherClosed = errors.New("events: dispatcher closed")
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

type listeners struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

func (l *listeners) add(eventType EventType, handler EventHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.handlers == nil {
		l.handlers = make(map[EventType][]EventHandler)
	}
	l.handlers[eventType] = append(l.handlers[eventType], handler)
}

func (l *listeners) forType(eventType EventType) []EventHandler {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]EventHandler{}, l.handlers[eventType]...)
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	listeners listeners
}

// NewInMemoryDispatcher creates a dispatcher that runs handlers inline.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{}
}

// Publish synchronously invokes handlers for the given event and joins their errors.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, handler := range d.listeners.forType(event.Type) {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.listeners.add(eventType, handler)
}

type envelope struct {
	ctx   context.Context
	event Event
}

// AsyncDispatcher hands events to a fixed pool of workers through a bounded
// queue. Publish never blocks and handlers run detached from the caller's
// cancellation.
type AsyncDispatcher struct {
	listeners listeners
	logger    *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan envelope
	wg     sync.WaitGroup
}

// NewAsyncDispatcher starts workers consuming a queue of queueSize events.
func NewAsyncDispatcher(workers, queueSize int, logger *zap.Logger) *AsyncDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &AsyncDispatcher{
		logger: logger,
		queue:  make(chan envelope, queueSize),
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work()
	}
	return d
}

// Subscribe registers a handler for the given event type.
func (d *AsyncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.listeners.add(eventType, handler)
}

// Publish enqueues event or fails fast with ErrQueueFull.
func (d *AsyncDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.queue <- envelope{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for queued ones to finish or ctx to end.
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: drain queue: %w", ctx.Err())
	}
}

func (d *AsyncDispatcher) work() {
	defer d.wg.Done()
	for env := range d.queue {
		for _, handler := range d.listeners.forType(env.event.Type) {
			d.run(env, handler)
		}
	}
}

func (d *AsyncDispatcher) run(env envelope, handler EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked",
				zap.String("event_type", string(env.event.Type)),
				zap.String("event_id", env.event.ID),
				zap.Any("panic", r))
		}
	}()
	if err := handler(env.ctx, env.event); err != nil {
		d.logger.Warn("event handler failed",
			zap.String("event_type", string(env.event.Type)),
			zap.String("event_id", env.event.ID),
			zap.Error(err))
	}
}
