// Package event provides a small typed observer list.
package event

import "sync"

// Subscription is a registered handler that can be removed.
type Subscription interface {
	Dispose()
}

// SubscriptionFunc adapts a function to Subscription. The function runs at
// most once.
func SubscriptionFunc(fn func()) Subscription {
	return &funcSubscription{fn: fn}
}

type funcSubscription struct {
	once sync.Once
	fn   func()
}

func (s *funcSubscription) Dispose() {
	s.once.Do(func() {
		if s.fn != nil {
			s.fn()
		}
	})
}

// Join returns a Subscription that disposes all subs in order.
func Join(subs ...Subscription) Subscription {
	return SubscriptionFunc(func() {
		for _, sub := range subs {
			if sub != nil {
				sub.Dispose()
			}
		}
	})
}

type handler[T any] struct {
	id uint64
	fn func(T)
}

// Emitter fans a value out to every subscribed handler.
// The zero value is ready to use.
type Emitter[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []handler[T]
}

// Subscribe registers fn and returns a Subscription that removes it.
func (e *Emitter[T]) Subscribe(fn func(T)) Subscription {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, handler[T]{id: id, fn: fn})
	e.mu.Unlock()

	return SubscriptionFunc(func() { e.remove(id) })
}

func (e *Emitter[T]) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, h := range e.handlers {
		if h.id == id {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Fire calls every handler registered at the time of the call, in
// registration order. Handlers may subscribe or dispose during Fire.
func (e *Emitter[T]) Fire(v T) {
	e.mu.Lock()
	snapshot := make([]handler[T], len(e.handlers))
	copy(snapshot, e.handlers)
	e.mu.Unlock()

	for _, h := range snapshot {
		h.fn(v)
	}
}

// Clear removes all handlers.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	e.handlers = nil
	e.mu.Unlock()
}

// Len returns the number of registered handlers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}
