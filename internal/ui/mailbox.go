package ui

import "sync"

// mailbox is an unbounded FIFO drained by a single goroutine. Pushing never
// blocks, so the bubbletea loop can hand off messages safely.
type mailbox[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	signal chan struct{}
}

func newMailbox[T any]() *mailbox[T] {
	return &mailbox[T]{signal: make(chan struct{}, 1)}
}

// push appends v. It returns false once the mailbox is closed.
func (b *mailbox[T]) push(v T) bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false
	}
	b.items = append(b.items, v)
	b.mu.Unlock()
	b.wake()
	return true
}

// close drops pending items and stops drain.
func (b *mailbox[T]) close() {
	b.mu.Lock()
	b.closed = true
	b.items = nil
	b.mu.Unlock()
	b.wake()
}

func (b *mailbox[T]) wake() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// drain calls fn for every item in push order until the mailbox is closed.
func (b *mailbox[T]) drain(fn func(T)) {
	for {
		b.mu.Lock()
		items, closed := b.items, b.closed
		b.items = nil
		b.mu.Unlock()
		if closed {
			return
		}
		for _, v := range items {
			fn(v)
		}
		if len(items) == 0 {
			<-b.signal
		}
	}
}
