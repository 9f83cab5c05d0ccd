package tui

import "sync"

// mailbox is an unbounded FIFO with a single consumer. Send never blocks;
// once the consumer closes the mailbox, pending and later messages are
// dropped and Send reports ErrClosed.
type mailbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool
	notify chan struct{}
}

func newMailbox[T any]() *mailbox[T] {
	return &mailbox[T]{notify: make(chan struct{}, 1)}
}

func (m *mailbox[T]) Send(v T) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.queue = append(m.queue, v)
	m.mu.Unlock()
	m.wake()
	return nil
}

// Recv blocks until a message is available. ok is false once the mailbox is
// closed.
func (m *mailbox[T]) Recv() (v T, ok bool) {
	for {
		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return v, false
		}
		if len(m.queue) > 0 {
			v = m.queue[0]
			var zero T
			m.queue[0] = zero
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return v, true
		}
		m.mu.Unlock()
		<-m.notify
	}
}

func (m *mailbox[T]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.queue = nil
	m.mu.Unlock()
	m.wake()
}

func (m *mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *mailbox[T]) wake() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}
