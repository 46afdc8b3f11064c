package channels

import "sync"

// Mailbox is a single-slot, latest-wins hand-off between goroutines.
//
// Producers Put values without blocking; a newer value replaces an unread
// older one. Ready delivers at most one pending wake-up no matter how many
// values were put, so consumers can drain once per frame.
type Mailbox[T any] struct {
	mu    sync.Mutex
	value T
	full  bool
	ready chan struct{}
}

// NewMailbox creates an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{
		ready: make(chan struct{}, 1),
	}
}

// Put stores msg, replacing any unread value, and signals Ready.
func (m *Mailbox[T]) Put(msg T) {
	m.mu.Lock()
	m.value = msg
	m.full = true
	m.mu.Unlock()

	// a pending wake-up already covers this value
	_ = SendNonBlock(m.ready, struct{}{})
}

// PutIf stores msg only if accept reports true. accept runs under the
// mailbox lock, so a Clear that follows a change in what accept checks
// cannot be overtaken by a stale Put. It reports whether msg was stored.
func (m *Mailbox[T]) PutIf(msg T, accept func() bool) bool {
	m.mu.Lock()
	if !accept() {
		m.mu.Unlock()
		return false
	}

	m.value = msg
	m.full = true
	m.mu.Unlock()

	_ = SendNonBlock(m.ready, struct{}{})

	return true
}

// Take removes and returns the current value, if any.
func (m *Mailbox[T]) Take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if !m.full {
		return zero, false
	}

	msg := m.value
	m.value = zero
	m.full = false

	return msg, true
}

// Clear discards any unread value.
func (m *Mailbox[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	m.value = zero
	m.full = false
}

// Ready returns a channel that receives after Put. Wake-ups coalesce.
func (m *Mailbox[T]) Ready() <-chan struct{} {
	return m.ready
}
