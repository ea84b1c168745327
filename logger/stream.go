package logger

import (
	"sync"
	"sync/atomic"
)

// Subscription is a registered record or level-change handler
type Subscription struct {
	cancelled atomic.Bool
	once      sync.Once
	remove    func()
}

// Cancel unregisters the handler. It takes effect immediately: a delivery
// already in progress skips the handler if it has not reached it yet.
// Calling Cancel more than once is a no-op.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.cancelled.Store(true)
		s.remove()
	})
}

// Cancelled reports whether the subscription has been cancelled
func (s *Subscription) Cancelled() bool {
	return s.cancelled.Load()
}

type listener[T any] struct {
	fn  func(T)
	sub *Subscription
}

// stream is a synchronous broadcast of values to its listeners. The
// listener slice is copy-on-write, so deliveries iterate a snapshot
// without holding the lock while handlers run.
type stream[T any] struct {
	mu        sync.Mutex
	listeners []*listener[T]
	// firing is set while emit runs its handlers
	firing atomic.Bool
}

func (s *stream[T]) subscribe(fn func(T)) *Subscription {
	ln := &listener[T]{fn: fn}
	ln.sub = &Subscription{remove: func() { s.unsubscribe(ln) }}

	s.mu.Lock()
	next := make([]*listener[T], len(s.listeners), len(s.listeners)+1)
	copy(next, s.listeners)
	s.listeners = append(next, ln)
	s.mu.Unlock()

	return ln.sub
}

func (s *stream[T]) unsubscribe(ln *listener[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.listeners {
		if cur == ln {
			next := make([]*listener[T], 0, len(s.listeners)-1)
			next = append(next, s.listeners[:i]...)
			s.listeners = append(next, s.listeners[i+1:]...)
			return
		}
	}
}

func (s *stream[T]) snapshot() []*listener[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listeners
}

// hasListeners is a cheap check used to skip empty ancestors
func (s *stream[T]) hasListeners() bool {
	return len(s.snapshot()) > 0
}

func (s *stream[T]) deliver(v T) {
	for _, ln := range s.snapshot() {
		if ln.sub.cancelled.Load() {
			continue
		}
		ln.fn(v)
	}
}

// clear cancels every current listener
func (s *stream[T]) clear() {
	s.mu.Lock()
	old := s.listeners
	s.listeners = nil
	s.mu.Unlock()

	for _, ln := range old {
		ln.sub.once.Do(func() { ln.sub.cancelled.Store(true) })
	}
}

// emit delivers v with the firing flag set for the duration of the
// delivery.
func (s *stream[T]) emit(v T) {
	s.firing.Store(true)
	defer s.firing.Store(false)
	s.deliver(v)
}

// inFlight reports whether an emit is running
func (s *stream[T]) inFlight() bool {
	return s.firing.Load()
}
