// Package notify distributes the no-payload "data changed" signal.
//
// Subscribers receive a channel with a one-slot buffer.  Publish never
// blocks: when a subscriber has not drained the previous signal the new
// one is coalesced into it, which is exactly what a re-fetch-on-signal
// consumer needs.
package notify

import "sync"

// Broker owns the subscriber set.  The zero value is not usable; call New.
type Broker struct {
	mu     sync.RWMutex
	subs   map[chan struct{}]struct{}
	closed bool
}

// New returns an empty broker.
func New() *Broker {
	return &Broker{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener.  The returned cancel func removes it and
// closes the channel; calling it more than once is safe.  After Close the
// returned channel is already closed.
func (b *Broker) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish signals every subscriber without blocking.
func (b *Broker) Publish() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
			// a signal is already pending
		}
	}
}

// Len reports the number of live subscribers.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel.  Later Subscribe calls get a
// closed channel and Publish becomes a no-op.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
