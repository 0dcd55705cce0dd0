package linelog

import (
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 64

// Publisher fans out rendered lines to subscribers.
//
// Each call to [Publisher.Publish] appends the line to every active
// [Subscription] and returns without waiting on consumers: a subscription
// holds an unbounded backlog that a dedicated goroutine drains into the
// delivery channel in publish order, so a slow or absent consumer never
// blocks the producer and never loses a line. Closed subscriptions are
// compacted out of the subscriber list on a later Publish. Safe for
// concurrent use.
//
// Create instances with [NewPublisher].
type Publisher struct {
	subscribers []*Subscription
	bufSize     int
	mu          sync.Mutex
	closed      bool
}

// NewPublisher creates a [Publisher] with the given options.
// The default delivery channel buffer size is 64.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		bufSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PublisherOption configures a [Publisher].
type PublisherOption func(*Publisher)

// WithBufferSize sets the delivery channel capacity for new subscriptions.
// The capacity only affects hand-off granularity; backlog beyond it is held
// in the subscription's queue. Values less than 1 are clamped to 1.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		if n < 1 {
			n = 1
		}

		p.bufSize = n
	}
}

// Publish delivers line to all active subscribers. Closed subscriptions are
// compacted out of the subscriber list. Publish never blocks on a consumer.
func (p *Publisher) Publish(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	// Compact closed subscriptions and deliver in one pass.
	alive := p.subscribers[:0]
	for _, sub := range p.subscribers {
		if sub.closed.Load() {
			continue
		}

		sub.enqueue(line)

		alive = append(alive, sub)
	}
	// Clear trailing references for GC.
	for i := len(alive); i < len(p.subscribers); i++ {
		p.subscribers[i] = nil
	}

	p.subscribers = alive
}

// Subscribe creates and registers a new [Subscription]. If the Publisher is
// already closed the returned subscription's channel is immediately closed.
// Safe to call concurrently with Publish.
func (p *Publisher) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := newSubscription(p.bufSize)

	if p.closed {
		sub.Close()
		return sub
	}

	p.subscribers = append(p.subscribers, sub)

	return sub
}

// Close marks the Publisher as closed, closes all subscriptions, and
// releases the subscriber list. Idempotent.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	for _, sub := range p.subscribers {
		sub.Close()
	}

	p.subscribers = nil

	return nil
}

// Subscription receives rendered lines from a [Publisher], in the order they
// were published.
type Subscription struct {
	mu     sync.Mutex
	queue  []string
	wake   chan struct{}
	done   chan struct{}
	ch     chan string
	closed atomic.Bool
}

func newSubscription(bufSize int) *Subscription {
	s := &Subscription{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		ch:   make(chan string, bufSize),
	}

	go s.pump()

	return s
}

// C returns the read-only channel that delivers lines. The channel is closed
// after [Subscription.Close], or when the Publisher closes.
func (s *Subscription) C() <-chan string {
	return s.ch
}

// Close marks the subscription as closed and stops delivery. Lines not yet
// received are discarded; the Publisher compacts the subscription out of its
// list on a later Publish. Idempotent.
func (s *Subscription) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.done)
	}
}

// enqueue appends line to the backlog and nudges the pump. Never blocks.
func (s *Subscription) enqueue(line string) {
	s.mu.Lock()
	s.queue = append(s.queue, line)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest backlog line.
func (s *Subscription) next() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		// Release the grown backing array between bursts.
		s.queue = nil
		return "", false
	}

	line := s.queue[0]
	s.queue = s.queue[1:]

	return line, true
}

// pump drains the backlog into the delivery channel in FIFO order.
func (s *Subscription) pump() {
	defer close(s.ch)

	for {
		line, ok := s.next()
		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}

		select {
		case s.ch <- line:
		case <-s.done:
			return
		}
	}
}
