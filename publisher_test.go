package linelog_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/linelog"
)

func TestNewPublisher(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts    []linelog.PublisherOption
		wantCap int
	}{
		"default buffer size": {
			opts:    nil,
			wantCap: 64,
		},
		"custom buffer size": {
			opts:    []linelog.PublisherOption{linelog.WithBufferSize(128)},
			wantCap: 128,
		},
		"clamp zero to one": {
			opts:    []linelog.PublisherOption{linelog.WithBufferSize(0)},
			wantCap: 1,
		},
		"clamp negative to one": {
			opts:    []linelog.PublisherOption{linelog.WithBufferSize(-5)},
			wantCap: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pub := linelog.NewPublisher(tc.opts...)

			sub := pub.Subscribe()
			defer sub.Close()

			assert.Equal(t, tc.wantCap, cap(sub.C()))
		})
	}
}

func TestPublish(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		numSubscribers int
	}{
		"single subscriber":    {numSubscribers: 1},
		"multiple subscribers": {numSubscribers: 3},
		"no subscribers":       {numSubscribers: 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pub := linelog.NewPublisher()

			subs := make([]*linelog.Subscription, tc.numSubscribers)
			for i := range subs {
				subs[i] = pub.Subscribe()
				defer subs[i].Close()
			}

			pub.Publish("hello")

			for _, sub := range subs {
				assert.Equal(t, "hello", <-sub.C())
			}
		})
	}
}

func TestPublishLossless(t *testing.T) {
	t.Parallel()

	// The delivery channel is tiny; everything beyond it lands in the
	// backlog and must still arrive, in order, once the consumer reads.
	pub := linelog.NewPublisher(linelog.WithBufferSize(2))

	sub := pub.Subscribe()
	defer sub.Close()

	const total = 100

	for i := range total {
		pub.Publish(fmt.Sprintf("line-%03d", i))
	}

	for i := range total {
		assert.Equal(t, fmt.Sprintf("line-%03d", i), <-sub.C())
	}
}

func TestSubscriptionClose(t *testing.T) {
	t.Parallel()

	t.Run("stops delivery", func(t *testing.T) {
		t.Parallel()

		pub := linelog.NewPublisher()
		sub := pub.Subscribe()

		pub.Publish("before")
		assert.Equal(t, "before", <-sub.C())

		sub.Close()

		// Triggers compaction; the closed endpoint is skipped.
		pub.Publish("after")

		_, open := <-sub.C()
		assert.False(t, open, "channel should be closed after subscription close")
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		pub := linelog.NewPublisher()
		sub := pub.Subscribe()

		sub.Close()
		sub.Close() // should not panic
		sub.Close()

		_, open := <-sub.C()
		assert.False(t, open)
	})
}

func TestPublisherClose(t *testing.T) {
	t.Parallel()

	t.Run("closes all subscriptions", func(t *testing.T) {
		t.Parallel()

		pub := linelog.NewPublisher()
		sub1 := pub.Subscribe()
		sub2 := pub.Subscribe()

		require.NoError(t, pub.Close())

		_, open1 := <-sub1.C()
		_, open2 := <-sub2.C()

		assert.False(t, open1)
		assert.False(t, open2)
	})

	t.Run("publish after close is no-op", func(t *testing.T) {
		t.Parallel()

		pub := linelog.NewPublisher()
		sub := pub.Subscribe()

		require.NoError(t, pub.Close())

		pub.Publish("ignored")

		_, open := <-sub.C()
		assert.False(t, open)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		pub := linelog.NewPublisher()
		require.NoError(t, pub.Close())
		require.NoError(t, pub.Close())
	})

	t.Run("subscribe after close", func(t *testing.T) {
		t.Parallel()

		pub := linelog.NewPublisher()
		require.NoError(t, pub.Close())

		sub := pub.Subscribe()

		_, open := <-sub.C()
		assert.False(t, open, "subscription from closed publisher should have closed channel")
	})
}

func TestPublisherConcurrency(t *testing.T) {
	t.Parallel()

	pub := linelog.NewPublisher(linelog.WithBufferSize(8))

	var wg sync.WaitGroup

	// Concurrent publishers.
	for range 5 {
		wg.Go(func() {
			for range 100 {
				pub.Publish("data")
			}
		})
	}

	// Concurrent subscribers.
	for range 5 {
		wg.Go(func() {
			sub := pub.Subscribe()
			for range 20 {
				select {
				case <-sub.C():
				default:
				}
			}

			sub.Close()
		})
	}

	wg.Wait()
	require.NoError(t, pub.Close())
}

func TestPublishOrderPerSubscriber(t *testing.T) {
	t.Parallel()

	pub := linelog.NewPublisher()

	sub := pub.Subscribe()
	defer sub.Close()

	done := make(chan struct{})
	var got []string

	go func() {
		defer close(done)

		for range 50 {
			got = append(got, <-sub.C())
		}
	}()

	want := make([]string, 0, 50)
	for i := range 50 {
		line := fmt.Sprintf("line-%02d", i)
		want = append(want, line)
		pub.Publish(line)
	}

	<-done
	assert.Equal(t, want, got, "each subscriber observes lines in publish order")
}
