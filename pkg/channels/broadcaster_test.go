package channels_test

import (
	"context"
	"testing"
	"time"

	"github.com/alkime/slideswitch/pkg/channels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster(t *testing.T) {
	t.Run("error cases", func(t *testing.T) {
		t.Run("subscribe with nil channel", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			err := b.Subscribe(nil)
			assert.ErrorContains(t, err, "cannot be nil")
		})

		t.Run("subscribe with non-positive timeout", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			err := b.SubscribeWithTimeout(make(chan int, 1), 0)
			assert.ErrorContains(t, err, "must be positive")
		})

		t.Run("run with no subscribers", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			_, err := b.Run(context.Background())
			assert.ErrorContains(t, err, "no subscribers")
		})

		t.Run("run twice", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			b := channels.NewBroadcaster[int]()
			require.NoError(t, b.Subscribe(make(chan int, 1)))

			_, err := b.Run(ctx)
			require.NoError(t, err)

			_, err = b.Run(ctx)
			assert.ErrorContains(t, err, "already started")
		})
	})

	t.Run("every subscriber receives every message", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		b := channels.NewBroadcaster[int]()
		sub1 := make(chan int, 10)
		sub2 := make(chan int, 10)
		require.NoError(t, b.Subscribe(sub1))
		require.NoError(t, b.SubscribeWithTimeout(sub2, 10*time.Millisecond))

		input, err := b.Run(ctx)
		require.NoError(t, err)

		input <- 1
		input <- 2
		input <- 3

		cancel()
		b.Wait()
		close(sub1)
		close(sub2)

		assert.Equal(t, []int{1, 2, 3}, channels.ReceiveAll(sub1, 10*time.Millisecond, 0))
		assert.Equal(t, []int{1, 2, 3}, channels.ReceiveAll(sub2, 10*time.Millisecond, 0))
	})

	t.Run("full subscriber drops without starving others", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		b := channels.NewBroadcaster[int]()
		full := make(chan int, 1)
		full <- 99
		ready := make(chan int, 10)
		require.NoError(t, b.Subscribe(full))
		require.NoError(t, b.Subscribe(ready))

		input, err := b.Run(ctx)
		require.NoError(t, err)

		for i := 1; i <= 5; i++ {
			input <- i
		}

		cancel()
		b.Wait()
		close(ready)

		stats := b.Stats()
		require.Len(t, stats, 2)
		assert.Equal(t, 5, stats[0].Dropped)
		assert.False(t, stats[0].Inactive)
		assert.Equal(t, 0, stats[1].Dropped)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, channels.ReceiveAll(ready, 10*time.Millisecond, 0))
	})

	t.Run("closed subscriber is retired", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		b := channels.NewBroadcaster[int]()
		sub := make(chan int, 10)
		require.NoError(t, b.Subscribe(sub))

		input, err := b.Run(ctx)
		require.NoError(t, err)

		close(sub)
		input <- 1
		input <- 2

		cancel()
		b.Wait()

		stats := b.Stats()
		require.Len(t, stats, 1)
		assert.Equal(t, 2, stats[0].Dropped)
		assert.True(t, stats[0].Inactive)
	})
}
