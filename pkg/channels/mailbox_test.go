package channels_test

import (
	"sync"
	"testing"
	"time"

	"github.com/alkime/slideswitch/pkg/channels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox(t *testing.T) {
	t.Run("empty take", func(t *testing.T) {
		mb := channels.NewMailbox[int]()
		_, ok := mb.Take()
		assert.False(t, ok)
	})

	t.Run("latest value wins", func(t *testing.T) {
		mb := channels.NewMailbox[int]()
		mb.Put(1)
		mb.Put(2)
		mb.Put(3)

		v, ok := mb.Take()
		require.True(t, ok)
		assert.Equal(t, 3, v)

		_, ok = mb.Take()
		assert.False(t, ok, "slot should be empty after take")
	})

	t.Run("wake-ups coalesce", func(t *testing.T) {
		mb := channels.NewMailbox[int]()
		mb.Put(1)
		mb.Put(2)

		select {
		case <-mb.Ready():
		case <-time.After(time.Second):
			t.Fatal("expected a wake-up")
		}

		select {
		case <-mb.Ready():
			t.Fatal("expected a single wake-up for two puts")
		default:
		}
	})

	t.Run("clear discards value", func(t *testing.T) {
		mb := channels.NewMailbox[string]()
		mb.Put("stale")
		mb.Clear()

		_, ok := mb.Take()
		assert.False(t, ok)
	})

	t.Run("put if rejects without waking", func(t *testing.T) {
		mb := channels.NewMailbox[int]()
		mb.Put(2)
		<-mb.Ready()

		assert.False(t, mb.PutIf(1, func() bool { return false }))

		select {
		case <-mb.Ready():
			t.Fatal("rejected put must not wake")
		default:
		}

		v, ok := mb.Take()
		require.True(t, ok)
		assert.Equal(t, 2, v, "rejected put must not replace the value")

		assert.True(t, mb.PutIf(3, func() bool { return true }))
		v, ok = mb.Take()
		require.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("concurrent producer", func(t *testing.T) {
		mb := channels.NewMailbox[int]()

		var wg sync.WaitGroup
		wg.Go(func() {
			for i := 1; i <= 100; i++ {
				mb.Put(i)
			}
		})

		last := 0
		for last < 100 {
			<-mb.Ready()
			if v, ok := mb.Take(); ok {
				assert.Greater(t, v, last, "values must arrive in order")
				last = v
			}
		}

		wg.Wait()
	})
}
