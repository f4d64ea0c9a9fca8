package cmd //nolint:testpackage // tests unexported helpers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeQueue(t *testing.T) {
	t.Parallel()

	t.Run("should keep every notified root, not just the first one", func(t *testing.T) {
		t.Parallel()

		// given
		queue := newChangeQueue()

		// when: two roots change before anyone drains
		queue.add("/wc-b")
		queue.add("/wc-a")

		// then: one wakeup is queued and both roots survive it
		select {
		case <-queue.kick:
		default:
			t.Fatal("expected a queued wakeup")
		}
		require.Equal(t, []string{"/wc-a", "/wc-b"}, queue.drain())
	})

	t.Run("should coalesce repeated events for the same root", func(t *testing.T) {
		t.Parallel()

		// given
		queue := newChangeQueue()

		// when
		queue.add("/wc")
		queue.add("/wc")
		queue.add("/wc")

		// then
		assert.Equal(t, []string{"/wc"}, queue.drain())
		assert.Empty(t, queue.drain())
	})

	t.Run("should tolerate concurrent notifications", func(t *testing.T) {
		t.Parallel()

		// given
		queue := newChangeQueue()
		roots := []string{"/wc-a", "/wc-b", "/wc-c"}

		// when
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(root string) {
				defer wg.Done()
				queue.add(root)
			}(roots[i%len(roots)])
		}
		wg.Wait()

		// then
		assert.Equal(t, roots, queue.drain())
	})
}
