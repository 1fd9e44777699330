package goroutine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/shared/logger"
)

func TestPool_ExecutesSubmittedTasks(t *testing.T) {
	pool := NewPool("test", 2, 0, logger.NewLogger())
	pool.Start()

	var count int32
	for i := 0; i < 5; i++ {
		err := pool.Submit("increment", func(ctx context.Context) error {
			atomic.AddInt32(&count, 1)
			return nil
		})
		require.NoError(t, err)
	}

	pool.Shutdown(time.Second)
	assert.Equal(t, int32(5), atomic.LoadInt32(&count))
}

func TestPool_TaskTimeout(t *testing.T) {
	pool := NewPool("test", 1, 20*time.Millisecond, logger.NewLogger())
	pool.Start()

	timedOut := make(chan bool, 1)
	err := pool.Submit("slow", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			timedOut <- true
			return ctx.Err()
		case <-time.After(time.Second):
			timedOut <- false
			return nil
		}
	})
	require.NoError(t, err)

	select {
	case got := <-timedOut:
		assert.True(t, got, "task context should be canceled by the per-task timeout")
	case <-time.After(2 * time.Second):
		t.Fatal("task did not finish")
	}
	pool.Shutdown(time.Second)
}

func TestPool_SubmitConcurrentWithShutdown(t *testing.T) {
	// Submitters race Shutdown; every Submit must either enqueue or return
	// an error, never panic on a closed channel.
	for i := 0; i < 200; i++ {
		pool := NewPool("test", 2, 0, logger.NewLogger())
		pool.Start()

		var wg sync.WaitGroup
		for s := 0; s < 4; s++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					_ = pool.Submit("racer", func(ctx context.Context) error { return nil })
				}
			}()
		}

		pool.Shutdown(time.Second)
		wg.Wait()
	}
}

func TestPool_SubmitAfterShutdownFails(t *testing.T) {
	pool := NewPool("test", 1, 0, logger.NewLogger())
	pool.Start()
	pool.Shutdown(time.Second)

	err := pool.Submit("late", func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}

func TestPool_RecoversFromPanic(t *testing.T) {
	pool := NewPool("test", 1, 0, logger.NewLogger())
	pool.Start()

	done := make(chan struct{})
	require.NoError(t, pool.Submit("panics", func(ctx context.Context) error {
		defer close(done)
		panic("boom")
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panicking task never ran")
	}

	// The pool must still be usable after a panic.
	var ran int32
	require.NoError(t, pool.Submit("after", func(ctx context.Context) error {
		atomic.StoreInt32(&ran, 1)
		return nil
	}))
	pool.Shutdown(time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestPool_TaskErrorDoesNotStopPool(t *testing.T) {
	pool := NewPool("test", 1, 0, logger.NewLogger())
	pool.Start()

	require.NoError(t, pool.Submit("fails", func(ctx context.Context) error {
		return errors.New("task error")
	}))

	var ran int32
	require.NoError(t, pool.Submit("after", func(ctx context.Context) error {
		atomic.StoreInt32(&ran, 1)
		return nil
	}))
	pool.Shutdown(time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}
