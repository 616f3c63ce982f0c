package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDoLimitsConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(2)
	var current, peak int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(context.Background(), func(context.Context) error {
				n := atomic.AddInt32(&current, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&current, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	status := m.GetQueueStatus()
	assert.Equal(t, int64(8), status.ProcessedCount)
	assert.Equal(t, int64(0), status.InFlight)
	assert.Equal(t, int64(0), status.Waiting)
	assert.Equal(t, int64(2), status.MaxInFlight)
}

func TestDoReturnsFnError(t *testing.T) {
	m := NewManager(1)
	want := errors.New("boom")

	err := m.Do(context.Background(), func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)
}

func TestDoHonoursContextWhileWaiting(t *testing.T) {
	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = m.Do(context.Background(), func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	called := false
	err := m.Do(ctx, func(context.Context) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called)
	close(release)
}

func TestNewManagerMinimum(t *testing.T) {
	assert.Equal(t, int64(1), NewManager(0).GetQueueStatus().MaxInFlight)
}
