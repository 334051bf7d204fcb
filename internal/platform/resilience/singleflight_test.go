package resilience

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlight_RunsOncePerKey(t *testing.T) {
	var f Flight[int]
	var runs, shared atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, wasShared, err := f.Do(context.Background(), "stats", func() (int, error) {
				runs.Add(1)
				<-release
				return 42, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), runs.Load())
	require.Equal(t, int32(15), shared.Load())
}

func TestFlight_WaiterLeavesOnCancel(t *testing.T) {
	var f Flight[string]
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = f.Do(context.Background(), "k", func() (string, error) {
			close(started)
			<-release
			return "done", nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, shared, err := f.Do(ctx, "k", func() (string, error) { return "other", nil })
	require.True(t, shared)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	require.Eventually(t, func() bool {
		v, _, err := f.Do(context.Background(), "k", func() (string, error) { return "fresh", nil })
		return err == nil && v == "fresh"
	}, time.Second, 5*time.Millisecond)
}

func TestFlight_PanicBecomesError(t *testing.T) {
	var f Flight[int]
	_, _, err := f.Do(context.Background(), "boom", func() (int, error) { panic("bad loader") })
	require.ErrorContains(t, err, "bad loader")

	v, shared, err := f.Do(context.Background(), "boom", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	require.False(t, shared)
	require.Equal(t, 7, v)
}
