package datafetchers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestWaitUntilFirstResult tests that WaitUntilFirstResult blocks until the first result is available,
// and that Get returns the correct value and timestamp afterwards.
func TestWaitUntilFirstResult(t *testing.T) {
	updateFn := func(ctx context.Context) (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 42, nil
	}

	start := time.Now()
	p := NewIntervalFetcher(updateFn, time.Hour)
	defer p.Close(context.Background())

	v, timestamp, err := p.Get()
	require.ErrorIs(t, err, ErrNoValueRetrieved)
	require.Equal(t, 0, v)
	require.Equal(t, time.Time{}, timestamp)
	require.True(t, p.IsStaleSince(timestamp))

	p.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.WaitUntilFirstResult(ctx))
	waitTimeFinished := time.Now()
	requireTimeDurationInRange(t, waitTimeFinished.Sub(start), 200*time.Millisecond, 2*time.Second)

	v, timestamp, err = p.Get()
	require.NoError(t, err)
	require.Equal(t, 42, v)
	getVsWaitTime := timestamp.Sub(waitTimeFinished)
	requireTimeDurationInRange(t, getVsWaitTime, -50*time.Millisecond, 50*time.Millisecond)
	require.False(t, p.IsStaleSince(timestamp))
}

func TestWaitUntilFirstResult_ContextDone(t *testing.T) {
	p := NewIntervalFetcher(func(ctx context.Context) (int, error) {
		return 0, errors.New("always failing")
	}, time.Hour)
	defer p.Close(context.Background())

	p.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, p.WaitUntilFirstResult(ctx), context.DeadlineExceeded)
}

func TestNewIntervalFetcher_PanicsOnNonPositiveInterval(t *testing.T) {
	require.Panics(t, func() {
		NewIntervalFetcher(func(ctx context.Context) (int, error) { return 0, nil }, 0)
	})
}

func TestStart_Idempotent(t *testing.T) {
	var calls atomic.Int32
	p := NewIntervalFetcher(func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}, time.Hour)
	defer p.Close(context.Background())

	p.Start()
	p.Start()
	p.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.WaitUntilFirstResult(ctx))

	// Give any duplicate schedule a chance to run its immediate fetch.
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestStart_FetchesEveryInterval(t *testing.T) {
	var calls atomic.Int32
	p := NewIntervalFetcher(func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}, 50*time.Millisecond)

	p.Start()
	time.Sleep(230 * time.Millisecond)
	require.NoError(t, p.Close(context.Background()))

	// One immediate fetch plus roughly one per interval.
	got := calls.Load()
	require.GreaterOrEqual(t, got, int32(3))
	require.LessOrEqual(t, got, int32(6))

	// No more fetches after close.
	time.Sleep(120 * time.Millisecond)
	require.Equal(t, got, calls.Load())
}

func TestPrefetch_ErrorKeepsPreviousValue(t *testing.T) {
	var shouldFail atomic.Bool
	p := NewIntervalFetcher(func(ctx context.Context) (string, error) {
		if shouldFail.Load() {
			return "", errors.New("boom")
		}
		return "first", nil
	}, time.Hour)
	defer p.Close(context.Background())

	require.NoError(t, p.Refresh(context.Background()))
	_, firstTime, err := p.Get()
	require.NoError(t, err)

	shouldFail.Store(true)
	require.EqualError(t, p.Refresh(context.Background()), "boom")

	v, ts, err := p.Get()
	require.NoError(t, err)
	require.Equal(t, "first", v)
	require.Equal(t, firstTime, ts)
}

// TestRefresh_LastCompletionWins verifies that when two updates overlap, the one
// that completes last is published regardless of which started first.
func TestRefresh_LastCompletionWins(t *testing.T) {
	releaseFirst := make(chan struct{})
	var started atomic.Int32

	p := NewIntervalFetcher(func(ctx context.Context) (string, error) {
		if started.Add(1) == 1 {
			<-releaseFirst
			return "started-first", nil
		}
		return "started-second", nil
	}, time.Hour)
	defer p.Close(context.Background())

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = p.Refresh(context.Background())
	}()

	require.Eventually(t, func() bool { return started.Load() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, p.Refresh(context.Background()))
	v, _, err := p.Get()
	require.NoError(t, err)
	require.Equal(t, "started-second", v)

	close(releaseFirst)
	wg.Wait()
	require.NoError(t, firstErr)

	v, _, err = p.Get()
	require.NoError(t, err)
	require.Equal(t, "started-first", v)
}

func TestClose_DiscardsInFlightResult(t *testing.T) {
	entered := make(chan struct{})
	p := NewIntervalFetcher(func(ctx context.Context) (int, error) {
		close(entered)
		<-ctx.Done()
		// Return a value anyway to ensure it is not published after close.
		return 7, nil
	}, time.Hour)

	require.True(t, p.RefreshAsync())
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Close(ctx))

	v, _, err := p.Get()
	require.ErrorIs(t, err, ErrNoValueRetrieved)
	require.Equal(t, 0, v)

	// Closed fetchers refuse new work and ignore Start.
	require.ErrorIs(t, p.Refresh(context.Background()), ErrFetcherClosed)
	p.Start()
	require.False(t, p.RefreshAsync())
}

func TestGet_AfterCloseReturnsLastValue(t *testing.T) {
	p := NewIntervalFetcher(func(ctx context.Context) (int, error) {
		return 5, nil
	}, time.Hour)

	require.NoError(t, p.Refresh(context.Background()))
	require.NoError(t, p.Close(context.Background()))

	v, ts, err := p.Get()
	require.ErrorIs(t, err, ErrFetcherClosed)
	require.Equal(t, 5, v)
	require.False(t, ts.IsZero())
}

func TestIsStaleSince(t *testing.T) {
	p := NewIntervalFetcher(func(ctx context.Context) (int, error) {
		return 1, nil
	}, 20*time.Millisecond)
	defer p.Close(context.Background())

	require.True(t, p.IsStaleSince(time.Time{}))

	require.NoError(t, p.Refresh(context.Background()))
	_, retrievedTime, err := p.Get()
	require.NoError(t, err)
	require.False(t, p.IsStaleSince(retrievedTime))

	// Wait for more than 2x the interval to ensure data becomes stale
	time.Sleep(100 * time.Millisecond)
	require.True(t, p.IsStaleSince(retrievedTime))
}

// TestRefreshAsync_CollapsesWhileInFlight checks that background refreshes requested
// while one is running do not start additional updates.
func TestRefreshAsync_CollapsesWhileInFlight(t *testing.T) {
	var (
		calls   atomic.Int32
		entered = make(chan struct{}, 1)
		release = make(chan struct{})
	)

	p := NewIntervalFetcher(func(ctx context.Context) (int, error) {
		calls.Add(1)
		entered <- struct{}{}
		<-release
		return 9, nil
	}, time.Hour)
	defer p.Close(context.Background())

	require.True(t, p.RefreshAsync())
	<-entered

	for i := 0; i < 100; i++ {
		require.False(t, p.RefreshAsync())
	}

	close(release)
	require.Eventually(t, func() bool {
		v, _, err := p.Get()
		return err == nil && v == 9
	}, 5*time.Second, time.Millisecond)

	// Once the in-flight refresh returned, a new one can start.
	require.Eventually(t, func() bool {
		return p.RefreshAsync()
	}, 5*time.Second, time.Millisecond)
	<-entered

	require.Equal(t, int32(2), calls.Load())
}

func TestRegisterListener(t *testing.T) {
	p := NewIntervalFetcher(func(ctx context.Context) (int, error) {
		return 3, nil
	}, time.Hour)
	defer p.Close(context.Background())

	var received []int
	p.RegisterListener(func(value int, retrievedAt time.Time) {
		require.False(t, retrievedAt.IsZero())
		received = append(received, value)
	})

	require.NoError(t, p.Refresh(context.Background()))
	require.NoError(t, p.Refresh(context.Background()))
	require.Equal(t, []int{3, 3}, received)
}

func requireTimeDurationInRange(t *testing.T, d time.Duration, min time.Duration, max time.Duration) {
	require.True(t, d >= min, "Duration %s is less than min %s", d, min)
	require.True(t, d <= max, "Duration %s is greater than max %s", d, max)
}
