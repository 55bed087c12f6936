package datafetchers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrNoValueRetrieved is returned by Get before the first successful update.
	ErrNoValueRetrieved = errors.New("no cached value has ever been retrieved")
	// ErrFetcherClosed is returned once the fetcher has been stopped.
	ErrFetcherClosed = errors.New("fetcher has been closed")
)

// Fetcher is an interface that provides a method to get a value.
type Fetcher[T any] interface {
	Get() (T, time.Time, error)
	GetRefetchInterval() time.Duration
}

// UpdateListenerFn is called after every published value, in publication order.
type UpdateListenerFn[T any] func(value T, retrievedAt time.Time)

// IntervalFetcher is a struct that prefetches a value at a given interval
// and provides a method to get the latest value.
// Values are published atomically: readers never block and never observe a partial value.
// When updates overlap, the update that completes last wins.
// NOTE: It may return stale data if the update function takes longer than the interval.
type IntervalFetcher[T any] struct {
	updateFn func(ctx context.Context) (T, error)
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	lifecycleMu sync.Mutex
	hasStarted  bool
	hasClosed   bool

	asyncRefreshInFlight atomic.Bool

	// publishMu serializes writers at the publication point only.
	publishMu       sync.Mutex
	latest          atomic.Pointer[cachedValue[T]]
	listeners       []UpdateListenerFn[T]
	firstResultOnce sync.Once
	firstResultChan chan struct{}
}

type cachedValue[T any] struct {
	value         T
	retrievedTime time.Time
}

var _ Fetcher[int] = (*IntervalFetcher[int])(nil)

// NewIntervalFetcher returns a new fetcher. Nothing is fetched until Start or Refresh is called.
// Panics if interval is not positive.
func NewIntervalFetcher[T any](updateFn func(ctx context.Context) (T, error), interval time.Duration) *IntervalFetcher[T] {
	if interval <= 0 {
		panic("interval must be greater than 0")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &IntervalFetcher[T]{
		updateFn:        updateFn,
		interval:        interval,
		ctx:             ctx,
		cancel:          cancel,
		firstResultChan: make(chan struct{}),
	}
}

// RegisterListener registers fn to be called after each published value.
// Listeners run while writers are serialized and must not call back into the fetcher.
func (p *IntervalFetcher[T]) RegisterListener(fn UpdateListenerFn[T]) {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Start fetches immediately and then once per interval in the background.
// Calling Start more than once, or after Close, has no effect.
func (p *IntervalFetcher[T]) Start() {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.hasStarted || p.hasClosed {
		return
	}
	p.hasStarted = true

	p.wg.Add(1)
	go p.startTimer()
}

func (p *IntervalFetcher[T]) startTimer() {
	defer p.wg.Done()

	_ = p.prefetch(p.ctx)

	timer := time.NewTicker(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-timer.C:
			_ = p.prefetch(p.ctx)
		}
	}
}

// Refresh runs one update synchronously, independent of the interval schedule.
// The update is canceled if either ctx is done or the fetcher is closed.
func (p *IntervalFetcher[T]) Refresh(ctx context.Context) error {
	p.lifecycleMu.Lock()
	if p.hasClosed {
		p.lifecycleMu.Unlock()
		return ErrFetcherClosed
	}
	p.wg.Add(1)
	p.lifecycleMu.Unlock()

	defer p.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()

	return p.prefetch(ctx)
}

// RefreshAsync runs one update in the background.
// Calls made while a background refresh is still in flight are collapsed into it.
// Returns false if no update was started, including once closed.
func (p *IntervalFetcher[T]) RefreshAsync() bool {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.hasClosed {
		return false
	}

	if !p.asyncRefreshInFlight.CompareAndSwap(false, true) {
		return false
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.asyncRefreshInFlight.Store(false)
		_ = p.prefetch(p.ctx)
	}()

	return true
}

func (p *IntervalFetcher[T]) prefetch(ctx context.Context) error {
	newValue, err := p.updateFn(ctx)
	if err != nil {
		// By skipping the error, the values would become stale,
		// signaling that to the client.
		return err
	}

	return p.publish(newValue)
}

func (p *IntervalFetcher[T]) publish(newValue T) error {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	// Results completing after Close are discarded.
	if p.ctx.Err() != nil {
		return ErrFetcherClosed
	}

	retrievedTime := time.Now()
	p.latest.Store(&cachedValue[T]{
		value:         newValue,
		retrievedTime: retrievedTime,
	})

	p.firstResultOnce.Do(func() {
		close(p.firstResultChan)
	})

	for _, listener := range p.listeners {
		listener(newValue, retrievedTime)
	}

	return nil
}

// WaitUntilFirstResult blocks until the first value is published or ctx is done.
func (p *IntervalFetcher[T]) WaitUntilFirstResult(ctx context.Context) error {
	select {
	case <-p.firstResultChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Returns the latest value and the time it was last retrieved.
// If no value has ever been retrieved, it returns the zero value of T and time.Time{}.
// Once closed, the last value is still returned together with ErrFetcherClosed.
func (p *IntervalFetcher[T]) Get() (T, time.Time, error) {
	latest := p.latest.Load()
	if latest == nil {
		var zero T
		return zero, time.Time{}, ErrNoValueRetrieved
	}

	if p.ctx.Err() != nil {
		return latest.value, latest.retrievedTime, ErrFetcherClosed
	}

	return latest.value, latest.retrievedTime, nil
}

// IsStaleSince returns true if retrievedTime is zero (nothing retrieved yet)
// or if 2x more time than the interval passed since it.
// Pass the time returned by Get to judge that exact value.
func (p *IntervalFetcher[T]) IsStaleSince(retrievedTime time.Time) bool {
	if retrievedTime.IsZero() {
		return true
	}

	return time.Since(retrievedTime) > 2*p.interval
}

// Close stops the schedule, cancels in-flight updates and waits for them to return
// or for ctx to be done. Close is terminal.
func (p *IntervalFetcher[T]) Close(ctx context.Context) error {
	p.lifecycleMu.Lock()
	if !p.hasClosed {
		p.hasClosed = true

		// Taking publishMu guarantees nothing gets published after Close returns.
		p.publishMu.Lock()
		p.cancel()
		p.publishMu.Unlock()
	}
	p.lifecycleMu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *IntervalFetcher[T]) GetRefetchInterval() time.Duration {
	return p.interval
}
