package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/osmosis-labs/feewatch/domain"
	"github.com/osmosis-labs/feewatch/domain/mvc"
	"github.com/osmosis-labs/feewatch/feeutil/datafetchers"
	"github.com/osmosis-labs/feewatch/log"
)

const (
	// DefaultInterval is the period between two scheduled fee fetches.
	DefaultInterval = time.Minute

	listenerTimeout = 5 * time.Second
)

type feesUseCase struct {
	feeClient domain.FeeClient
	fetcher   *datafetchers.IntervalFetcher[domain.FeeSnapshot]

	logger log.Logger
}

var _ mvc.FeesUsecase = &feesUseCase{}

// FeeStore is the fees usecase together with its lifecycle.
type FeeStore interface {
	mvc.FeesUsecase

	// Start fetches immediately and then once per interval. Idempotent.
	Start()

	// WaitForFirstSnapshot blocks until the first snapshot is published or ctx is done.
	WaitForFirstSnapshot(ctx context.Context) error

	// Stop cancels the schedule and in-flight fetches and waits for them to return.
	// Results of fetches completing after Stop are discarded. Stop is terminal.
	Stop(ctx context.Context) error
}

// NewFeesUsecase returns a fee store polling feeClient every interval.
// A non-positive interval falls back to DefaultInterval.
func NewFeesUsecase(feeClient domain.FeeClient, interval time.Duration, logger log.Logger) FeeStore {
	if interval <= 0 {
		interval = DefaultInterval
	}

	us := &feesUseCase{
		feeClient: feeClient,
		logger:    logger,
	}

	us.fetcher = datafetchers.NewIntervalFetcher(us.fetchFees, interval)

	return us
}

// fetchFees runs one fetch cycle against the fee client.
// Failures are logged and counted, the previous snapshot is left untouched.
func (f *feesUseCase) fetchFees(ctx context.Context) (domain.FeeSnapshot, error) {
	start := time.Now()

	snapshot, err := f.feeClient.GetRecommendedFees(ctx)

	// Measure duration
	domain.FeeWatchFetchDurationGauge.Set(float64(time.Since(start).Milliseconds()))

	if err != nil {
		if errors.Is(err, context.Canceled) {
			f.logger.Debug("fee fetch canceled", zap.Error(err))
			return domain.FeeSnapshot{}, err
		}

		f.logger.Warn("failed to fetch recommended fees", zap.String("kind", domain.FeeErrorKind(err)), zap.Error(err))

		// Increment the error counter
		domain.FeeWatchFetchErrorCounter.WithLabelValues(domain.FeeErrorKind(err)).Inc()

		return domain.FeeSnapshot{}, err
	}

	domain.FeeWatchFetchSuccessCounter.Inc()

	f.logger.Debug("fetched recommended fees",
		zap.Uint64("fastest_fee", snapshot.FastestFee),
		zap.Uint64("half_hour_fee", snapshot.HalfHourFee),
		zap.Uint64("hour_fee", snapshot.HourFee),
		zap.Uint64("economy_fee", snapshot.EconomyFee),
		zap.Uint64("minimum_fee", snapshot.MinimumFee),
		zap.Duration("duration", time.Since(start)),
	)

	return snapshot, nil
}

// Start implements FeeStore.
func (f *feesUseCase) Start() {
	f.logger.Info("starting fee store", zap.Duration("interval", f.fetcher.GetRefetchInterval()))
	f.fetcher.Start()
}

// Stop implements FeeStore.
func (f *feesUseCase) Stop(ctx context.Context) error {
	if err := f.fetcher.Close(ctx); err != nil {
		return err
	}

	f.logger.Info("fee store stopped")
	return nil
}

// WaitForFirstSnapshot implements FeeStore.
func (f *feesUseCase) WaitForFirstSnapshot(ctx context.Context) error {
	return f.fetcher.WaitUntilFirstResult(ctx)
}

// CurrentSnapshot implements mvc.FeesUsecase.
func (f *feesUseCase) CurrentSnapshot() domain.FeeSnapshot {
	// The zero snapshot is returned before the first success, the error carries nothing else.
	snapshot, _, _ := f.fetcher.Get()
	return snapshot
}

// CurrentIndicator implements mvc.FeesUsecase.
func (f *feesUseCase) CurrentIndicator() domain.FeeTier {
	return f.CurrentSnapshot().Tier()
}

// CurrentState implements mvc.FeesUsecase.
func (f *feesUseCase) CurrentState() (domain.FeeState, error) {
	snapshot, retrievedTime, err := f.fetcher.Get()

	state := domain.FeeState{
		Snapshot:    snapshot,
		RetrievedAt: retrievedTime,
		IsStale:     f.fetcher.IsStaleSince(retrievedTime),
	}

	if errors.Is(err, datafetchers.ErrNoValueRetrieved) {
		return state, domain.ErrNoFeesRetrieved
	}

	return state, nil
}

// RefreshNow implements mvc.FeesUsecase.
func (f *feesUseCase) RefreshNow() bool {
	return f.fetcher.RefreshAsync()
}

// Refresh implements mvc.FeesUsecase.
func (f *feesUseCase) Refresh(ctx context.Context) error {
	return f.fetcher.Refresh(ctx)
}

// RegisterListener implements mvc.FeesUsecase.
func (f *feesUseCase) RegisterListener(listener domain.FeeUpdateListener) {
	f.fetcher.RegisterListener(func(snapshot domain.FeeSnapshot, retrievedAt time.Time) {
		// Detached from the store so that Stop does not cancel notifications in progress.
		ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
		defer cancel()

		if err := listener.OnFeeUpdate(ctx, snapshot, retrievedAt); err != nil {
			f.logger.Error("fee update listener failed", zap.Error(err))
		}
	})
}
