package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osmosis-labs/feewatch/domain"
	"github.com/osmosis-labs/feewatch/domain/mvc"
	"github.com/osmosis-labs/feewatch/fees/client"
	feesHttpDelivery "github.com/osmosis-labs/feewatch/fees/delivery/http"
	feesUseCase "github.com/osmosis-labs/feewatch/fees/usecase"
	"github.com/osmosis-labs/feewatch/log"
	"github.com/osmosis-labs/feewatch/middleware"

	systemhttpdelivery "github.com/osmosis-labs/feewatch/system/delivery/http"
)

// FeeWatchServer defines an interface for the fee watch server.
// It owns the fee store polling the recommended fees endpoint
// and exposes the latest fees over HTTP.
type FeeWatchServer interface {
	GetFeesUseCase() mvc.FeesUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type feeWatchServer struct {
	feeStore      feesUseCase.FeeStore
	e             *echo.Echo
	serverAddress string
	startupWait   time.Duration
	logger        log.Logger
}

const tracerName = "feewatch-tracer"

// GetFeesUseCase implements FeeWatchServer.
func (fws *feeWatchServer) GetFeesUseCase() mvc.FeesUsecase {
	return fws.feeStore
}

// GetLogger implements FeeWatchServer.
func (fws *feeWatchServer) GetLogger() log.Logger {
	return fws.logger
}

// Shutdown implements FeeWatchServer.
func (fws *feeWatchServer) Shutdown(ctx context.Context) error {
	storeErr := fws.feeStore.Stop(ctx)
	serverErr := fws.e.Shutdown(ctx)

	return errors.Join(storeErr, serverErr)
}

// Start implements FeeWatchServer.
// It starts polling and blocks serving HTTP until Shutdown is called.
func (fws *feeWatchServer) Start(ctx context.Context) error {
	fws.feeStore.Start()

	if err := fws.waitForFirstFees(ctx); err != nil {
		// Serve anyway, the healthcheck reports unavailable until the first snapshot.
		fws.logger.Warn("no fee snapshot retrieved before serving", zap.Duration("waited", fws.startupWait), zap.Error(err))
	}

	fws.logger.Info("Starting fee watch server", zap.String("address", fws.serverAddress))
	err := fws.e.Start(fws.serverAddress)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// waitForFirstFees blocks until the store published its first snapshot,
// for at most the configured startup wait.
func (fws *feeWatchServer) waitForFirstFees(ctx context.Context) error {
	if fws.startupWait <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, fws.startupWait)
	defer cancel()

	return fws.feeStore.WaitForFirstSnapshot(ctx)
}

// NewFeeWatchServer creates a new fee watch server.
// Returns domain.ConfigurationError if the fee endpoint is invalid.
func NewFeeWatchServer(config domain.Config, logger log.Logger) (FeeWatchServer, error) {
	if config.Fees == nil {
		config.Fees = DefaultConfig.Fees
	}

	// Setup echo server
	e := echo.New()
	e.HideBanner = true
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	if config.OTEL != nil && config.OTEL.DSN != "" {
		e.Use(middleware.TraceWithParamsMiddleware(tracerName))
	}

	// Initialize fee client and store
	feeClient, err := client.NewMempoolHTTPClient(config.Fees.Endpoint, config.Fees.Timeout())
	if err != nil {
		return nil, err
	}

	feeStore := feesUseCase.NewFeesUsecase(feeClient, config.Fees.Interval(), logger)
	feeStore.RegisterListener(feesUseCase.NewTelemetryListener())

	// HTTP handlers
	feesHttpDelivery.NewFeesHandler(e, feeStore, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, feeStore)

	return &feeWatchServer{
		feeStore:      feeStore,
		e:             e,
		serverAddress: config.ServerAddress,
		startupWait:   config.Fees.StartupWait(),
		logger:        logger,
	}, nil
}
