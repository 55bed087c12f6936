package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/osmosis-labs/feewatch/domain"
	"github.com/osmosis-labs/feewatch/domain/mocks"
	"github.com/osmosis-labs/feewatch/log"
)

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name      string
		ldflags   string
		expected  string
		expectErr bool
	}{
		{name: "middle flag", ldflags: "-X github.com/osmosis-labs/feewatch/version=v1.2.3 -w -s", expected: "v1.2.3"},
		{name: "last flag", ldflags: "-w -X github.com/osmosis-labs/feewatch/version=v0.4.0", expected: "v0.4.0"},
		{name: "missing", ldflags: "-w -s", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			version, err := extractVersion(tc.ldflags)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, version)
		})
	}
}

func TestGetHealthStatus(t *testing.T) {
	lastUpdated := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		us             *mocks.FeesUsecaseMock
		expectedStatus int
	}{
		{
			name:           "no fees yet",
			us:             &mocks.FeesUsecaseMock{},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "stale fees",
			us: &mocks.FeesUsecaseMock{
				CurrentStateFunc: func() (domain.FeeState, error) {
					return domain.FeeState{Snapshot: domain.FeeSnapshot{FastestFee: 12}, RetrievedAt: lastUpdated, IsStale: true}, nil
				},
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "healthy",
			us: &mocks.FeesUsecaseMock{
				CurrentStateFunc: func() (domain.FeeState, error) {
					return domain.FeeState{Snapshot: domain.FeeSnapshot{FastestFee: 12}, RetrievedAt: lastUpdated}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			NewSystemHandler(e, domain.Config{LoggerIsProduction: true}, &log.NoOpLogger{}, tc.us)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
			require.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectedStatus != http.StatusOK {
				var responseErr domain.ResponseError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responseErr))
				require.NotEmpty(t, responseErr.Message)
				return
			}

			var response HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			require.Equal(t, "running", response.FeesStatus)
			require.Equal(t, uint64(12), response.FastestFee)
			require.True(t, lastUpdated.Equal(response.LastUpdated))
		})
	}
}

func TestMetricsAndConfigEndpoints(t *testing.T) {
	e := echo.New()
	config := domain.Config{
		ServerAddress:      ":9093",
		LoggerIsProduction: true,
		Fees:               &domain.FeesConfig{Endpoint: "https://mempool.space/api/v1/fees/recommended", IntervalSecs: 60, TimeoutSecs: 10},
	}
	NewSystemHandler(e, config, &log.NoOpLogger{}, &mocks.FeesUsecaseMock{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), domain.FeeWatchFetchSuccessCounterMetricName)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var returned domain.Config
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &returned))
	require.Equal(t, config, returned)
}
