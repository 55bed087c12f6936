package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osmosis-labs/feewatch/domain"
	"github.com/osmosis-labs/feewatch/domain/mvc"
	"github.com/osmosis-labs/feewatch/log"

	_ "github.com/osmosis-labs/feewatch/docs"
)

// FeesHandler represent the httphandler for the fees
type FeesHandler struct {
	FUsecase mvc.FeesUsecase
	logger   log.Logger
}

// RecommendedFeesResponse is the latest fee snapshot together with its derived tier.
type RecommendedFeesResponse struct {
	domain.FeeSnapshot
	Tier        domain.FeeTier `json:"tier"`
	Emoji       string         `json:"emoji"`
	Label       string         `json:"label"`
	LastUpdated *time.Time     `json:"last_updated,omitempty"`
	IsStale     bool           `json:"is_stale"`
}

// IndicatorResponse is the tier of the latest fastest fee.
type IndicatorResponse struct {
	Tier       domain.FeeTier `json:"tier"`
	Emoji      string         `json:"emoji"`
	FastestFee uint64         `json:"fastest_fee"`
}

const feesResource = "/fees"

func formatFeesResource(resource string) string {
	return feesResource + resource
}

// NewFeesHandler will initialize the fees/ resources endpoint
func NewFeesHandler(e *echo.Echo, us mvc.FeesUsecase, logger log.Logger) {
	handler := &FeesHandler{
		FUsecase: us,
		logger:   logger,
	}

	e.GET(formatFeesResource("/recommended"), handler.GetRecommendedFees)
	e.GET(formatFeesResource("/indicator"), handler.GetIndicator)
	e.POST(formatFeesResource("/refresh"), handler.PostRefresh)
}

// @Summary Recommended fees
// @Description Returns the latest recommended fee rates in sat/vB with the derived congestion tier.
// @Description All fees are zero until the first successful fetch.
// @ID get-recommended-fees
// @Produce  json
// @Success 200 {object} RecommendedFeesResponse "Success"
// @Router /fees/recommended [get]
func (h *FeesHandler) GetRecommendedFees(c echo.Context) error {
	// Before the first fetch the zero state is served, without last_updated.
	state, err := h.FUsecase.CurrentState()
	tier := state.Snapshot.Tier()

	response := RecommendedFeesResponse{
		FeeSnapshot: state.Snapshot,
		Tier:        tier,
		Emoji:       tier.Emoji(),
		Label:       state.Snapshot.Label(),
		IsStale:     state.IsStale,
	}

	if err == nil {
		response.LastUpdated = &state.RetrievedAt
	}

	return c.JSON(http.StatusOK, response)
}

// @Summary Fee indicator
// @Description Returns the congestion tier of the latest fastest fee.
// @ID get-fee-indicator
// @Produce  json
// @Success 200 {object} IndicatorResponse "Success"
// @Router /fees/indicator [get]
func (h *FeesHandler) GetIndicator(c echo.Context) error {
	snapshot := h.FUsecase.CurrentSnapshot()
	tier := snapshot.Tier()

	return c.JSON(http.StatusOK, IndicatorResponse{
		Tier:       tier,
		Emoji:      tier.Emoji(),
		FastestFee: snapshot.FastestFee,
	})
}

// @Summary Refresh fees
// @Description Triggers one fetch of the recommended fees in the background.
// @Description Requests arriving while a manual fetch is in flight are served by that fetch.
// @Description The periodic schedule is not affected.
// @ID post-fees-refresh
// @Success 202 "Accepted"
// @Router /fees/refresh [post]
func (h *FeesHandler) PostRefresh(c echo.Context) error {
	started := h.FUsecase.RefreshNow()

	h.logger.Debug("manual fee refresh requested", zap.String("remote_ip", c.RealIP()), zap.Bool("started", started))

	return c.NoContent(http.StatusAccepted)
}
