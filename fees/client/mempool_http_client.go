package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/osmosis-labs/feewatch/domain"
	"github.com/osmosis-labs/feewatch/feeutil/feehttp"
)

const (
	// DefaultRecommendedFeesURL is the mempool.space recommended fees endpoint.
	DefaultRecommendedFeesURL = "https://mempool.space/api/v1/fees/recommended"

	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 10 * time.Second
)

// MempoolHTTPClientImpl fetches recommended fees from a mempool.space compatible API.
type MempoolHTTPClientImpl struct {
	client *http.Client
	url    string
}

var _ domain.FeeClient = &MempoolHTTPClientImpl{}

// recommendedFeesFields lists the required keys of the endpoint schema.
// Keys are matched exactly, including letter case.
var recommendedFeesFields = []string{"fastestFee", "halfHourFee", "hourFee", "economyFee", "minimumFee"}

// NewMempoolHTTPClient returns a client for the given endpoint.
// Returns domain.ConfigurationError if the endpoint is not a valid http(s) URL.
// A non-positive timeout falls back to DefaultTimeout.
func NewMempoolHTTPClient(url string, timeout time.Duration) (*MempoolHTTPClientImpl, error) {
	if _, err := feehttp.ValidateURL(url); err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &MempoolHTTPClientImpl{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		url: url,
	}, nil
}

// GetRecommendedFees implements domain.FeeClient.
func (c *MempoolHTTPClientImpl) GetRecommendedFees(ctx context.Context) (domain.FeeSnapshot, error) {
	body, err := feehttp.GetBody(ctx, c.client, c.url)
	if err != nil {
		return domain.FeeSnapshot{}, err
	}

	return decodeRecommendedFees(body)
}

// URL returns the endpoint the client requests.
func (c *MempoolHTTPClientImpl) URL() string {
	return c.url
}

func decodeRecommendedFees(body []byte) (domain.FeeSnapshot, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.FeeSnapshot{}, domain.DecodeError{Reason: "expected a JSON object"}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return domain.FeeSnapshot{}, domain.DecodeError{Reason: "malformed JSON", Err: err}
	}

	// A required key spelled with different letter case is a schema mismatch, not an unknown field.
	for key := range raw {
		for _, name := range recommendedFeesFields {
			if key != name && strings.EqualFold(key, name) {
				return domain.FeeSnapshot{}, domain.DecodeError{Reason: fmt.Sprintf("unexpected key %q, expected %q", key, name)}
			}
		}
	}

	values := make([]uint64, len(recommendedFeesFields))
	for i, name := range recommendedFeesFields {
		value, ok := raw[name]
		// Unmarshalling null into uint64 is a no-op, treat it as missing.
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return domain.FeeSnapshot{}, domain.DecodeError{Reason: fmt.Sprintf("missing required field %q", name)}
		}

		if err := json.Unmarshal(value, &values[i]); err != nil {
			return domain.FeeSnapshot{}, domain.DecodeError{Reason: fmt.Sprintf("field %q has invalid type", name), Err: err}
		}
	}

	return domain.FeeSnapshot{
		FastestFee:  values[0],
		HalfHourFee: values[1],
		HourFee:     values[2],
		EconomyFee:  values[3],
		MinimumFee:  values[4],
	}, nil
}
