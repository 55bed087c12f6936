package feehttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/osmosis-labs/feewatch/domain"
)

const (
	// maxResponseBodyBytes bounds how much of a response body is read.
	maxResponseBodyBytes = 1 << 20

	// maxErrorBodyBytes bounds how much of a non-2xx body is kept in ProtocolError.
	maxErrorBodyBytes = 512
)

// ValidateURL checks that rawURL is an absolute http(s) URL with a host.
// Returns domain.ConfigurationError otherwise.
func ValidateURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, domain.ConfigurationError{URL: rawURL, Reason: "failed to parse", Err: err}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, domain.ConfigurationError{URL: rawURL, Reason: fmt.Sprintf("unsupported scheme %q", parsedURL.Scheme)}
	}

	if parsedURL.Host == "" {
		return nil, domain.ConfigurationError{URL: rawURL, Reason: "missing host"}
	}

	return parsedURL, nil
}

// GetBody makes a single GET request to the given URL and returns the response body.
// Fails with domain.TransportError if the request cannot be completed
// and domain.ProtocolError on a non-2xx status.
func GetBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	// Read the response body
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, domain.TransportError{URL: url, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return nil, domain.ProtocolError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}
