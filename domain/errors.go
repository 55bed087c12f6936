package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoFeesRetrieved is returned when no fee snapshot has been fetched successfully yet.
	ErrNoFeesRetrieved = errors.New("no fee snapshot has been retrieved yet")
	// ErrStaleFees is returned when the latest fee snapshot is older than allowed.
	ErrStaleFees = errors.New("fee snapshot is stale")
)

// GetStatusCode returns status code given error
func GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, ErrNoFeesRetrieved), errors.Is(err, ErrStaleFees):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// TransportError is returned when the fee endpoint could not be reached
// or the response could not be read (connection refused, DNS, timeout).
type TransportError struct {
	URL string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("transport error requesting %s: %v", e.URL, e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is returned when the fee endpoint responds with a non-2xx status.
type ProtocolError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e ProtocolError) Error() string {
	return fmt.Sprintf("unexpected status %d (%s) from %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// DecodeError is returned when the response body is not valid JSON
// or does not match the recommended fees schema.
type DecodeError struct {
	Reason string
	Err    error
}

func (e DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode fees: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to decode fees: %s", e.Reason)
}

func (e DecodeError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned at construction time when the fee endpoint is not a valid URL.
type ConfigurationError struct {
	URL    string
	Reason string
	Err    error
}

func (e ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid fee endpoint %q: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid fee endpoint %q: %s", e.URL, e.Reason)
}

func (e ConfigurationError) Unwrap() error {
	return e.Err
}

// FeeErrorKind returns a short label for the kind of fee fetch error.
// Used as a metric label.
func FeeErrorKind(err error) string {
	var (
		transportErr TransportError
		protocolErr  ProtocolError
		decodeErr    DecodeError
		configErr    ConfigurationError
	)

	switch {
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &protocolErr):
		return "protocol"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &configErr):
		return "configuration"
	default:
		return "unknown"
	}
}
