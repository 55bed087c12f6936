package domain

import "time"

// Config defines the config for the fee watch server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// Fees encapsulates the fee polling config.
	Fees *FeesConfig `mapstructure:"fees"`

	CORS *CORSConfig `mapstructure:"cors"`

	OTEL *OTELConfig `mapstructure:"otel"`
}

// FeesConfig defines the config for polling recommended fees.
type FeesConfig struct {
	// Endpoint is the full URL of the recommended fees endpoint.
	Endpoint string `mapstructure:"endpoint"`
	// IntervalSecs is the period between two scheduled fetches.
	IntervalSecs int `mapstructure:"interval-secs"`
	// TimeoutSecs bounds a single request.
	TimeoutSecs int `mapstructure:"timeout-secs"`
	// StartupWaitSecs bounds how long the server waits for the first snapshot
	// before serving HTTP. Zero disables the wait.
	StartupWaitSecs int `mapstructure:"startup-wait-secs"`
}

// Interval returns the configured fetch interval.
func (c FeesConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSecs) * time.Second
}

// StartupWait returns how long to wait for the first snapshot on startup.
func (c FeesConfig) StartupWait() time.Duration {
	return time.Duration(c.StartupWaitSecs) * time.Second
}

// Timeout returns the configured per-request timeout.
func (c FeesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// CORSConfig defines the CORS headers set on every response.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig defines the Sentry/OpenTelemetry configuration.
// Tracing is disabled when DSN is empty.
type OTELConfig struct {
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	TracesSampleRate   float64 `mapstructure:"traces-sample-rate"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`
}
