package main

import (
	"github.com/osmosis-labs/feewatch/domain"
	"github.com/osmosis-labs/feewatch/fees/client"
)

// DefaultConfig defines the default config for the fee watch server.
var DefaultConfig = domain.Config{
	ServerAddress: ":9093",

	LoggerFilename:     "feewatch.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	Fees: &domain.FeesConfig{
		Endpoint:        client.DefaultRecommendedFeesURL,
		IntervalSecs:    60,
		TimeoutSecs:     10,
		StartupWaitSecs: 5,
	},

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With",
		AllowedMethods: "HEAD, GET, POST, OPTIONS",
		AllowedOrigin:  "*",
	},

	OTEL: &domain.OTELConfig{
		DSN:                "",
		SampleRate:         1.0,
		EnableTracing:      false,
		TracesSampleRate:   0.01,
		ProfilesSampleRate: 0.01,
		Environment:        "development",
	},
}
