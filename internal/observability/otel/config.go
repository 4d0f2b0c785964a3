// Package otel provides OpenTelemetry tracing integration for paradoxe.
// Disabled by default; enabled via PARADOXE_OTEL=1.
package otel

import (
	"errors"
	"os"
	"strconv"
)

// Protocol constants for OTLP exporters.
const (
	ProtocolHTTP = "otlphttp"
	ProtocolGRPC = "otlpgrpc"
)

// Config holds OTel initialization options.
type Config struct {
	Enabled     bool
	Endpoint    string  // e.g., "http://localhost:4318" or "localhost:4317"
	Protocol    string  // "otlphttp" or "otlpgrpc"
	Insecure    bool    // allow insecure connections (no TLS)
	ServiceName string  // default: "paradoxe"
	SampleRatio float64 // 0..1, default: 1.0
}

// DefaultConfig returns a Config with safe defaults (OTel disabled).
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Protocol:    ProtocolHTTP,
		ServiceName: "paradoxe",
		SampleRatio: 1.0,
	}
}

// FromEnv builds a Config from PARADOXE_OTEL* variables.
func FromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("PARADOXE_OTEL"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if v := os.Getenv("PARADOXE_OTEL_PROTOCOL"); v != "" {
		cfg.Protocol = v
	}
	if v := os.Getenv("PARADOXE_OTEL_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PARADOXE_OTEL_INSECURE"); v != "" {
		if insecure, err := strconv.ParseBool(v); err == nil {
			cfg.Insecure = insecure
		}
	}
	return cfg
}

// Validate checks that the configuration is valid when OTel is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil // nothing to validate if disabled
	}

	switch c.Protocol {
	case ProtocolHTTP, ProtocolGRPC:
		// valid
	default:
		return errors.New("otel: protocol must be 'otlphttp' or 'otlpgrpc'")
	}

	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return errors.New("otel: sample-ratio must be between 0 and 1")
	}

	return nil
}
