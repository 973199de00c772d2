package config

import (
	"os"
	"time"

	"github.com/ccollicutt/cnvreader/pkg/cnv"
)

// Default values for configuration.
const (
	DefaultOutput         = OutputText
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvOutput  = "CNVINFO_OUTPUT"
	EnvMarkers = "CNVINFO_MARKERS"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Markers: cnv.DefaultMarkers,
		Output:  string(DefaultOutput),
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if output := os.Getenv(EnvOutput); output != "" {
		c.Output = output
	}
	if markers := os.Getenv(EnvMarkers); markers != "" {
		c.Markers = markers
	}
}
