// Package config provides configuration loading and validation for cnvinfo.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Markers lists the characters accepted as header line prefix.
	Markers string `yaml:"markers"`

	// Output is the default report format (text, json, yaml).
	Output string `yaml:"output"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// OutputFormat names a report format.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// OutputFormat returns the output format as an OutputFormat enum.
func (c *Config) OutputFormat() OutputFormat {
	return OutputFormat(c.Output)
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnSuccess fires only when every file parsed (default).
	WebhookTriggerOnSuccess WebhookTrigger = "on_success"
	// WebhookTriggerAlways fires after every run, including failed files.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines an endpoint that receives header reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_success" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
